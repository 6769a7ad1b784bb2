package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ignatzorin/fits-backend/internal/models"
	"github.com/ignatzorin/fits-backend/internal/pkg/apperror"
)

// Константы валидации
const (
	MinDescriptionLength = 10
	MaxDescriptionLength = 5000
	MinPhoneDigits       = 10
	MaxNameLength        = 200
)

var kebabIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 || !strings.Contains(domainPart, ".") {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateKebabID проверяет формат идентификатора каталога.
func ValidateKebabID(id string) error {
	if id == "" {
		return fmt.Errorf("id обязателен")
	}
	if !kebabIDPattern.MatchString(id) {
		return fmt.Errorf("id должен состоять из строчных латинских букв, цифр и дефисов")
	}
	return nil
}

// Inquiry проверяет входные данные новой заявки.
func Inquiry(in *models.Inquiry) []apperror.FieldError {
	var fields []apperror.FieldError

	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "имя обязательно"})
	}
	if err := ValidateEmail(in.Email); err != nil {
		fields = append(fields, apperror.FieldError{Field: "email", Message: err.Error()})
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Description)) < MinDescriptionLength {
		fields = append(fields, apperror.FieldError{
			Field:   "description",
			Message: fmt.Sprintf("описание должно быть не менее %d символов", MinDescriptionLength),
		})
	}
	if in.Phone != nil && *in.Phone != "" && digitCount(*in.Phone) < MinPhoneDigits {
		fields = append(fields, apperror.FieldError{
			Field:   "phone",
			Message: fmt.Sprintf("телефон должен содержать не менее %d цифр", MinPhoneDigits),
		})
	}
	fields = append(fields, BudgetRange(in.BudgetLow, in.BudgetHigh)...)
	if in.Status != "" && !models.ValidInquiryStatus(in.Status) {
		fields = append(fields, apperror.FieldError{Field: "status", Message: "недопустимый статус заявки"})
	}

	return fields
}

// InquiryPatch проверяет частичное обновление заявки.
func InquiryPatch(p *models.InquiryPatch) []apperror.FieldError {
	var fields []apperror.FieldError

	if p.Email != nil {
		if err := ValidateEmail(*p.Email); err != nil {
			fields = append(fields, apperror.FieldError{Field: "email", Message: err.Error()})
		}
	}
	if p.Status != nil && !models.ValidInquiryStatus(*p.Status) {
		fields = append(fields, apperror.FieldError{Field: "status", Message: "недопустимый статус заявки"})
	}
	fields = append(fields, BudgetRange(p.BudgetLow, p.BudgetHigh)...)

	return fields
}

// Template проверяет входные данные нового шаблона.
func Template(t *models.Template) []apperror.FieldError {
	var fields []apperror.FieldError

	if err := ValidateKebabID(t.ID); err != nil {
		fields = append(fields, apperror.FieldError{Field: "id", Message: err.Error()})
	}
	if strings.TrimSpace(t.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "название обязательно"})
	}
	if t.Price <= 0 {
		fields = append(fields, apperror.FieldError{Field: "price", Message: "цена должна быть положительной"})
	}
	if strings.TrimSpace(t.ShortDesc) == "" {
		fields = append(fields, apperror.FieldError{Field: "shortDesc", Message: "краткое описание обязательно"})
	}

	return fields
}

// TemplatePatch проверяет частичное обновление шаблона.
func TemplatePatch(p *models.TemplatePatch) []apperror.FieldError {
	var fields []apperror.FieldError

	if p.Price != nil && *p.Price <= 0 {
		fields = append(fields, apperror.FieldError{Field: "price", Message: "цена должна быть положительной"})
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "название не может быть пустым"})
	}

	return fields
}

// Project проверяет входные данные нового проекта портфолио.
func Project(p *models.Project) []apperror.FieldError {
	var fields []apperror.FieldError

	if err := ValidateKebabID(p.ID); err != nil {
		fields = append(fields, apperror.FieldError{Field: "id", Message: err.Error()})
	}
	if strings.TrimSpace(p.Title) == "" {
		fields = append(fields, apperror.FieldError{Field: "title", Message: "заголовок обязателен"})
	}
	if strings.TrimSpace(p.ShortDesc) == "" {
		fields = append(fields, apperror.FieldError{Field: "shortDesc", Message: "краткое описание обязательно"})
	}

	return fields
}

// ProjectPatch проверяет частичное обновление проекта.
func ProjectPatch(p *models.ProjectPatch) []apperror.FieldError {
	var fields []apperror.FieldError

	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		fields = append(fields, apperror.FieldError{Field: "title", Message: "заголовок не может быть пустым"})
	}

	return fields
}

// BudgetRange проверяет инвариант low ≤ high, когда заданы обе границы.
// Вызывается и на входных данных, и на записи после наложения патча:
// патч с одной границей не должен давать запись с инвертированным бюджетом.
func BudgetRange(low, high *float64) []apperror.FieldError {
	var fields []apperror.FieldError

	if low != nil && *low <= 0 {
		fields = append(fields, apperror.FieldError{Field: "budgetLow", Message: "нижняя граница бюджета должна быть положительной"})
	}
	if high != nil && *high <= 0 {
		fields = append(fields, apperror.FieldError{Field: "budgetHigh", Message: "верхняя граница бюджета должна быть положительной"})
	}
	if low != nil && high != nil && *low > *high {
		fields = append(fields, apperror.FieldError{
			Field:   "budgetHigh",
			Message: "верхняя граница бюджета не может быть меньше нижней",
		})
	}

	return fields
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

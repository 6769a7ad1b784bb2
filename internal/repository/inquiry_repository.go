package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/fits-backend/internal/models"
	"github.com/ignatzorin/fits-backend/internal/pkg/apperror"
	"github.com/ignatzorin/fits-backend/internal/store"
	"github.com/ignatzorin/fits-backend/internal/validation"
)

// InquiryRepository отвечает за работу с заявками.
// Каждая операция читает коллекцию целиком и на мутации пишет её обратно.
type InquiryRepository struct {
	store store.DocumentStore
}

// NewInquiryRepository создаёт экземпляр репозитория.
func NewInquiryRepository(s store.DocumentStore) *InquiryRepository {
	return &InquiryRepository{store: s}
}

// GetAll возвращает все заявки, новые сверху.
func (r *InquiryRepository) GetAll(ctx context.Context) ([]models.Inquiry, error) {
	inquiries, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(inquiries, func(i, j int) bool {
		return inquiries[i].CreatedAt.After(inquiries[j].CreatedAt)
	})
	return inquiries, nil
}

// GetByID возвращает заявку по идентификатору.
func (r *InquiryRepository) GetByID(ctx context.Context, id string) (*models.Inquiry, error) {
	inquiries, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range inquiries {
		if inquiries[i].ID == id {
			return &inquiries[i], nil
		}
	}
	return nil, apperror.ErrInquiryNotFound
}

// Create валидирует заявку, проставляет дефолты и дописывает её в коллекцию.
func (r *InquiryRepository) Create(ctx context.Context, in *models.Inquiry) (*models.Inquiry, error) {
	if in.Status == "" {
		in.Status = models.InquiryStatusNew
	}
	if fields := validation.Inquiry(in); len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	inquiries, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	if in.ID == "" {
		in.ID = newInquiryID()
	}
	for i := range inquiries {
		if inquiries[i].ID == in.ID {
			return nil, apperror.New(apperror.ErrCodeConflict, "заявка с таким id уже существует")
		}
	}

	now := time.Now().UTC()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = now
	}
	in.UpdatedAt = now
	if in.Services == nil {
		in.Services = []string{}
	}

	inquiries = append(inquiries, *in)
	if err := r.store.Write(ctx, store.KeyLeads, inquiries); err != nil {
		return nil, err
	}
	return in, nil
}

// Update накладывает патч на заявку и сохраняет коллекцию.
// Первый уход статуса из "new" фиксируется в reviewedAt.
func (r *InquiryRepository) Update(ctx context.Context, id string, patch *models.InquiryPatch) (*models.Inquiry, error) {
	if fields := validation.InquiryPatch(patch); len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	inquiries, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range inquiries {
		if inquiries[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperror.ErrInquiryNotFound
	}

	item := &inquiries[idx]
	applyInquiryPatch(item, patch)

	// Патч с одной границей бюджета проверяется против сохранённой второй.
	if patch.BudgetLow != nil || patch.BudgetHigh != nil {
		if fields := validation.BudgetRange(item.BudgetLow, item.BudgetHigh); len(fields) > 0 {
			return nil, apperror.Validation(fields)
		}
	}

	if patch.Status != nil && *patch.Status != models.InquiryStatusNew && item.ReviewedAt == nil {
		now := time.Now().UTC()
		item.ReviewedAt = &now
	}
	item.UpdatedAt = time.Now().UTC()

	if err := r.store.Write(ctx, store.KeyLeads, inquiries); err != nil {
		return nil, err
	}

	updated := *item
	return &updated, nil
}

// Delete удаляет заявку из коллекции.
func (r *InquiryRepository) Delete(ctx context.Context, id string) error {
	inquiries, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	filtered := inquiries[:0:0]
	for _, inq := range inquiries {
		if inq.ID != id {
			filtered = append(filtered, inq)
		}
	}
	if len(filtered) == len(inquiries) {
		return apperror.ErrInquiryNotFound
	}

	return r.store.Write(ctx, store.KeyLeads, filtered)
}

// Search ищет заявки по подстроке в имени, email и описании,
// с опциональным префильтром по статусу.
func (r *InquiryRepository) Search(ctx context.Context, term, status string) ([]models.Inquiry, error) {
	inquiries, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var result []models.Inquiry
	term = strings.ToLower(strings.TrimSpace(term))
	for _, inq := range inquiries {
		if status != "" && inq.Status != status {
			continue
		}
		if term != "" && !containsFold(term, inq.Name, inq.Email, inq.Description) {
			continue
		}
		result = append(result, inq)
	}
	return result, nil
}

func (r *InquiryRepository) readAll(ctx context.Context) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	if err := r.store.Read(ctx, store.KeyLeads, &inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}

func applyInquiryPatch(item *models.Inquiry, p *models.InquiryPatch) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Email != nil {
		item.Email = *p.Email
	}
	if p.Company != nil {
		item.Company = p.Company
	}
	if p.Phone != nil {
		item.Phone = p.Phone
	}
	if p.Services != nil {
		item.Services = *p.Services
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.HasExistingSystem != nil {
		item.HasExistingSystem = *p.HasExistingSystem
	}
	if p.FilePath != nil {
		item.FilePath = p.FilePath
	}
	if p.BudgetLow != nil {
		item.BudgetLow = p.BudgetLow
	}
	if p.BudgetHigh != nil {
		item.BudgetHigh = p.BudgetHigh
	}
	if p.DesiredDate != nil {
		item.DesiredDate = p.DesiredDate
	}
	if p.TemplateID != nil {
		item.TemplateID = p.TemplateID
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
}

// newInquiryID генерирует идентификатор вида inquiry-<мс>-<случайный хвост>.
func newInquiryID() string {
	return fmt.Sprintf("inquiry-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// containsFold проверяет вхождение подстроки без учёта регистра
// хотя бы в одно из полей.
func containsFold(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

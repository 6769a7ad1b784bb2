package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/ignatzorin/fits-backend/internal/config"
	"github.com/ignatzorin/fits-backend/internal/logger"
	"github.com/ignatzorin/fits-backend/internal/models"
)

// MailService отправляет уведомления о новых заявках.
// Отправка best-effort: сбой логируется и не роняет приём заявки.
type MailService struct {
	cfg *config.Config
}

// NewMailService создаёт почтовый сервис.
func NewMailService(cfg *config.Config) *MailService {
	return &MailService{cfg: cfg}
}

// NotifyNewInquiry шлёт письмо о новой заявке на настроенный адрес.
func (s *MailService) NotifyNewInquiry(inq *models.Inquiry) error {
	if !s.cfg.MailConfigured() {
		logger.WithComponent("mail").Debugf("почта не настроена, пропускаем уведомление о заявке %s", inq.ID)
		return nil
	}

	subject := fmt.Sprintf("Новая заявка: %s", inq.Name)
	body := s.buildInquiryBody(inq)

	msg := strings.Join([]string{
		"From: " + s.cfg.MailFrom,
		"To: " + s.cfg.NotifyEmail,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.MailFrom, []string{s.cfg.NotifyEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("mail: не удалось отправить уведомление: %w", err)
	}
	return nil
}

func (s *MailService) buildInquiryBody(inq *models.Inquiry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Имя: %s\n", inq.Name)
	fmt.Fprintf(&b, "Email: %s\n", inq.Email)
	if inq.Company != nil && *inq.Company != "" {
		fmt.Fprintf(&b, "Компания: %s\n", *inq.Company)
	}
	if inq.Phone != nil && *inq.Phone != "" {
		fmt.Fprintf(&b, "Телефон: %s\n", *inq.Phone)
	}
	if len(inq.Services) > 0 {
		fmt.Fprintf(&b, "Услуги: %s\n", strings.Join(inq.Services, ", "))
	}
	fmt.Fprintf(&b, "Описание: %s\n", inq.Description)
	if inq.BudgetLow != nil || inq.BudgetHigh != nil {
		low, high := "0", "не ограничен"
		if inq.BudgetLow != nil {
			low = fmt.Sprintf("%.0f", *inq.BudgetLow)
		}
		if inq.BudgetHigh != nil {
			high = fmt.Sprintf("%.0f", *inq.BudgetHigh)
		}
		fmt.Fprintf(&b, "Бюджет: $%s - $%s\n", low, high)
	}
	if inq.HasExistingSystem {
		b.WriteString("Есть существующая таблица: да\n")
	}
	if inq.FilePath != nil && *inq.FilePath != "" {
		fmt.Fprintf(&b, "Приложенный файл: %s\n", *inq.FilePath)
	}
	if inq.DesiredDate != nil && *inq.DesiredDate != "" {
		fmt.Fprintf(&b, "Желаемый срок: %s\n", *inq.DesiredDate)
	}
	if inq.TemplateID != nil && *inq.TemplateID != "" {
		fmt.Fprintf(&b, "Шаблон: %s\n", *inq.TemplateID)
	}

	return b.String()
}

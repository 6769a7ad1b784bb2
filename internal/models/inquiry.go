package models

import "time"

// Статусы заявки.
const (
	InquiryStatusNew     = "new"
	InquiryStatusChecked = "checked"
	InquiryStatusDropped = "dropped"
)

// Inquiry описывает заявку потенциального клиента.
type Inquiry struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Company           *string    `json:"company,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	Services          []string   `json:"services"`
	Description       string     `json:"description"`
	HasExistingSystem bool       `json:"hasExistingSystem"`
	FilePath          *string    `json:"filePath,omitempty"`
	BudgetLow         *float64   `json:"budgetLow,omitempty"`
	BudgetHigh        *float64   `json:"budgetHigh,omitempty"`
	DesiredDate       *string    `json:"desiredDate,omitempty"`
	TemplateID        *string    `json:"templateId,omitempty"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	ReviewedAt        *time.Time `json:"reviewedAt,omitempty"`
}

// InquiryPatch содержит частичное обновление заявки.
// Nil-поля не трогают существующие значения.
type InquiryPatch struct {
	Name              *string   `json:"name,omitempty"`
	Email             *string   `json:"email,omitempty"`
	Company           *string   `json:"company,omitempty"`
	Phone             *string   `json:"phone,omitempty"`
	Services          *[]string `json:"services,omitempty"`
	Description       *string   `json:"description,omitempty"`
	HasExistingSystem *bool     `json:"hasExistingSystem,omitempty"`
	FilePath          *string   `json:"filePath,omitempty"`
	BudgetLow         *float64  `json:"budgetLow,omitempty"`
	BudgetHigh        *float64  `json:"budgetHigh,omitempty"`
	DesiredDate       *string   `json:"desiredDate,omitempty"`
	TemplateID        *string   `json:"templateId,omitempty"`
	Status            *string   `json:"status,omitempty"`
}

// ValidInquiryStatus проверяет, что статус входит в допустимый набор.
func ValidInquiryStatus(status string) bool {
	switch status {
	case InquiryStatusNew, InquiryStatusChecked, InquiryStatusDropped:
		return true
	}
	return false
}

package models

import "time"

// Project описывает работу в портфолио.
// В отличие от шаблонов, проект виден по умолчанию, пока его явно не скрыли.
type Project struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	ShortDesc  string    `json:"shortDesc"`
	LongDesc   string    `json:"longDesc,omitempty"`
	Cover      string    `json:"cover"`
	Images     []string  `json:"images"`
	SheetURL   *string   `json:"sheetUrl,omitempty"`
	BuyURL     *string   `json:"buyUrl,omitempty"`
	PreviewURL *string   `json:"previewUrl,omitempty"`
	UseCases   []string  `json:"useCases"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ProjectInput — входные данные создания проекта. Active через указатель:
// проект без явного значения публикуется сразу.
type ProjectInput struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	ShortDesc  string   `json:"shortDesc"`
	LongDesc   string   `json:"longDesc"`
	Cover      string   `json:"cover"`
	Images     []string `json:"images"`
	SheetURL   *string  `json:"sheetUrl"`
	BuyURL     *string  `json:"buyUrl"`
	PreviewURL *string  `json:"previewUrl"`
	UseCases   []string `json:"useCases"`
	Active     *bool    `json:"active"`
}

// ProjectPatch содержит частичное обновление проекта портфолио.
type ProjectPatch struct {
	Title      *string   `json:"title,omitempty"`
	ShortDesc  *string   `json:"shortDesc,omitempty"`
	LongDesc   *string   `json:"longDesc,omitempty"`
	Cover      *string   `json:"cover,omitempty"`
	Images     *[]string `json:"images,omitempty"`
	SheetURL   *string   `json:"sheetUrl,omitempty"`
	BuyURL     *string   `json:"buyUrl,omitempty"`
	PreviewURL *string   `json:"previewUrl,omitempty"`
	UseCases   *[]string `json:"useCases,omitempty"`
	Active     *bool     `json:"active,omitempty"`
}

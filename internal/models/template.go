package models

import "time"

// DefaultCover используется, когда обложка не задана.
const DefaultCover = "https://picsum.photos/seed/template/600"

// Template описывает шаблон таблицы в каталоге.
// Шаблон не виден на публичных страницах, пока active не выставлен явно.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	ShortDesc   string    `json:"shortDesc"`
	LongDesc    string    `json:"longDesc,omitempty"`
	Features    []string  `json:"features"`
	UseCases    []string  `json:"useCases"`
	Images      []string  `json:"images"`
	Cover       string    `json:"cover"`
	PreviewURL  *string   `json:"previewUrl,omitempty"`
	PurchaseURL *string   `json:"purchaseUrl,omitempty"`
	BuyURL      *string   `json:"buyUrl,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TemplateInput — входные данные создания шаблона. Active через указатель,
// чтобы отличить «не передан» (дефолт false) от явного значения.
type TemplateInput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	ShortDesc   string   `json:"shortDesc"`
	LongDesc    string   `json:"longDesc"`
	Features    []string `json:"features"`
	UseCases    []string `json:"useCases"`
	Images      []string `json:"images"`
	Cover       string   `json:"cover"`
	PreviewURL  *string  `json:"previewUrl"`
	PurchaseURL *string  `json:"purchaseUrl"`
	BuyURL      *string  `json:"buyUrl"`
	Active      *bool    `json:"active"`
}

// TemplatePatch содержит частичное обновление шаблона.
type TemplatePatch struct {
	Name        *string   `json:"name,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	ShortDesc   *string   `json:"shortDesc,omitempty"`
	LongDesc    *string   `json:"longDesc,omitempty"`
	Features    *[]string `json:"features,omitempty"`
	UseCases    *[]string `json:"useCases,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Cover       *string   `json:"cover,omitempty"`
	PreviewURL  *string   `json:"previewUrl,omitempty"`
	PurchaseURL *string   `json:"purchaseUrl,omitempty"`
	BuyURL      *string   `json:"buyUrl,omitempty"`
	Active      *bool     `json:"active,omitempty"`
}

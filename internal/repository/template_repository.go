package repository

import (
	"context"
	"strings"
	"time"

	"github.com/ignatzorin/fits-backend/internal/models"
	"github.com/ignatzorin/fits-backend/internal/pkg/apperror"
	"github.com/ignatzorin/fits-backend/internal/store"
	"github.com/ignatzorin/fits-backend/internal/validation"
)

// TemplateRepository отвечает за каталог шаблонов.
type TemplateRepository struct {
	store store.DocumentStore
}

// NewTemplateRepository создаёт экземпляр репозитория.
func NewTemplateRepository(s store.DocumentStore) *TemplateRepository {
	return &TemplateRepository{store: s}
}

// GetAll возвращает все шаблоны в порядке добавления.
func (r *TemplateRepository) GetAll(ctx context.Context) ([]models.Template, error) {
	return r.readAll(ctx)
}

// GetActive возвращает только опубликованные шаблоны.
func (r *TemplateRepository) GetActive(ctx context.Context) ([]models.Template, error) {
	templates, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	var active []models.Template
	for _, t := range templates {
		if t.Active {
			active = append(active, t)
		}
	}
	return active, nil
}

// GetByID возвращает шаблон по идентификатору, включая неопубликованные.
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	templates, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range templates {
		if templates[i].ID == id {
			return &templates[i], nil
		}
	}
	return nil, apperror.ErrTemplateNotFound
}

// Create собирает шаблон из входных данных и дописывает его в коллекцию.
// Шаблон без явного active остаётся неопубликованным.
func (r *TemplateRepository) Create(ctx context.Context, in *models.TemplateInput) (*models.Template, error) {
	now := time.Now().UTC()
	t := models.Template{
		ID:          in.ID,
		Name:        in.Name,
		Price:       in.Price,
		ShortDesc:   in.ShortDesc,
		LongDesc:    in.LongDesc,
		Features:    orEmpty(in.Features),
		UseCases:    orEmpty(in.UseCases),
		Images:      orEmpty(in.Images),
		Cover:       in.Cover,
		PreviewURL:  in.PreviewURL,
		PurchaseURL: in.PurchaseURL,
		BuyURL:      in.BuyURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Active != nil {
		t.Active = *in.Active
	}
	if t.Cover == "" {
		t.Cover = models.DefaultCover
	}

	if fields := validation.Template(&t); len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	templates, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == t.ID {
			return nil, apperror.New(apperror.ErrCodeConflict, "шаблон с таким id уже существует")
		}
	}

	templates = append(templates, t)
	if err := r.store.Write(ctx, store.KeyTemplates, templates); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update накладывает патч на шаблон и сохраняет коллекцию.
func (r *TemplateRepository) Update(ctx context.Context, id string, patch *models.TemplatePatch) (*models.Template, error) {
	if fields := validation.TemplatePatch(patch); len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	templates, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range templates {
		if templates[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperror.ErrTemplateNotFound
	}

	t := &templates[idx]
	applyTemplatePatch(t, patch)
	t.UpdatedAt = time.Now().UTC()

	if err := r.store.Write(ctx, store.KeyTemplates, templates); err != nil {
		return nil, err
	}

	updated := *t
	return &updated, nil
}

// Delete удаляет шаблон из коллекции.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	templates, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	filtered := templates[:0:0]
	for _, t := range templates {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == len(templates) {
		return apperror.ErrTemplateNotFound
	}

	return r.store.Write(ctx, store.KeyTemplates, filtered)
}

// Search ищет шаблоны по подстроке в названии, описаниях, фичах и
// сценариях использования, с опциональным префильтром по active.
func (r *TemplateRepository) Search(ctx context.Context, term string, active *bool) ([]models.Template, error) {
	templates, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	var result []models.Template
	term = strings.ToLower(strings.TrimSpace(term))
	for _, t := range templates {
		if active != nil && t.Active != *active {
			continue
		}
		if term != "" {
			haystack := append([]string{t.Name, t.ShortDesc, t.LongDesc}, t.Features...)
			haystack = append(haystack, t.UseCases...)
			if !containsFold(term, haystack...) {
				continue
			}
		}
		result = append(result, t)
	}
	return result, nil
}

func (r *TemplateRepository) readAll(ctx context.Context) ([]models.Template, error) {
	var templates []models.Template
	if err := r.store.Read(ctx, store.KeyTemplates, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func applyTemplatePatch(t *models.Template, p *models.TemplatePatch) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.ShortDesc != nil {
		t.ShortDesc = *p.ShortDesc
	}
	if p.LongDesc != nil {
		t.LongDesc = *p.LongDesc
	}
	if p.Features != nil {
		t.Features = *p.Features
	}
	if p.UseCases != nil {
		t.UseCases = *p.UseCases
	}
	if p.Images != nil {
		t.Images = *p.Images
	}
	if p.Cover != nil {
		t.Cover = *p.Cover
	}
	if p.PreviewURL != nil {
		t.PreviewURL = p.PreviewURL
	}
	if p.PurchaseURL != nil {
		t.PurchaseURL = p.PurchaseURL
	}
	if p.BuyURL != nil {
		t.BuyURL = p.BuyURL
	}
	if p.Active != nil {
		t.Active = *p.Active
	}
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

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

// ProjectRepository отвечает за портфолио.
type ProjectRepository struct {
	store store.DocumentStore
}

// NewProjectRepository создаёт экземпляр репозитория.
func NewProjectRepository(s store.DocumentStore) *ProjectRepository {
	return &ProjectRepository{store: s}
}

// GetAll возвращает все проекты в порядке добавления.
func (r *ProjectRepository) GetAll(ctx context.Context) ([]models.Project, error) {
	return r.readAll(ctx)
}

// GetActive возвращает только видимые проекты.
func (r *ProjectRepository) GetActive(ctx context.Context) ([]models.Project, error) {
	projects, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	var active []models.Project
	for _, p := range projects {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

// GetByID возвращает проект по идентификатору, включая скрытые.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	projects, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, apperror.ErrProjectNotFound
}

// Create собирает проект из входных данных и дописывает его в коллекцию.
// Проект без явного active виден сразу.
func (r *ProjectRepository) Create(ctx context.Context, in *models.ProjectInput) (*models.Project, error) {
	now := time.Now().UTC()
	p := models.Project{
		ID:         in.ID,
		Title:      in.Title,
		ShortDesc:  in.ShortDesc,
		LongDesc:   in.LongDesc,
		Cover:      in.Cover,
		Images:     orEmpty(in.Images),
		SheetURL:   in.SheetURL,
		BuyURL:     in.BuyURL,
		PreviewURL: in.PreviewURL,
		UseCases:   orEmpty(in.UseCases),
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	if p.Cover == "" {
		p.Cover = models.DefaultCover
	}

	if fields := validation.Project(&p); len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	projects, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == p.ID {
			return nil, apperror.New(apperror.ErrCodeConflict, "проект с таким id уже существует")
		}
	}

	projects = append(projects, p)
	if err := r.store.Write(ctx, store.KeyPortfolio, projects); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update накладывает патч на проект и сохраняет коллекцию.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch *models.ProjectPatch) (*models.Project, error) {
	if fields := validation.ProjectPatch(patch); len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	projects, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range projects {
		if projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperror.ErrProjectNotFound
	}

	p := &projects[idx]
	applyProjectPatch(p, patch)
	p.UpdatedAt = time.Now().UTC()

	if err := r.store.Write(ctx, store.KeyPortfolio, projects); err != nil {
		return nil, err
	}

	updated := *p
	return &updated, nil
}

// Delete удаляет проект из коллекции.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	projects, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	filtered := projects[:0:0]
	for _, p := range projects {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == len(projects) {
		return apperror.ErrProjectNotFound
	}

	return r.store.Write(ctx, store.KeyPortfolio, filtered)
}

// Search ищет проекты по подстроке в заголовке, описаниях и сценариях
// использования, с опциональным префильтром по active.
func (r *ProjectRepository) Search(ctx context.Context, term string, active *bool) ([]models.Project, error) {
	projects, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	var result []models.Project
	term = strings.ToLower(strings.TrimSpace(term))
	for _, p := range projects {
		if active != nil && p.Active != *active {
			continue
		}
		if term != "" {
			haystack := append([]string{p.Title, p.ShortDesc, p.LongDesc}, p.UseCases...)
			if !containsFold(term, haystack...) {
				continue
			}
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *ProjectRepository) readAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.store.Read(ctx, store.KeyPortfolio, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func applyProjectPatch(p *models.Project, patch *models.ProjectPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.ShortDesc != nil {
		p.ShortDesc = *patch.ShortDesc
	}
	if patch.LongDesc != nil {
		p.LongDesc = *patch.LongDesc
	}
	if patch.Cover != nil {
		p.Cover = *patch.Cover
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.SheetURL != nil {
		p.SheetURL = patch.SheetURL
	}
	if patch.BuyURL != nil {
		p.BuyURL = patch.BuyURL
	}
	if patch.PreviewURL != nil {
		p.PreviewURL = patch.PreviewURL
	}
	if patch.UseCases != nil {
		p.UseCases = *patch.UseCases
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
}

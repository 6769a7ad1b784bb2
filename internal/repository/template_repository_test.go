package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/ignatzorin/fits-backend/internal/models"
	"github.com/ignatzorin/fits-backend/internal/pkg/apperror"
	"github.com/ignatzorin/fits-backend/internal/store"
)

func newTestTemplateRepo(t *testing.T) *TemplateRepository {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewTemplateRepository(s)
}

func validTemplateInput(id string) *models.TemplateInput {
	return &models.TemplateInput{
		ID:        id,
		Name:      "Учёт склада",
		Price:     4900,
		ShortDesc: "Таблица складского учёта",
	}
}

func TestTemplateRepository_CreateDefaults(t *testing.T) {
	repo := newTestTemplateRepo(t)

	created, err := repo.Create(context.Background(), validTemplateInput("sklad"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Active {
		t.Error("expected template inactive by default")
	}
	if created.Cover != models.DefaultCover {
		t.Errorf("expected default cover, got %s", created.Cover)
	}
	if created.Features == nil || created.UseCases == nil || created.Images == nil {
		t.Error("expected list fields to be empty slices, got nil")
	}
}

func TestTemplateRepository_CreateExplicitActive(t *testing.T) {
	repo := newTestTemplateRepo(t)

	in := validTemplateInput("sklad")
	active := true
	in.Active = &active

	created, err := repo.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created.Active {
		t.Error("expected explicit active to be honored")
	}
}

func TestTemplateRepository_CreateRejectsBadID(t *testing.T) {
	repo := newTestTemplateRepo(t)

	if _, err := repo.Create(context.Background(), validTemplateInput("Учёт Склада")); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error for non-kebab id, got %v", err)
	}
}

func TestTemplateRepository_CreateConflict(t *testing.T) {
	repo := newTestTemplateRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, validTemplateInput("sklad")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := repo.Create(ctx, validTemplateInput("sklad"))
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.ErrCodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestTemplateRepository_GetActiveFilters(t *testing.T) {
	repo := newTestTemplateRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, validTemplateInput("hidden")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := validTemplateInput("visible")
	active := true
	in.Active = &active
	if _, err := repo.Create(ctx, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetActive(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "visible" {
		t.Errorf("expected only active templates, got %+v", got)
	}
}

func TestTemplateRepository_UpdateActiveToggle(t *testing.T) {
	repo := newTestTemplateRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, validTemplateInput("sklad"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	active := true
	updated, err := repo.Update(ctx, created.ID, &models.TemplatePatch{Active: &active})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Active {
		t.Error("expected template published after patch")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Error("expected updatedAt refreshed")
	}
}

func TestTemplateRepository_UpdateRejectsNonPositivePrice(t *testing.T) {
	repo := newTestTemplateRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, validTemplateInput("sklad"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	price := 0.0
	if _, err := repo.Update(ctx, created.ID, &models.TemplatePatch{Price: &price}); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTemplateRepository_DeleteNotFound(t *testing.T) {
	repo := newTestTemplateRepo(t)

	if err := repo.Delete(context.Background(), "missing"); !apperror.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTemplateRepository_Search(t *testing.T) {
	repo := newTestTemplateRepo(t)
	ctx := context.Background()

	first := validTemplateInput("sklad")
	first.UseCases = []string{"Розничный магазин"}
	if _, err := repo.Create(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := validTemplateInput("crm")
	second.Name = "Мини-CRM"
	active := true
	second.Active = &active
	if _, err := repo.Create(ctx, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.Search(ctx, "магазин", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 || found[0].ID != "sklad" {
		t.Errorf("expected match on use cases, got %+v", found)
	}

	found, err = repo.Search(ctx, "", &active)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 || found[0].ID != "crm" {
		t.Errorf("expected active filter to apply, got %+v", found)
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/fits-backend/internal/models"
	"github.com/ignatzorin/fits-backend/internal/repository"
	"github.com/ignatzorin/fits-backend/internal/store"
)

func newPortfolioTestEnv(t *testing.T) (*gin.Engine, *repository.ProjectRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo := repository.NewProjectRepository(s)
	handler := NewPortfolioHandler(repo)

	r := gin.New()
	r.GET("/api/portfolio", handler.ListPublic)
	r.GET("/api/portfolio/:id", handler.GetPublic)
	return r, repo
}

func seedProject(t *testing.T, repo *repository.ProjectRepository, id string, active bool) {
	t.Helper()
	_, err := repo.Create(context.Background(), &models.ProjectInput{
		ID:        id,
		Title:     "Проект " + id,
		ShortDesc: "Описание",
		Active:    &active,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPortfolioHandler_PublicListOnlyActive(t *testing.T) {
	r, repo := newPortfolioTestEnv(t)
	seedProject(t, repo, "coffee", true)
	seedProject(t, repo, "draft", false)

	req, _ := http.NewRequest(http.MethodGet, "/api/portfolio", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list []models.Project
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if assert.Len(t, list, 1) {
		assert.Equal(t, "coffee", list[0].ID)
	}
}

func TestPortfolioHandler_PublicGetHidesInactive(t *testing.T) {
	r, repo := newPortfolioTestEnv(t)
	seedProject(t, repo, "draft", false)

	req, _ := http.NewRequest(http.MethodGet, "/api/portfolio/draft", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPortfolioHandler_PublicGetUnknown(t *testing.T) {
	r, _ := newPortfolioTestEnv(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/portfolio/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

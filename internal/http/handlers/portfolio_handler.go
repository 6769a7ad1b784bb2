package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fits-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fits-backend/internal/models"
	"github.com/ignatzorin/fits-backend/internal/repository"
)

// PortfolioHandler обслуживает публичное портфолио и админский CRUD.
type PortfolioHandler struct {
	repo *repository.ProjectRepository
}

// NewPortfolioHandler создаёт хэндлер.
func NewPortfolioHandler(repo *repository.ProjectRepository) *PortfolioHandler {
	return &PortfolioHandler{repo: repo}
}

// ListPublic обрабатывает GET /api/portfolio: только активные проекты.
func (h *PortfolioHandler) ListPublic(c *gin.Context) {
	projects, err := h.repo.GetActive(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetPublic обрабатывает GET /api/portfolio/:id.
// Скрытый проект для публики неотличим от несуществующего.
func (h *PortfolioHandler) GetPublic(c *gin.Context) {
	project, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if !project.Active {
		common.RespondNotFound(c, "проект не найден")
		return
	}
	c.JSON(http.StatusOK, project)
}

// List обрабатывает GET /api/admin/portfolio с опциональным поиском.
func (h *PortfolioHandler) List(c *gin.Context) {
	term := c.Query("q")
	active := common.ParseBoolQuery(c, "active")

	var (
		projects []models.Project
		err      error
	)
	if term != "" || active != nil {
		projects, err = h.repo.Search(c.Request.Context(), term, active)
	} else {
		projects, err = h.repo.GetAll(c.Request.Context())
	}
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Get обрабатывает GET /api/admin/portfolio/:id.
func (h *PortfolioHandler) Get(c *gin.Context) {
	project, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Create обрабатывает POST /api/admin/portfolio.
func (h *PortfolioHandler) Create(c *gin.Context) {
	var in models.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	created, err := h.repo.Create(c.Request.Context(), &in)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update обрабатывает PATCH /api/admin/portfolio/:id.
func (h *PortfolioHandler) Update(c *gin.Context) {
	var patch models.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateActive обрабатывает PATCH /api/admin/portfolio/:id/active.
func (h *PortfolioHandler) UpdateActive(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "поле active обязательно")
		return
	}

	patch := models.ProjectPatch{Active: req.Active}
	updated, err := h.repo.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete обрабатывает DELETE /api/admin/portfolio/:id.
func (h *PortfolioHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "проект удалён"})
}

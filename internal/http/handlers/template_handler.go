package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fits-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fits-backend/internal/models"
	"github.com/ignatzorin/fits-backend/internal/repository"
)

// TemplateHandler обслуживает публичный каталог шаблонов и админский CRUD.
type TemplateHandler struct {
	repo *repository.TemplateRepository
}

// NewTemplateHandler создаёт хэндлер.
func NewTemplateHandler(repo *repository.TemplateRepository) *TemplateHandler {
	return &TemplateHandler{repo: repo}
}

// ListPublic обрабатывает GET /api/templates: только активные шаблоны.
func (h *TemplateHandler) ListPublic(c *gin.Context) {
	templates, err := h.repo.GetActive(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetPublic обрабатывает GET /api/templates/:id.
// Неактивный шаблон для публики неотличим от несуществующего.
func (h *TemplateHandler) GetPublic(c *gin.Context) {
	template, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if !template.Active {
		common.RespondNotFound(c, "шаблон не найден")
		return
	}
	c.JSON(http.StatusOK, template)
}

// List обрабатывает GET /api/admin/templates с опциональным поиском.
func (h *TemplateHandler) List(c *gin.Context) {
	term := c.Query("q")
	active := common.ParseBoolQuery(c, "active")

	var (
		templates []models.Template
		err       error
	)
	if term != "" || active != nil {
		templates, err = h.repo.Search(c.Request.Context(), term, active)
	} else {
		templates, err = h.repo.GetAll(c.Request.Context())
	}
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// Get обрабатывает GET /api/admin/templates/:id.
func (h *TemplateHandler) Get(c *gin.Context) {
	template, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

// Create обрабатывает POST /api/admin/templates.
func (h *TemplateHandler) Create(c *gin.Context) {
	var in models.TemplateInput
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

// Update обрабатывает PATCH /api/admin/templates/:id.
func (h *TemplateHandler) Update(c *gin.Context) {
	var patch models.TemplatePatch
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

// UpdateActive обрабатывает PATCH /api/admin/templates/:id/active.
func (h *TemplateHandler) UpdateActive(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "поле active обязательно")
		return
	}

	patch := models.TemplatePatch{Active: req.Active}
	updated, err := h.repo.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete обрабатывает DELETE /api/admin/templates/:id.
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "шаблон удалён"})
}

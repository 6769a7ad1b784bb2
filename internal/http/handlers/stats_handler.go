package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fits-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fits-backend/internal/models"
	"github.com/ignatzorin/fits-backend/internal/repository"
)

// StatsHandler собирает сводку для админской панели.
type StatsHandler struct {
	inquiries *repository.InquiryRepository
	templates *repository.TemplateRepository
	portfolio *repository.ProjectRepository
}

// NewStatsHandler создаёт хэндлер.
func NewStatsHandler(inquiries *repository.InquiryRepository, templates *repository.TemplateRepository, portfolio *repository.ProjectRepository) *StatsHandler {
	return &StatsHandler{inquiries: inquiries, templates: templates, portfolio: portfolio}
}

// Dashboard обрабатывает GET /api/admin/dashboard.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	inquiries, err := h.inquiries.GetAll(ctx)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	templates, err := h.templates.GetAll(ctx)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	projects, err := h.portfolio.GetAll(ctx)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	byStatus := map[string]int{
		models.InquiryStatusNew:     0,
		models.InquiryStatusChecked: 0,
		models.InquiryStatusDropped: 0,
	}
	for _, in := range inquiries {
		byStatus[in.Status]++
	}

	activeTemplates := 0
	for _, t := range templates {
		if t.Active {
			activeTemplates++
		}
	}
	activeProjects := 0
	for _, p := range projects {
		if p.Active {
			activeProjects++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"inquiries": gin.H{
			"total":    len(inquiries),
			"byStatus": byStatus,
		},
		"templates": gin.H{
			"total":  len(templates),
			"active": activeTemplates,
		},
		"portfolio": gin.H{
			"total":  len(projects),
			"active": activeProjects,
		},
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler отвечает на проверки живости.
type HealthHandler struct {
	env string
}

// NewHealthHandler создаёт хэндлер.
func NewHealthHandler(env string) *HealthHandler {
	return &HealthHandler{env: env}
}

// Check обрабатывает GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"env":    h.env,
	})
}

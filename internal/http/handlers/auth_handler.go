package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fits-backend/internal/service"
)

// AuthHandler предоставляет HTTP слой для входа и выхода из админки.
type AuthHandler struct {
	creds      *service.CredentialAuthenticator
	production bool
}

// NewAuthHandler создаёт хэндлер. creds может быть nil, если деплой
// использует стратегию внешнего провайдера.
func NewAuthHandler(creds *service.CredentialAuthenticator, production bool) *AuthHandler {
	return &AuthHandler{creds: creds, production: production}
}

// Login обрабатывает POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	if h.creds == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "вход по паролю не настроен"})
		return
	}

	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "логин и пароль обязательны"})
		return
	}

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "логин и пароль обязательны"})
		return
	}

	if !h.creds.VerifyCredentials(req.Username, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "неверные учетные данные"})
		return
	}

	token, err := h.creds.Issue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.SessionCookieName, token, int(h.creds.SessionTTL().Seconds()), "/", "", h.production, true)
	c.Redirect(http.StatusSeeOther, "/admin")
}

// Logout обрабатывает POST и GET /api/logout.
// Токен не отзывается на сервере: cookie стирается, а украденный токен
// остаётся валидным до истечения срока.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.SessionCookieName, "", -1, "/", "", h.production, true)
	c.Redirect(http.StatusSeeOther, "/")
}

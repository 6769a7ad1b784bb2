package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fits-backend/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextIdentityKey = "identity"
)

// AdminGate закрывает админские маршруты. Запрос без разрешённой личности
// не доходит до обработчика: API-запросы получают 401, запросы страниц —
// редирект на логин.
func AdminGate(auth service.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := auth.Authenticate(c.Request)
		if err != nil || identity == nil || identity.Role != service.AdminRole {
			if isAPIRequest(c.Request.URL.Path) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
				return
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

// CurrentIdentity достаёт личность вызывающего из контекста запроса.
func CurrentIdentity(c *gin.Context) (*service.Identity, bool) {
	raw, exists := c.Get(ContextIdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := raw.(*service.Identity)
	return identity, ok
}

func isAPIRequest(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

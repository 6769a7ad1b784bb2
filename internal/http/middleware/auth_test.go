package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/fits-backend/internal/service"
)

func newGatedRouter(auth service.Authenticator, invoked *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := func(c *gin.Context) {
		*invoked = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
	r.GET("/api/admin/inquiries", AdminGate(auth), handler)
	r.GET("/admin", AdminGate(auth), handler)
	return r
}

func newTestAuthenticator(t *testing.T) (*service.CredentialAuthenticator, string) {
	t.Helper()
	sessions := service.NewSessionManager("test-secret", time.Hour)
	auth := service.NewCredentialAuthenticator("admin", "pass", sessions)

	token, err := auth.Issue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return auth, token
}

func TestAdminGate_APIRequestWithoutSession(t *testing.T) {
	auth, _ := newTestAuthenticator(t)
	invoked := false
	r := newGatedRouter(auth, &invoked)

	req, _ := http.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "требуется авторизация")
	assert.False(t, invoked, "handler must not run for rejected request")
}

func TestAdminGate_PageRequestWithoutSessionRedirects(t *testing.T) {
	auth, _ := newTestAuthenticator(t)
	invoked := false
	r := newGatedRouter(auth, &invoked)

	req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, invoked, "handler must not run for rejected request")
}

func TestAdminGate_ValidSessionPasses(t *testing.T) {
	auth, token := newTestAuthenticator(t)
	invoked := false
	r := newGatedRouter(auth, &invoked)

	req, _ := http.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, invoked, "handler must run for authorized request")
}

func TestAdminGate_TamperedTokenRejected(t *testing.T) {
	auth, token := newTestAuthenticator(t)
	invoked := false
	r := newGatedRouter(auth, &invoked)

	req, _ := http.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: token + "x"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, invoked)
}

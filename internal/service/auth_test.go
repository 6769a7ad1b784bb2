package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ignatzorin/fits-backend/internal/pkg/apperror"
)

func TestCredentialAuthenticator_VerifyCredentials(t *testing.T) {
	sessions := NewSessionManager("test-secret", time.Hour)
	auth := NewCredentialAuthenticator("admin", "correct-horse", sessions)

	if !auth.VerifyCredentials("admin", "correct-horse") {
		t.Error("expected exact match to pass")
	}
	if auth.VerifyCredentials("admin", "wrong") {
		t.Error("expected wrong password to fail")
	}
	if auth.VerifyCredentials("Admin", "correct-horse") {
		t.Error("expected username comparison to be case-sensitive")
	}
}

func TestCredentialAuthenticator_EmptyCredentialsRejectAll(t *testing.T) {
	sessions := NewSessionManager("test-secret", time.Hour)
	auth := NewCredentialAuthenticator("", "", sessions)

	if auth.VerifyCredentials("", "") {
		t.Error("expected unconfigured credentials to reject everyone")
	}
}

func TestCredentialAuthenticator_AuthenticateFromCookie(t *testing.T) {
	sessions := NewSessionManager("test-secret", time.Hour)
	auth := NewCredentialAuthenticator("admin", "pass", sessions)

	token, err := auth.Issue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	identity, err := auth.Authenticate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Role != AdminRole {
		t.Errorf("expected admin role, got %s", identity.Role)
	}
}

func TestCredentialAuthenticator_AuthenticateWithoutCookie(t *testing.T) {
	sessions := NewSessionManager("test-secret", time.Hour)
	auth := NewCredentialAuthenticator("admin", "pass", sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	if _, err := auth.Authenticate(req); !apperror.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestProviderAuthenticator_AllowedEmail(t *testing.T) {
	auth := NewProviderAuthenticator("https://provider.example/userinfo", []string{"owner@example.com"})

	if !auth.AllowedEmail("Owner@Example.COM") {
		t.Error("expected case-insensitive allow-list match")
	}
	if auth.AllowedEmail("stranger@example.com") {
		t.Error("expected unknown email rejected")
	}

	empty := NewProviderAuthenticator("https://provider.example/userinfo", nil)
	if empty.AllowedEmail("owner@example.com") {
		t.Error("expected empty allow-list to reject everyone")
	}
}

func TestProviderAuthenticator_Authenticate(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email":"owner@example.com"}`))
	}))
	defer provider.Close()

	auth := NewProviderAuthenticator(provider.URL, []string{"owner@example.com"})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	identity, err := auth.Authenticate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Email != "owner@example.com" {
		t.Errorf("expected provider email, got %s", identity.Email)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	if _, err := auth.Authenticate(req); !apperror.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for rejected token, got %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	if _, err := auth.Authenticate(req); !apperror.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized without token, got %v", err)
	}
}

package service

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ignatzorin/fits-backend/internal/pkg/apperror"
)

// Authenticator разрешает личность вызывающего по HTTP-запросу.
// В деплое активна одна из двух стратегий: cookie с подписанным токеном
// либо делегирование внешнему провайдеру с проверкой allow-list.
type Authenticator interface {
	Authenticate(r *http.Request) (*Identity, error)
}

// CredentialAuthenticator — стратегия логин/пароль + подписанный токен в cookie.
type CredentialAuthenticator struct {
	username string
	password string
	sessions *SessionManager
}

// NewCredentialAuthenticator создаёт стратегию с парой учётных данных.
func NewCredentialAuthenticator(username, password string, sessions *SessionManager) *CredentialAuthenticator {
	return &CredentialAuthenticator{
		username: username,
		password: password,
		sessions: sessions,
	}
}

// VerifyCredentials сверяет пару логин/пароль с настроенными секретами.
func (a *CredentialAuthenticator) VerifyCredentials(username, password string) bool {
	if a.username == "" || a.password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

// Issue выпускает токен сессии после успешного логина.
func (a *CredentialAuthenticator) Issue() (string, error) {
	return a.sessions.Issue()
}

// SessionTTL возвращает срок жизни cookie.
func (a *CredentialAuthenticator) SessionTTL() time.Duration {
	return a.sessions.TTL()
}

// Authenticate извлекает cookie сессии и проверяет токен.
func (a *CredentialAuthenticator) Authenticate(r *http.Request) (*Identity, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, apperror.ErrUnauthorized
	}
	return a.sessions.Parse(cookie.Value)
}

// ProviderAuthenticator — стратегия внешнего провайдера личности.
// Провайдер подтверждает email, наша логика — только проверка allow-list.
type ProviderAuthenticator struct {
	userinfoURL string
	allowlist   []string
	client      *http.Client
}

// NewProviderAuthenticator создаёт стратегию с allow-list из конфигурации.
func NewProviderAuthenticator(userinfoURL string, allowlist []string) *ProviderAuthenticator {
	return &ProviderAuthenticator{
		userinfoURL: userinfoURL,
		allowlist:   allowlist,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Authenticate запрашивает userinfo у провайдера по токену вызывающего
// и сверяет email с allow-list. Пустой allow-list отклоняет всех.
func (a *ProviderAuthenticator) Authenticate(r *http.Request) (*Identity, error) {
	token := providerToken(r)
	if token == "" {
		return nil, apperror.ErrUnauthorized
	}

	email, err := a.resolveEmail(r, token)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	if !a.AllowedEmail(email) {
		return nil, apperror.ErrUnauthorized
	}

	return &Identity{ID: email, Role: AdminRole, Email: email}, nil
}

// AllowedEmail проверяет email по allow-list без учёта регистра.
func (a *ProviderAuthenticator) AllowedEmail(email string) bool {
	if email == "" || len(a.allowlist) == 0 {
		return false
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, allowed := range a.allowlist {
		if email == allowed {
			return true
		}
	}
	return false
}

func (a *ProviderAuthenticator) resolveEmail(r *http.Request, token string) (string, error) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, a.userinfoURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperror.ErrUnauthorized
	}

	var userinfo struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userinfo); err != nil {
		return "", err
	}
	return userinfo.Email, nil
}

// providerToken достаёт токен провайдера из заголовка или cookie.
func providerToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie("provider_session"); err == nil {
		return cookie.Value
	}
	return ""
}

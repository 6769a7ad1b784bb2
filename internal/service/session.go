package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ignatzorin/fits-backend/internal/pkg/apperror"
)

// SessionCookieName — имя cookie с токеном сессии админки.
const SessionCookieName = "session"

// AdminRole — единственная роль, допущенная к админке.
const AdminRole = "admin"

// Identity описывает авторизованного вызывающего.
type Identity struct {
	ID    string
	Role  string
	Email string
}

// SessionManager выпускает и проверяет подписанные токены сессии.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager создаёт менеджер сессий.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL возвращает срок жизни выпускаемых токенов.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue выпускает токен админской сессии.
func (m *SessionManager) Issue() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  AdminRole,
		"role": AdminRole,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse проверяет подпись и срок токена и возвращает личность.
// Просроченный, подделанный и неадминский токены неразличимы для
// вызывающего: наружу уходит один и тот же отказ.
func (m *SessionManager) Parse(raw string) (*Identity, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperror.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if role != AdminRole {
		return nil, apperror.ErrUnauthorized
	}

	return &Identity{ID: sub, Role: role}, nil
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env      string
	HTTPPort string
	BaseURL  string

	// Хранилище JSON-коллекций.
	DataDir   string
	SeedDir   string
	S3Bucket  string
	S3Prefix  string
	AWSRegion string

	// Загрузки заявок.
	UploadsDir      string
	MaxUploadSizeMB int64

	// Авторизация админки.
	SessionSecret   string
	SessionTTL      time.Duration
	AdminUsername   string
	AdminPassword   string
	AdminEmails     []string
	AuthUserinfoURL string

	// Уведомления о новых заявках.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	NotifyEmail  string

	AllowedOrigins  []string
	RateLimitLimit  int64
	RateLimitPeriod time.Duration
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:             env,
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		SeedDir:         getEnv("SEED_DIR", "./data"),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", "fits"),
		AWSRegion:       getEnv("AWS_REGION", "us-east-2"),
		UploadsDir:      getEnv("UPLOADS_DIR", "./uploads"),
		AdminUsername:   getEnv("ADMIN_USERNAME", ""),
		AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
		AuthUserinfoURL: getEnv("AUTH_USERINFO_URL", ""),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		MailFrom:        getEnv("MAIL_FROM", "noreply@freakinthesheets.com"),
		NotifyEmail:     getEnv("NOTIFY_EMAIL", ""),
	}

	// Валидация секрета сессии
	sessionSecret := getEnv("SESSION_SECRET", "")
	if env == "production" {
		if sessionSecret == "" || len(sessionSecret) < 32 {
			return nil, fmt.Errorf("config: SESSION_SECRET обязателен и должен быть не менее 32 символов в production")
		}
	} else if sessionSecret == "" {
		sessionSecret = "super-secret-development-only-change-in-production"
		log.Printf("config: WARNING - используется дефолтный SESSION_SECRET, измените в production!")
	}
	cfg.SessionSecret = sessionSecret

	// Allow-list email-ов админов (через запятую)
	if emails := getEnv("ADMIN_EMAILS", ""); emails != "" {
		for _, e := range strings.Split(emails, ",") {
			e = strings.ToLower(strings.TrimSpace(e))
			if e != "" {
				cfg.AdminEmails = append(cfg.AdminEmails, e)
			}
		}
	}

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	} else {
		cfg.AllowedOrigins = strings.Split(originsStr, ",")
		for i, origin := range cfg.AllowedOrigins {
			cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
		}
	}

	cfg.SessionTTL = mustParseDuration(getEnv("SESSION_TTL", "168h"))
	cfg.MaxUploadSizeMB = mustParseInt64(getEnv("MAX_UPLOAD_MB", "10"))
	cfg.RateLimitLimit = mustParseInt64(getEnv("RATE_LIMIT_LIMIT", "10"))
	cfg.RateLimitPeriod = mustParseDuration(getEnv("RATE_LIMIT_PERIOD", "1m"))

	return cfg, nil
}

// UseS3 сообщает, выбран ли удалённый бэкенд хранилища.
// Решение принимается один раз при старте процесса.
func (c *Config) UseS3() bool {
	return c.Env == "production" && c.S3Bucket != ""
}

// CredentialsConfigured сообщает, задана ли пара логин/пароль админа.
func (c *Config) CredentialsConfigured() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

// MailConfigured сообщает, включены ли почтовые уведомления.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.NotifyEmail != ""
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// mustParseDuration безопасно парсит строку в duration.
func mustParseDuration(v string) time.Duration {
	dur, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: не удалось распарсить длительность %q: %v", v, err)
	}
	return dur
}

// mustParseInt64 безопасно парсит строку в int64.
func mustParseInt64(v string) int64 {
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("config: не удалось распарсить число %q: %v", v, err)
	}
	return num
}

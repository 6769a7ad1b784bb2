package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ignatzorin/fits-backend/internal/config"
	httpHandlers "github.com/ignatzorin/fits-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/fits-backend/internal/http/router"
	"github.com/ignatzorin/fits-backend/internal/logger"
	"github.com/ignatzorin/fits-backend/internal/repository"
	"github.com/ignatzorin/fits-backend/internal/service"
	"github.com/ignatzorin/fits-backend/internal/storage"
	"github.com/ignatzorin/fits-backend/internal/store"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Бэкенд хранилища выбирается один раз при старте.
	documents, err := buildDocumentStore(ctx, cfg)
	if err != nil {
		log.Fatalf("main: не удалось подготовить хранилище документов: %v", err)
	}

	uploads, err := storage.NewUploadStorage(cfg.UploadsDir, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить хранилище загрузок: %v", err)
	}

	// Репозитории.
	inquiryRepo := repository.NewInquiryRepository(documents)
	templateRepo := repository.NewTemplateRepository(documents)
	projectRepo := repository.NewProjectRepository(documents)

	// Сервисы.
	sessions := service.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	mail := service.NewMailService(cfg)

	var (
		auth  service.Authenticator
		creds *service.CredentialAuthenticator
	)
	if cfg.CredentialsConfigured() {
		creds = service.NewCredentialAuthenticator(cfg.AdminUsername, cfg.AdminPassword, sessions)
		auth = creds
	} else {
		if cfg.AuthUserinfoURL == "" || len(cfg.AdminEmails) == 0 {
			log.Printf("main: WARNING - авторизация админки не настроена, все админские запросы будут отклонены")
		}
		auth = service.NewProviderAuthenticator(cfg.AuthUserinfoURL, cfg.AdminEmails)
	}

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(creds, cfg.Env == "production")
	inquiryHandler := httpHandlers.NewInquiryHandler(inquiryRepo, uploads, mail)
	templateHandler := httpHandlers.NewTemplateHandler(templateRepo)
	portfolioHandler := httpHandlers.NewPortfolioHandler(projectRepo)
	fileHandler := httpHandlers.NewFileHandler(uploads)
	statsHandler := httpHandlers.NewStatsHandler(inquiryRepo, templateRepo, projectRepo)
	healthHandler := httpHandlers.NewHealthHandler(cfg.Env)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, auth, authHandler, inquiryHandler, templateHandler, portfolioHandler, fileHandler, statsHandler, healthHandler)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// buildDocumentStore выбирает бэкенд: S3 в production при заданном бакете,
// иначе локальные JSON-файлы.
func buildDocumentStore(ctx context.Context, cfg *config.Config) (store.DocumentStore, error) {
	seeds := store.NewSeedSource(cfg.SeedDir)

	if cfg.UseS3() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, err
		}
		client := s3.NewFromConfig(awsCfg)
		log.Printf("main: хранилище документов — S3 бакет %s", cfg.S3Bucket)
		return store.NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix, seeds), nil
	}

	log.Printf("main: хранилище документов — локальный каталог %s", cfg.DataDir)
	return store.NewFileStore(cfg.DataDir)
}

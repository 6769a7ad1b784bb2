package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fits-backend/internal/config"
	"github.com/ignatzorin/fits-backend/internal/http/handlers"
	"github.com/ignatzorin/fits-backend/internal/http/middleware"
	"github.com/ignatzorin/fits-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	auth service.Authenticator,
	authHandler *handlers.AuthHandler,
	inquiryHandler *handlers.InquiryHandler,
	templateHandler *handlers.TemplateHandler,
	portfolioHandler *handlers.PortfolioHandler,
	fileHandler *handlers.FileHandler,
	statsHandler *handlers.StatsHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", healthHandler.Check)

	api := r.Group("/api")

	// Публичные маршруты
	publicRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.POST("/inquire", publicRateLimit, inquiryHandler.Submit)
	api.POST("/login", publicRateLimit, authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/logout", authHandler.Logout)
	api.GET("/templates", templateHandler.ListPublic)
	api.GET("/templates/:id", templateHandler.GetPublic)
	api.GET("/portfolio", portfolioHandler.ListPublic)
	api.GET("/portfolio/:id", portfolioHandler.GetPublic)

	// Админские маршруты
	admin := api.Group("/admin")
	admin.Use(middleware.AdminGate(auth))
	{
		admin.GET("/dashboard", statsHandler.Dashboard)

		admin.GET("/inquiries", inquiryHandler.List)
		admin.POST("/inquiries", inquiryHandler.Create)
		admin.GET("/inquiries/:id", inquiryHandler.Get)
		admin.PATCH("/inquiries/:id", inquiryHandler.Update)
		admin.PATCH("/inquiries/:id/status", inquiryHandler.UpdateStatus)
		admin.DELETE("/inquiries/:id", inquiryHandler.Delete)

		admin.GET("/templates", templateHandler.List)
		admin.POST("/templates", templateHandler.Create)
		admin.GET("/templates/:id", templateHandler.Get)
		admin.PATCH("/templates/:id", templateHandler.Update)
		admin.PATCH("/templates/:id/active", templateHandler.UpdateActive)
		admin.DELETE("/templates/:id", templateHandler.Delete)

		admin.GET("/portfolio", portfolioHandler.List)
		admin.POST("/portfolio", portfolioHandler.Create)
		admin.GET("/portfolio/:id", portfolioHandler.Get)
		admin.PATCH("/portfolio/:id", portfolioHandler.Update)
		admin.PATCH("/portfolio/:id/active", portfolioHandler.UpdateActive)
		admin.DELETE("/portfolio/:id", portfolioHandler.Delete)

		admin.GET("/files/*path", fileHandler.Download)
	}

	return r
}

package main

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sarb.backend/internal/config"
	"sarb.backend/internal/interfaces/http/handlers"
	"sarb.backend/internal/interfaces/http/middleware"
	"sarb.backend/internal/interfaces/web"
)

func applyCORSMiddleware(r *gin.Engine, origins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader, middleware.IdempotencyHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.IdempotencyHitHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func registerOpsRoutes(r *gin.Engine, health *handlers.HealthHandler, metrics *middleware.Metrics) {
	r.GET("/health", health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// registerMediaRoute serves locally stored uploads. Remote backends serve
// their own URLs.
func registerMediaRoute(r *gin.Engine, cfg config.MediaConfig) {
	if cfg.Backend != config.MediaBackendLocal && cfg.Backend != "" {
		return
	}
	if !strings.HasPrefix(cfg.BaseURL, "/") {
		return
	}
	r.Static(cfg.BaseURL, cfg.Root)
}

func registerWebRoutes(r *gin.Engine, pages *web.Pages, contactGuards ...gin.HandlerFunc) error {
	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	pages.Register(r, contactGuards...)
	return nil
}

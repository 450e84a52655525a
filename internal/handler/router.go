package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shortener-analytics/internal/config"
	"shortener-analytics/internal/domain"
	"shortener-analytics/pkg/logger"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Redirect    *RedirectHandler
	Analytics   *AnalyticsHandler
	Health      *HealthHandler
	RequireUser gin.HandlerFunc
}

// NewRouter configures the Gin engine with middleware and routes
func NewRouter(cfg *config.Config, log *logger.Logger, h Handlers) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(loadTemplates())

	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg))
	router.Use(SecurityHeadersMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitPerMinute, log))

	router.GET("/health", h.Health.Health)
	router.GET("/readyz", h.Health.Ready)

	api := router.Group("/api", TimeoutMiddleware(cfg.RequestTimeout))
	{
		analytics := api.Group("/analytics", h.RequireUser)
		analytics.GET("/link/:id", h.Analytics.LinkAnalytics)
		analytics.GET("/link/:id/period", h.Analytics.PeriodAnalytics)
		analytics.GET("/stats", h.Analytics.OverallStats)
		analytics.GET("/user", h.Analytics.UserAnalytics)
	}

	// Short link redirection (public endpoint)
	router.GET("/:shortCode", h.Redirect.Redirect)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, domain.ErrorResponse{
			Success: false,
			Error:   "not_found",
			Message: "endpoint not found",
			Code:    http.StatusNotFound,
		})
	})

	return router, nil
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"shortener-analytics/internal/auth"
	"shortener-analytics/internal/domain"
	"shortener-analytics/internal/service"
	"shortener-analytics/pkg/logger"
	"shortener-analytics/pkg/validator"
)

// AnalyticsHandler serves click analytics to link owners
type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service service.AnalyticsService, logger *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger,
	}
}

// LinkAnalytics handles GET /api/analytics/link/:id
func (h *AnalyticsHandler) LinkAnalytics(c *gin.Context) {
	userID, linkID, ok := h.userAndLink(c)
	if !ok {
		return
	}

	summary, err := h.service.LinkAnalytics(c.Request.Context(), userID, linkID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, domain.APIResponse{Success: true, Data: summary})
}

// PeriodAnalytics handles GET /api/analytics/link/:id/period?days=N
func (h *AnalyticsHandler) PeriodAnalytics(c *gin.Context) {
	userID, linkID, ok := h.userAndLink(c)
	if !ok {
		return
	}

	days := validator.ClampInt(c.Query("days"), service.DefaultPeriodDays, service.MinPeriodDays, service.MaxPeriodDays)

	period, err := h.service.PeriodAnalytics(c.Request.Context(), userID, linkID, days)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, domain.APIResponse{Success: true, Data: period})
}

// OverallStats handles GET /api/analytics/stats
func (h *AnalyticsHandler) OverallStats(c *gin.Context) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	stats, err := h.service.Rollup(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, domain.APIResponse{Success: true, Data: stats})
}

// UserAnalytics handles GET /api/analytics/user
func (h *AnalyticsHandler) UserAnalytics(c *gin.Context) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	summaries, err := h.service.SummarizeForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, domain.APIResponse{Success: true, Data: summaries})
}

// userAndLink resolves the caller and the :id parameter, answering the
// request itself when either is missing
func (h *AnalyticsHandler) userAndLink(c *gin.Context) (uint, uint, bool) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return 0, 0, false
	}

	linkID, err := validator.ParseID("id", c.Param("id"))
	if err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidLinkID, err))
		return 0, 0, false
	}

	return userID, linkID, true
}

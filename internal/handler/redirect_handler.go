package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"shortener-analytics/internal/domain"
	"shortener-analytics/internal/service"
	"shortener-analytics/pkg/logger"
)

// RedirectHandler serves the public short link path
type RedirectHandler struct {
	service service.RedirectService
	logger  *logger.Logger
}

// NewRedirectHandler creates a new redirect handler
func NewRedirectHandler(service service.RedirectService, logger *logger.Logger) *RedirectHandler {
	return &RedirectHandler{
		service: service,
		logger:  logger,
	}
}

// Redirect handles GET /:shortCode.
// Uses 302 so every visit comes back through here and gets counted.
func (h *RedirectHandler) Redirect(c *gin.Context) {
	shortCode := c.Param("shortCode")

	destination, err := h.service.Resolve(c.Request.Context(), shortCode, clickRequest(c))
	if err != nil {
		h.renderError(c, shortCode, err)
		return
	}

	c.Redirect(http.StatusFound, destination)
}

// clickRequest captures the raw metadata recorded for a click
func clickRequest(c *gin.Context) domain.ClickRequest {
	referer := c.GetHeader("Referer")
	if referer == "" {
		referer = c.GetHeader("Referrer")
	}

	return domain.ClickRequest{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		Referer:   referer,
	}
}

// renderError answers with an HTML page unless the client prefers JSON
func (h *RedirectHandler) renderError(c *gin.Context, shortCode string, err error) {
	if c.NegotiateFormat(binding.MIMEHTML, binding.MIMEJSON) == binding.MIMEJSON {
		respondError(c, h.logger, err)
		return
	}

	status := domain.StatusCode(err)
	switch {
	case errors.Is(err, domain.ErrLinkNotFound):
		c.HTML(status, "not_found.tmpl", gin.H{"ShortCode": shortCode})
	case errors.Is(err, domain.ErrLinkInactive):
		c.HTML(status, "unavailable.tmpl", gin.H{
			"Title":   "Link Inactive",
			"Message": "This link has been deactivated by the owner.",
		})
	case errors.Is(err, domain.ErrLinkExpired):
		c.HTML(status, "unavailable.tmpl", gin.H{
			"Title":   "Link Expired",
			"Message": "This link has expired and is no longer available.",
		})
	default:
		h.logger.Errorw("Redirect failed", "short_code", shortCode, "error", err)
		c.HTML(http.StatusInternalServerError, "error.tmpl", nil)
	}
}

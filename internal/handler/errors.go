package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shortener-analytics/internal/domain"
	"shortener-analytics/pkg/logger"
)

// errorResponse maps any error to its status code and public body.
// Internal details never reach the client.
func errorResponse(err error) domain.ErrorResponse {
	var appErr *domain.AppError

	resp := domain.ErrorResponse{Success: false}

	switch {
	case errors.As(err, &appErr) && !appErr.Internal:
		resp.Error, resp.Message = "client_error", appErr.Message
	case errors.Is(err, domain.ErrLinkNotFound):
		resp.Error, resp.Message = "not_found", "The requested link was not found"
	case errors.Is(err, domain.ErrLinkInactive):
		resp.Error, resp.Message = "link_inactive", "This link has been deactivated by the owner"
	case errors.Is(err, domain.ErrLinkExpired):
		resp.Error, resp.Message = "link_expired", "This link has expired and is no longer available"
	case errors.Is(err, domain.ErrAccessDenied):
		resp.Error, resp.Message = "access_denied", "You do not have access to this link"
	case errors.Is(err, domain.ErrUnauthorized):
		resp.Error, resp.Message = "unauthorized", "Authentication required"
	case errors.Is(err, domain.ErrInvalidLinkID):
		resp.Error, resp.Message = "invalid_request", "Invalid link id"
	case errors.Is(err, domain.ErrRateLimitExceeded):
		resp.Error, resp.Message = "rate_limit_exceeded", "Too many requests, please try again later"
	default:
		resp.Error, resp.Message = "internal_error", "An unexpected error occurred"
	}

	resp.Code = domain.StatusCode(err)
	return resp
}

// respondError writes a JSON error and logs server-side failures
func respondError(c *gin.Context, log *logger.Logger, err error) {
	resp := errorResponse(err)
	if resp.Code >= http.StatusInternalServerError {
		log.Errorw("Request failed",
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
			"error", err,
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(resp.Code, resp)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/spotlight/internal/discovery"
	"github.com/joshua-takyi/spotlight/internal/helpers"
	"github.com/joshua-takyi/spotlight/internal/middleware"
	"github.com/joshua-takyi/spotlight/internal/models"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrAuthUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Internal errors are attached to
// the context for ErrorHandler to log and are not echoed to the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, models.ErrorResponse("Internal server error"))
		return
	}
	c.JSON(status, models.ErrorResponse(err.Error()))
}

// currentUser returns the caller's claims and id, writing 401 when absent.
func currentUser(c *gin.Context) (*helpers.EnhancedClaims, uuid.UUID, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid user ID in token"))
		return nil, uuid.Nil, false
	}
	return claims, id, true
}

func metaFor(p *discovery.Page) models.Meta {
	return models.Meta{
		Page:       p.Page,
		Limit:      p.PageSize,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasMore:    p.HasMore,
	}
}

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	formdomain "github.com/propworks/rendition/internal/form/domain"
	"github.com/propworks/rendition/internal/jurisdiction"
	overridedomain "github.com/propworks/rendition/internal/override/domain"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
	scheduledomain "github.com/propworks/rendition/internal/schedule/domain"
	snapshotdomain "github.com/propworks/rendition/internal/snapshot/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, renditiondomain.ErrNotReady):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "not_ready",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, renditiondomain.ErrInvalidRequest),
		errors.Is(err, renditiondomain.ErrNoCalculation),
		errors.Is(err, assetdomain.ErrInvalidCategory),
		errors.Is(err, assetdomain.ErrInvalidCost),
		errors.Is(err, assetdomain.ErrInvalidQuantity),
		errors.Is(err, overridedomain.ErrNegativeValue),
		errors.Is(err, overridedomain.ErrMissingJustification),
		errors.Is(err, overridedomain.ErrMissingApplier),
		errors.Is(err, overridedomain.ErrUnknownAsset),
		errors.Is(err, scheduledomain.ErrInvalidYearOfLife),
		errors.Is(err, scheduledomain.ErrNoScheduleForJurisdiction),
		errors.Is(err, snapshotdomain.ErrNoLocations),
		errors.Is(err, snapshotdomain.ErrInvalidTargetYear),
		errors.Is(err, jurisdiction.ErrUnknownState),
		errors.Is(err, jurisdiction.ErrUnsupportedJurisdiction),
		errors.Is(err, formdomain.ErrUnsupportedJurisdiction):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, assetdomain.ErrNotFound),
		errors.Is(err, renditiondomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, renditiondomain.ErrAlreadyExists),
		errors.Is(err, renditiondomain.ErrAlreadyFiled),
		errors.Is(err, snapshotdomain.ErrAlreadyRolled):
		return true
	default:
		return false
	}
}

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/pkg/api"
	"github.com/kindaboxs/meetboxs/pkg/logger"
)

// respondError maps business errors to API responses
// AppError values carry their status code; pagination errors surface as
// validation errors; anything else is an internal server error
func respondError(ctx context.Context, w http.ResponseWriter, apiClient api.Api, appLogger logger.LoggerInterface, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPage):
		apiClient.ValidationError(ctx, w, []api.ErrorDetail{{Field: "page", Message: err.Error()}})
	case errors.Is(err, domain.ErrInvalidPageSize):
		apiClient.ValidationError(ctx, w, []api.ErrorDetail{{Field: "pageSize", Message: err.Error()}})
	default:
		var appErr *domain.AppError
		if !errors.As(err, &appErr) {
			appLogger.ErrorContext(ctx, "Unexpected error", "error", err)
			apiClient.InternalServerError(ctx, w, "An unexpected error occurred")
			return
		}
		switch appErr.Code {
		case http.StatusNotFound:
			apiClient.NotFound(ctx, w, appErr.Message)
		case http.StatusBadRequest:
			apiClient.BadRequest(ctx, w, appErr.Message)
		case http.StatusConflict:
			apiClient.Conflict(ctx, w, appErr.Message)
		case http.StatusUnauthorized:
			apiClient.Unauthorized(ctx, w, appErr.Message)
		default:
			appLogger.ErrorContext(ctx, "Unmapped business error", "code", appErr.Code, "error", appErr)
			apiClient.InternalServerError(ctx, w, appErr.Message)
		}
	}
}

// convertValidationErrors converts validator errors to API error details
func convertValidationErrors(validationErrors map[string]string) []api.ErrorDetail {
	details := make([]api.ErrorDetail, 0, len(validationErrors))
	for field, message := range validationErrors {
		details = append(details, api.ErrorDetail{
			Field:   field,
			Message: message,
		})
	}
	return details
}

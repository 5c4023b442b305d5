package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusForError maps an application error kind onto an HTTP status.
func statusForError(err error) int {
	switch apperrors.Kind(err) {
	case "validation":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "conflict":
		return http.StatusConflict
	case "forbidden":
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err at a level matching its kind and writes the error body.
// Internal errors never leak their cause to the client.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	kind := apperrors.Kind(err)

	if status == http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: "Failed to " + action, Kind: kind})
		return
	}

	logger.Warn("Rejected request to "+action, slog.String("kind", kind), slog.String("error", err.Error()))
	c.JSON(status, dto.ErrorResponse{Error: err.Error(), Kind: kind, Fields: apperrors.FieldErrors(err)})
}

// respondBindError reports a request body or query that could not be bound.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))

	var fields []apperrors.FieldError
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: "failed on '" + fe.Tag() + "'"})
		}
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request: " + err.Error(), Kind: "validation", Fields: fields})
}

// actorOrAbort fetches the authenticated actor, answering 401 when it is missing.
func actorOrAbort(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Kind: "unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}

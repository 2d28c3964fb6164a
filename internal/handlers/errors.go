package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"carematch/internal/apperror"
)

func respondWithError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		logger.ErrorContext(r.Context(), logMsg,
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path),
		)
	}

	http.Error(w, userMsg, status)
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrParse), errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrConstraint):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// userMessage is the text shown next to a rejected form.
func userMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ErrInternalServerError
}

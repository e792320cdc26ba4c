package rest

import (
	"errors"
	"net/http"

	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

// statusForError переводит вид доменной ошибки в HTTP-статус
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondWithError пишет ответ для ошибки use case.
// Внутренние ошибки логируются, клиент получает только fallbackMsg.
func respondWithError(w http.ResponseWriter, logger port.LoggerPort, err error, fallbackMsg string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Use case failed with an unexpected error", err, nil)
		WriteJSONError(w, status, fallbackMsg)
		return
	}

	logger.Warn("Request rejected", port.Fields{"status_code": status, "error": err.Error()})

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		RespondWithJSON(w, status, ErrorResponse{Error: "Validation failed", Fields: verr.Fields})
		return
	}
	WriteJSONError(w, status, err.Error())
}

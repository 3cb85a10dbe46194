package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/service"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

var errorStatusMap = map[error]int{
	ErrNotAuthorized:      http.StatusForbidden,
	ErrValidationUsername: http.StatusBadRequest,
	ErrValidationPassword: http.StatusBadRequest,
	ErrValidationTaskName: http.StatusBadRequest,
	ErrValidationStage:    http.StatusBadRequest,
	ErrValidationTaskID:   http.StatusBadRequest,

	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrWrongPassword:       http.StatusUnauthorized,
	service.ErrInvalidToken:        http.StatusForbidden,
	service.ErrNotResourceOwner:    http.StatusForbidden,

	store.ErrUsernameExists: http.StatusBadRequest,
	store.ErrNoUserFound:    http.StatusNotFound,
	store.ErrNoTaskFound:    http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

// mapError resolves err to the matching sentinel and its HTTP status.
// Unknown errors fall through to 500 with no matched sentinel.
func mapError(err error) (error, int) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return target, status
		}
	}
	return nil, http.StatusInternalServerError
}

// respondError maps err onto a status code and writes the JSON error body.
// The body carries the clean sentinel message, never the internal wrapping
// text, and a 5xx never leaks the underlying error at all.
func respondError(w http.ResponseWriter, err error) {
	sentinel, status := mapError(err)

	message := http.StatusText(status)
	if sentinel != nil && status < http.StatusInternalServerError {
		message = sentinel.Error()
	}

	_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}

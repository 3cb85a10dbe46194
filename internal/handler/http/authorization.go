package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
)

// tokenCarrier is implemented by every mutating request payload: it exposes
// the body-carried token and lets the gate stamp the verified identity back
// onto the payload.
type tokenCarrier interface {
	BearerToken() string
	SetUsername(username string)
}

// authorize is the gate in front of every mutating handler.
//
// It verifies the payload's token and overwrites the payload's username
// with the username embedded in the verified token, so downstream code
// never acts on a caller-supplied identity. Every failure collapses into
// ErrNotAuthorized.
func (h *Handler) authorize(r *http.Request, payload tokenCarrier) error {
	log := logger.FromRequest(r)

	raw := payload.BearerToken()
	if raw == "" {
		log.Warn().Msg("request without token rejected")
		return ErrNotAuthorized
	}

	token, err := h.services.AuthService.ParseToken(r.Context(), raw)
	if err != nil {
		log.Warn().Err(err).Msg("request with invalid token rejected")
		return ErrNotAuthorized
	}

	payload.SetUsername(token.TokenClaims.Username)

	return nil
}

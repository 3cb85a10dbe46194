package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/service"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username := chi.URLParam(r, "username")

	user, err := h.services.UserDirectory.FindByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user lookup failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{User: user.Public()}, http.StatusOK)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		respondError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := validateUsername(req.Username); err != nil {
		respondError(w, err)
		return
	}
	if err := validatePassword(req.Password); err != nil {
		respondError(w, err)
		return
	}

	// pre-check for a friendlier error than the unique-constraint race path
	if _, err := h.services.UserDirectory.FindByUsername(ctx, req.Username); err == nil {
		log.Warn().Str("username", req.Username).Msg("signup with taken username")
		respondError(w, store.ErrUsernameExists)
		return
	} else if !errors.Is(err, store.ErrNoUserFound) {
		log.Err(err).Str("username", req.Username).Msg("signup pre-check failed")
		respondError(w, err)
		return
	}

	created, err := h.services.UserDirectory.CreateUser(ctx, req.Username, req.Password)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation failed")
		respondError(w, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, created)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		respondError(w, err)
		return
	}

	log.Info().Int64("id", created.ID).Str("username", created.Username).Msg("user signed up")

	utils.WriteJSON(w, models.AuthResponse{
		Token: token.String(),
		User:  created.Public(),
	}, http.StatusCreated)
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		respondError(w, service.ErrInvalidDataProvided)
		return
	}

	user, err := h.services.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			respondError(w, err)
		case errors.Is(err, store.ErrNoUserFound) || errors.Is(err, service.ErrWrongPassword):
			// one answer for both failures, a probing client cannot
			// distinguish an unknown username from a wrong password
			log.Warn().Str("username", req.Username).Msg("failed signin attempt")
			utils.WriteJSON(w, models.ErrorResponse{Error: "invalid username or password"}, http.StatusUnauthorized)
		default:
			log.Err(err).Msg("unexpected error occurred during signin")
			respondError(w, err)
		}
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		respondError(w, err)
		return
	}

	log.Info().Int64("id", user.ID).Str("username", user.Username).Msg("user signed in")

	utils.WriteJSON(w, models.AuthResponse{
		Token: token.String(),
		User:  user.Public(),
	}, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		respondError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.authorize(r, &req); err != nil {
		respondError(w, err)
		return
	}

	// the target account is always the token's own subject
	if err := h.services.UserDirectory.DeleteUser(ctx, req.Username); err != nil {
		log.Err(err).Str("username", req.Username).Msg("user deletion failed")
		respondError(w, err)
		return
	}

	log.Info().Str("username", req.Username).Msg("user deleted")

	w.WriteHeader(http.StatusNoContent)
}

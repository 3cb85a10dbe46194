package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/service"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

// taskIDFromURL parses the {id} route parameter.
func taskIDFromURL(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrValidationTaskID
	}
	return id, nil
}

// requireOwnership loads the task and verifies that the verified username
// owns it. The not-found check runs first so an unknown task answers 404,
// not 403.
func (h *Handler) requireOwnership(r *http.Request, id int64, username string) (models.Task, error) {
	task, err := h.services.TaskBoard.FindByID(r.Context(), id)
	if err != nil {
		return models.Task{}, err
	}

	if task.Owner == nil || task.Owner.Username != username {
		logger.FromRequest(r).Warn().
			Int64("id", id).
			Str("username", username).
			Msg("attempt to modify another user's task")
		return models.Task{}, service.ErrNotResourceOwner
	}

	return task, nil
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := taskIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	task, err := h.services.TaskBoard.FindByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("task lookup failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.TaskResponse{Task: task}, http.StatusOK)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		respondError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.authorize(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := validateTaskName(req.Name); err != nil {
		respondError(w, err)
		return
	}
	if err := validateStage(req.Stage); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.services.TaskBoard.CreateTask(ctx, req.Username, req.Name, req.Stage)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("task creation failed")
		respondError(w, err)
		return
	}

	log.Info().Int64("id", created.ID).Str("username", req.Username).Msg("task created")

	utils.WriteJSON(w, models.TaskResponse{Task: created}, http.StatusCreated)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := taskIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		respondError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.authorize(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if req.Name != nil {
		if err := validateTaskName(*req.Name); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.Stage != nil {
		if !req.Stage.Valid() {
			respondError(w, ErrValidationStage)
			return
		}
	}

	if _, err := h.requireOwnership(r, id, req.Username); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.services.TaskBoard.UpdateTask(ctx, id, models.TaskUpdate{
		Name:  req.Name,
		Stage: req.Stage,
	})
	if err != nil {
		log.Err(err).Int64("id", id).Msg("task update failed")
		respondError(w, err)
		return
	}

	log.Info().Int64("id", id).Str("username", req.Username).Msg("task updated")

	utils.WriteJSON(w, models.TaskResponse{Task: updated}, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := taskIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req models.DeleteTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		respondError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.authorize(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.requireOwnership(r, id, req.Username); err != nil {
		respondError(w, err)
		return
	}

	if err := h.services.TaskBoard.DeleteTask(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("task deletion failed")
		respondError(w, err)
		return
	}

	log.Info().Int64("id", id).Str("username", req.Username).Msg("task deleted")

	w.WriteHeader(http.StatusNoContent)
}

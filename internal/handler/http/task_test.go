package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownedTask(id int64, owner string) models.Task {
	return models.Task{
		ID:    id,
		Name:  "write report",
		Stage: models.StageTodo,
		Owner: &models.PublicUser{ID: 1, Username: owner},
	}
}

// ─────────────────────────────────────────────
// GET /v1/task/{id}
// ─────────────────────────────────────────────

func TestGetTask_ReturnsTaskWithOwnerSnapshot(t *testing.T) {
	tasks := &mockBoard{
		findFn: func(_ context.Context, id int64) (models.Task, error) {
			assert.Equal(t, int64(42), id)
			return ownedTask(42, "alice"), nil
		},
	}
	router := newTestRouter(nil, nil, tasks)

	rec := doJSON(t, router, http.MethodGet, "/v1/task/42", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.TaskResponse](t, rec)
	assert.Equal(t, int64(42), resp.Task.ID)
	require.NotNil(t, resp.Task.Owner)
	assert.Equal(t, "alice", resp.Task.Owner.Username)
}

func TestGetTask_InvalidID(t *testing.T) {
	router := newTestRouter(nil, nil, &mockBoard{})

	for _, target := range []string{"/v1/task/abc", "/v1/task/-5", "/v1/task/0"} {
		rec := doJSON(t, router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	router := newTestRouter(nil, nil, &mockBoard{})

	rec := doJSON(t, router, http.MethodGet, "/v1/task/404", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// POST /v1/task
// ─────────────────────────────────────────────

func TestCreateTask_UsesTokenIdentity(t *testing.T) {
	tasks := &mockBoard{
		createFn: func(_ context.Context, ownerUsername, name string, stage models.TaskStage) (models.Task, error) {
			assert.Equal(t, "alice", ownerUsername)
			assert.Equal(t, "write report", name)
			assert.Equal(t, models.TaskStage(""), stage, "missing stage reaches the service empty for defaulting")
			return ownedTask(7, "alice"), nil
		},
	}
	router := newTestRouter(acceptingAuth("alice"), nil, tasks)

	rec := doJSON(t, router, http.MethodPost, "/v1/task", `{"token":"sometoken","name":"write report"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[models.TaskResponse](t, rec)
	assert.Equal(t, int64(7), resp.Task.ID)
}

func TestCreateTask_WithoutTokenIsRejected(t *testing.T) {
	tasks := &mockBoard{
		createFn: func(context.Context, string, string, models.TaskStage) (models.Task, error) {
			t.Fatal("creation must not run without a verified token")
			return models.Task{}, nil
		},
	}
	router := newTestRouter(&mockAuthService{}, nil, tasks)

	rec := doJSON(t, router, http.MethodPost, "/v1/task", `{"name":"write report"}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateTask_RejectsBadPayload(t *testing.T) {
	router := newTestRouter(acceptingAuth("alice"), nil, &mockBoard{
		createFn: func(context.Context, string, string, models.TaskStage) (models.Task, error) {
			t.Fatal("validation must run before creation")
			return models.Task{}, nil
		},
	})

	tests := []struct {
		name string
		body string
	}{
		{"empty name", `{"token":"sometoken","name":""}`},
		{"unknown stage", `{"token":"sometoken","name":"x","stage":"LATER"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/v1/task", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// PATCH /v1/task/{id}
// ─────────────────────────────────────────────

func TestUpdateTask_AppliesPatchForOwner(t *testing.T) {
	tasks := &mockBoard{
		findFn: func(context.Context, int64) (models.Task, error) {
			return ownedTask(7, "alice"), nil
		},
		updateFn: func(_ context.Context, id int64, patch models.TaskUpdate) (models.Task, error) {
			assert.Equal(t, int64(7), id)
			require.NotNil(t, patch.Stage)
			assert.Equal(t, models.StageDone, *patch.Stage)
			assert.Nil(t, patch.Name)
			updated := ownedTask(7, "alice")
			updated.Stage = models.StageDone
			return updated, nil
		},
	}
	router := newTestRouter(acceptingAuth("alice"), nil, tasks)

	rec := doJSON(t, router, http.MethodPatch, "/v1/task/7", `{"token":"sometoken","stage":"DONE"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.TaskResponse](t, rec)
	assert.Equal(t, models.StageDone, resp.Task.Stage)
}

func TestUpdateTask_ForbiddenForNonOwner(t *testing.T) {
	tasks := &mockBoard{
		findFn: func(context.Context, int64) (models.Task, error) {
			return ownedTask(7, "bob"), nil
		},
		updateFn: func(context.Context, int64, models.TaskUpdate) (models.Task, error) {
			t.Fatal("update must not run for a non-owner")
			return models.Task{}, nil
		},
	}
	router := newTestRouter(acceptingAuth("alice"), nil, tasks)

	rec := doJSON(t, router, http.MethodPatch, "/v1/task/7", `{"token":"sometoken","stage":"DONE"}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateTask_UnknownTaskAnswers404Not403(t *testing.T) {
	router := newTestRouter(acceptingAuth("alice"), nil, &mockBoard{})

	rec := doJSON(t, router, http.MethodPatch, "/v1/task/404", `{"token":"sometoken","stage":"DONE"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// DELETE /v1/task/{id}
// ─────────────────────────────────────────────

func TestDeleteTask_OwnerOnly(t *testing.T) {
	deleted := int64(0)
	tasks := &mockBoard{
		findFn: func(context.Context, int64) (models.Task, error) {
			return ownedTask(7, "alice"), nil
		},
		deleteFn: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	router := newTestRouter(acceptingAuth("alice"), nil, tasks)

	rec := doJSON(t, router, http.MethodDelete, "/v1/task/7", `{"token":"sometoken"}`)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(7), deleted)
}

func TestDeleteTask_ForbiddenForNonOwner(t *testing.T) {
	tasks := &mockBoard{
		findFn: func(context.Context, int64) (models.Task, error) {
			return ownedTask(7, "bob"), nil
		},
		deleteFn: func(context.Context, int64) error {
			t.Fatal("deletion must not run for a non-owner")
			return nil
		},
	}
	router := newTestRouter(acceptingAuth("alice"), nil, tasks)

	rec := doJSON(t, router, http.MethodDelete, "/v1/task/7", `{"token":"sometoken"}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

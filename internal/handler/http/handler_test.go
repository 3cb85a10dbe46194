package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/service"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	loginFn       func(ctx context.Context, username, password string) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return models.User{}, store.ErrNoUserFound
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: "signed-token"}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{}, service.ErrInvalidToken
}

// ─────────────────────────────────────────────
// Mock: service.UserDirectory
// ─────────────────────────────────────────────

type mockDirectory struct {
	findFn   func(ctx context.Context, username string) (models.User, error)
	createFn func(ctx context.Context, username, rawPassword string) (models.User, error)
	deleteFn func(ctx context.Context, username string) error
}

func (m *mockDirectory) FindByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findFn != nil {
		return m.findFn(ctx, username)
	}
	return models.User{}, store.ErrNoUserFound
}

func (m *mockDirectory) CreateUser(ctx context.Context, username, rawPassword string) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, rawPassword)
	}
	return models.User{Username: username}, nil
}

func (m *mockDirectory) DeleteUser(ctx context.Context, username string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, username)
	}
	return nil
}

func (m *mockDirectory) EvictUser(context.Context, string) {}

// ─────────────────────────────────────────────
// Mock: service.TaskBoard
// ─────────────────────────────────────────────

type mockBoard struct {
	findFn   func(ctx context.Context, id int64) (models.Task, error)
	createFn func(ctx context.Context, ownerUsername, name string, stage models.TaskStage) (models.Task, error)
	updateFn func(ctx context.Context, id int64, patch models.TaskUpdate) (models.Task, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockBoard) FindByID(ctx context.Context, id int64) (models.Task, error) {
	if m.findFn != nil {
		return m.findFn(ctx, id)
	}
	return models.Task{}, store.ErrNoTaskFound
}

func (m *mockBoard) CreateTask(ctx context.Context, ownerUsername, name string, stage models.TaskStage) (models.Task, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerUsername, name, stage)
	}
	return models.Task{Name: name, Stage: stage}, nil
}

func (m *mockBoard) UpdateTask(ctx context.Context, id int64, patch models.TaskUpdate) (models.Task, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return models.Task{}, store.ErrNoTaskFound
}

func (m *mockBoard) DeleteTask(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockBoard) EvictTask(context.Context, int64) {}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// tokenFor builds a verified-token stand-in carrying the given username.
func tokenFor(username string) models.Token {
	return models.Token{
		TokenClaims: models.TokenClaims{Username: username},
	}
}

// acceptingAuth is a parse-anything auth mock resolving to username.
func acceptingAuth(username string) *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			if tokenString == "" {
				return models.Token{}, service.ErrInvalidToken
			}
			return tokenFor(username), nil
		},
	}
}

func newTestRouter(auth service.AuthService, users service.UserDirectory, tasks service.TaskBoard) http.Handler {
	if auth == nil {
		auth = &mockAuthService{}
	}
	if users == nil {
		users = &mockDirectory{}
	}
	if tasks == nil {
		tasks = &mockBoard{}
	}
	h := NewHandler(&service.Services{
		AuthService:   auth,
		UserDirectory: users,
		TaskBoard:     tasks,
	}, logger.Nop())
	return h.Init()
}

func doJSON(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// Package service implements the application core: the identity token
// service and the two cache-aside coordinators for users and tasks.
//
// The coordinators own the coherence contract between the volatile cache and
// the durable store. The documented cascade order is cache-then-store: an
// operation always evicts (or repopulates) the affected cache keys before it
// touches the durable row, so a partial failure leaves the cache empty
// rather than stale. Cache-layer failures are swallowed and logged; a cache
// outage degrades to direct store reads, never to a user-visible error.
// Durable-store failures always propagate.
package service

import (
	"context"

	"github.com/MKhiriev/go-task-tracker/models"
)

// AuthService handles credential verification and the identity token
// lifecycle.
type AuthService interface {
	// Login verifies the supplied credentials against the stored bcrypt
	// hash, reading the user through the cache-aside directory.
	Login(ctx context.Context, username, password string) (models.User, error)

	// CreateToken issues a signed identity token for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw token string. Every validation failure is
	// reported as ErrInvalidToken.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserDirectory is the cache-aside coordinator for user records.
type UserDirectory interface {
	// FindByUsername reads through the cache (key "user:<username>"),
	// falling back to the durable store and repopulating the cache on a
	// store hit. Returns store.ErrNoUserFound when the user does not exist.
	FindByUsername(ctx context.Context, username string) (models.User, error)

	// CreateUser hashes the password, persists the record, and populates
	// the cache. Duplicate detection is the caller's responsibility
	// (pre-check via FindByUsername); the store's unique constraint acts
	// as the race backstop.
	CreateUser(ctx context.Context, username, rawPassword string) (models.User, error)

	// DeleteUser removes the user and cascades, in order: its own cache
	// entry, every owned task's cache entry (delegated to the task board),
	// and finally the durable row (which cascades task rows).
	DeleteUser(ctx context.Context, username string) error

	// EvictUser removes the user's cache entry. Best-effort; failures are
	// logged and swallowed. Called by the task board on every task mutation
	// because a cached user may embed a now-stale task list.
	EvictUser(ctx context.Context, username string)
}

// TaskBoard is the cache-aside coordinator for task records.
type TaskBoard interface {
	// FindByID reads through the cache (key "task:<id>"), falling back to
	// the durable store. Cached and returned values embed only the
	// sanitized owner snapshot. Returns store.ErrNoTaskFound when absent.
	FindByID(ctx context.Context, id int64) (models.Task, error)

	// CreateTask resolves the owner through the user directory, persists
	// the task, caches it, and evicts the owner's user-cache entry.
	CreateTask(ctx context.Context, ownerUsername, name string, stage models.TaskStage) (models.Task, error)

	// UpdateTask applies the non-nil patch fields, guarantees a strictly
	// increasing UpdatedAt, re-caches the task, and evicts the owner's
	// user-cache entry.
	UpdateTask(ctx context.Context, id int64, patch models.TaskUpdate) (models.Task, error)

	// DeleteTask evicts the task's cache entry and the owner's user-cache
	// entry, then deletes the durable row.
	DeleteTask(ctx context.Context, id int64) error

	// EvictTask removes the task's cache entry. Best-effort; failures are
	// logged and swallowed. Called by the user directory during the
	// user-delete cascade.
	EvictTask(ctx context.Context, id int64)
}

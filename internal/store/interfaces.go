// Package store implements the durable persistence layer of the application:
// PostgreSQL-backed repositories for users and tasks, with sentinel errors
// for well-known failure conditions. The store is the single source of truth;
// the cache layer in internal/cache only accelerates reads of what lives here.
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-task-tracker/models"
)

// UserRepository defines persistence operations for user accounts.
//
// FindUserByUsername always loads the owned-tasks relation: the user-delete
// cascade needs the task list to evict every owned task's cache entry, and
// other callers simply ignore it.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	DeleteUserByUsername(ctx context.Context, username string) error
}

// TaskRepository defines persistence operations for tasks.
//
// FindTaskByID loads the sanitized owner snapshot alongside the task row.
// UpdateTask applies only the non-nil fields of the update and stamps the
// caller-supplied updatedAt, which the service layer guarantees to be
// strictly after the previous value.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	FindTaskByID(ctx context.Context, id int64) (models.Task, error)
	UpdateTask(ctx context.Context, id int64, update models.TaskUpdate, updatedAt time.Time) (models.Task, error)
	DeleteTaskByID(ctx context.Context, id int64) error
}

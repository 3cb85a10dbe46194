package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
)

// taskRepository is the PostgreSQL-backed implementation of [TaskRepository].
// It executes all task CRUD operations against the "tasks" table, joining the
// "users" table where the sanitized owner snapshot is required.
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] backed by the provided
// database connection and logger.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTask persists a new task row and returns the canonical database
// representation with server-assigned fields (ID, CreatedAt, UpdatedAt).
// The owner snapshot is not loaded; the caller already resolved the owner.
func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createTask, task.Name, task.Stage, task.OwnerID)

	var created models.Task
	if err := row.Scan(&created.ID, &created.Name, &created.Stage, &created.CreatedAt, &created.UpdatedAt, &created.OwnerID); err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Int64("owner_id", task.OwnerID).Msg("error creating task")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindTaskByID retrieves the task with the given ID together with the
// sanitized owner snapshot. The join selects only non-sensitive owner
// columns, so a password hash can never travel through this path.
//
// Returns [ErrNoTaskFound] when no row matches.
func (r *taskRepository) FindTaskByID(ctx context.Context, id int64) (models.Task, error) {
	log := logger.FromContext(ctx)

	var task models.Task
	var owner models.PublicUser

	row := r.db.QueryRowContext(ctx, findTaskByID, id)
	err := row.Scan(
		&task.ID,
		&task.Name,
		&task.Stage,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.OwnerID,
		&owner.ID,
		&owner.Username,
		&owner.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrNoTaskFound
		}

		log.Err(err).Str("func", "*taskRepository.FindTaskByID").Int64("id", id).Msg("error finding task")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	task.Owner = &owner

	return task, nil
}

// UpdateTask applies the non-nil fields of update to the task row and stamps
// updatedAt. The SET clause is assembled with squirrel so that absent patch
// fields are left untouched at the SQL level.
//
// Returns [ErrNoTaskFound] when no row matches, or a wrapped
// [ErrBuildingSQLQuery] / low-level error otherwise.
func (r *taskRepository) UpdateTask(ctx context.Context, id int64, update models.TaskUpdate, updatedAt time.Time) (models.Task, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("tasks").
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, stage, created_at, updated_at, user_id").
		PlaceholderFormat(sq.Dollar)

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Stage != nil {
		builder = builder.Set("stage", *update.Stage)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Int64("id", id).Msg("error building update query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var task models.Task
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&task.ID, &task.Name, &task.Stage, &task.CreatedAt, &task.UpdatedAt, &task.OwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrNoTaskFound
		}

		log.Err(err).Str("func", "*taskRepository.UpdateTask").Int64("id", id).Msg("error updating task")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return task, nil
}

// DeleteTaskByID removes the task row. Returns [ErrNoTaskFound] when no row
// was deleted.
func (r *taskRepository) DeleteTaskByID(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteTaskByID, id)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteTaskByID").Int64("id", id).Msg("error deleting task")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoTaskFound
	}

	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, and deletion against the "users"
// table. Task rows are removed by the database itself via the
// ON DELETE CASCADE constraint on tasks.user_id.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Username, user.PasswordHash)

	var created models.User
	if err := row.Scan(&created.ID, &created.Username, &created.PasswordHash, &created.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUsernameExists
		case "":
			return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByUsername retrieves the user record with the given username,
// with the owned-tasks relation loaded.
//
// Error handling:
//   - No matching row → [ErrNoUserFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Task relation query/scan failure → wrapped low-level sentinel.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByUsername, username)

	if err := row.Scan(&foundUser.ID, &foundUser.Username, &foundUser.PasswordHash, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Str("username", username).Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	tasks, err := r.findOwnedTasks(ctx, foundUser.ID)
	if err != nil {
		return models.User{}, err
	}
	foundUser.Tasks = tasks

	return foundUser, nil
}

// DeleteUserByUsername removes the user row; owned task rows are removed by
// the database cascade. Returns [ErrNoUserFound] when no row was deleted.
func (r *userRepository) DeleteUserByUsername(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUserByUsername, username)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUserByUsername").Str("username", username).Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserFound
	}

	return nil
}

// findOwnedTasks loads all task rows belonging to the given user, ordered by
// ID. Owner snapshots are not embedded; the caller already holds the owner.
func (r *userRepository) findOwnedTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findTasksByOwnerID, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findOwnedTasks").Int64("user_id", userID).Msg("error querying owned tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, 8)
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Name, &task.Stage, &task.CreatedAt, &task.UpdatedAt, &task.OwnerID); err != nil {
			log.Err(err).Str("func", "*userRepository.findOwnedTasks").Int64("user_id", userID).Msg("error scanning task row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.findOwnedTasks").Int64("user_id", userID).Msg("error iterating task rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tasks, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
)

func newTestTaskRepo(t *testing.T) (*taskRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &taskRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateTask_Success(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "name", "stage", "created_at", "updated_at", "user_id"}).
		AddRow(55, "write report", "TODO", now, now, 7)

	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs("write report", models.StageTodo, int64(7)).
		WillReturnRows(rows)

	created, err := repo.CreateTask(ctx, models.Task{
		Name:    "write report",
		Stage:   models.StageTodo,
		OwnerID: 7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 55 {
		t.Errorf("expected ID=55, got %d", created.ID)
	}
	if created.Stage != models.StageTodo {
		t.Errorf("expected stage TODO, got %s", created.Stage)
	}
}

func TestFindTaskByID_LoadsOwnerSnapshot(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "name", "stage", "created_at", "updated_at", "user_id", "id", "username", "created_at"}).
		AddRow(55, "write report", "DOING", now, now, 7, 7, "john", now)

	mock.ExpectQuery("SELECT t.id, t.name, t.stage").
		WithArgs(int64(55)).
		WillReturnRows(rows)

	found, err := repo.FindTaskByID(ctx, 55)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != 55 {
		t.Errorf("expected ID=55, got %d", found.ID)
	}
	if found.Owner == nil {
		t.Fatal("expected owner snapshot to be loaded")
	}
	if found.Owner.Username != "john" {
		t.Errorf("expected owner john, got %s", found.Owner.Username)
	}
}

func TestFindTaskByID_NotFound(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT t.id, t.name, t.stage").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindTaskByID(ctx, 404)
	if !errors.Is(err, ErrNoTaskFound) {
		t.Fatalf("expected ErrNoTaskFound, got %v", err)
	}
}

func TestUpdateTask_PartialPatchOnlySetsProvidedFields(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	stage := models.StageDone

	rows := sqlmock.
		NewRows([]string{"id", "name", "stage", "created_at", "updated_at", "user_id"}).
		AddRow(55, "write report", "DONE", now, now, 7)

	// only updated_at and stage appear in the SET clause
	mock.ExpectQuery(`UPDATE tasks SET updated_at = \$1, stage = \$2 WHERE id = \$3`).
		WithArgs(now, stage, int64(55)).
		WillReturnRows(rows)

	updated, err := repo.UpdateTask(ctx, 55, models.TaskUpdate{Stage: &stage}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Stage != models.StageDone {
		t.Errorf("expected stage DONE, got %s", updated.Stage)
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("UPDATE tasks").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateTask(ctx, 404, models.TaskUpdate{}, now)
	if !errors.Is(err, ErrNoTaskFound) {
		t.Fatalf("expected ErrNoTaskFound, got %v", err)
	}
}

func TestDeleteTaskByID_Success(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs(int64(55)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteTaskByID(ctx, 55); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteTaskByID_NoRowsAffected(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteTaskByID(ctx, 404)
	if !errors.Is(err, ErrNoTaskFound) {
		t.Fatalf("expected ErrNoTaskFound, got %v", err)
	}
}

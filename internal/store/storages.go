package store

import (
	"github.com/MKhiriev/go-task-tracker/internal/logger"
)

// Storages aggregates all repository implementations behind their interfaces,
// so the service layer receives a single dependency at construction time.
type Storages struct {
	UserRepository UserRepository
	TaskRepository TaskRepository
}

// NewStorages wires all repositories to the shared database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		TaskRepository: NewTaskRepository(db, logger),
	}
}

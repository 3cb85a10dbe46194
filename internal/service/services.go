package service

import (
	"github.com/MKhiriev/go-task-tracker/internal/cache"
	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
)

type Services struct {
	AuthService   AuthService
	UserDirectory UserDirectory
	TaskBoard     TaskBoard
}

// NewServices wires the application core. The user directory and the task
// board reference each other for cross-entity cache eviction; the cycle is
// broken by binding the task board into the directory after both exist.
func NewServices(storages store.Storages, c cache.Cache, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	hasher := utils.NewBcryptHasher(0)

	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	directory := NewUserDirectory(storages.UserRepository, c, hasher, ttl, logger)
	board := NewTaskBoard(storages.TaskRepository, c, directory, ttl, logger)
	directory.BindTaskEvictor(board)

	return &Services{
		AuthService:   NewAuthService(directory, hasher, cfg.App, logger),
		UserDirectory: directory,
		TaskBoard:     board,
	}
}

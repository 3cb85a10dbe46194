package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/cache"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/models"
)

// OwnerResolver is the slice of the user directory the task board needs:
// owner lookup on task creation and owner-cache eviction on every task
// mutation (a cached user may embed a task list that just went stale).
type OwnerResolver interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
	EvictUser(ctx context.Context, username string)
}

// taskBoard is the concrete implementation of [TaskBoard].
//
// Cached task values always carry the sanitized owner snapshot
// (models.PublicUser); a password hash is structurally unreachable through
// a cached or returned task.
type taskBoard struct {
	tasks  store.TaskRepository
	cache  cache.Cache
	users  OwnerResolver
	ttl    time.Duration
	logger *logger.Logger
}

// NewTaskBoard constructs the task-side cache coordinator.
func NewTaskBoard(tasks store.TaskRepository, c cache.Cache, users OwnerResolver, ttl time.Duration, logger *logger.Logger) *taskBoard {
	logger.Debug().Msg("creating task board")
	return &taskBoard{
		tasks:  tasks,
		cache:  c,
		users:  users,
		ttl:    ttl,
		logger: logger,
	}
}

// FindByID implements the cache-aside read for task records.
//
// The repository join already reduces the owner to the sanitized snapshot,
// so the value entering the cache (and leaving this method) cannot carry a
// password hash. Cache population is best-effort.
func (b *taskBoard) FindByID(ctx context.Context, id int64) (models.Task, error) {
	log := logger.FromContext(ctx)
	key := cache.TaskKey(id)

	if raw, ok, err := b.cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
	} else if ok {
		task, decodeErr := cache.Decode[models.Task](raw)
		if decodeErr == nil {
			return task, nil
		}
		log.Warn().Err(decodeErr).Str("key", key).Msg("dropping undecodable cache entry")
		b.EvictTask(ctx, id)
	}

	task, err := b.tasks.FindTaskByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	b.populate(ctx, task)

	return task, nil
}

// CreateTask persists a new task for the given owner.
//
// The owner is resolved through the user directory; if the owner does not
// exist the directory's error propagates unchanged (upstream callers are
// expected to have authenticated already, so this should not normally
// fail). After the durable write the new task is cached and the owner's
// user-cache entry is evicted, because that entry may embed a task list
// that no longer includes every task.
func (b *taskBoard) CreateTask(ctx context.Context, ownerUsername, name string, stage models.TaskStage) (models.Task, error) {
	log := logger.FromContext(ctx)

	owner, err := b.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		log.Err(err).Str("username", ownerUsername).Msg("task owner lookup failed")
		return models.Task{}, err
	}

	if stage == "" {
		stage = models.StageTodo
	}

	created, err := b.tasks.CreateTask(ctx, models.Task{
		Name:    name,
		Stage:   stage,
		OwnerID: owner.ID,
	})
	if err != nil {
		log.Err(err).Str("username", ownerUsername).Msg("task creation ended with error")
		return models.Task{}, fmt.Errorf("task creation ended with error: %w", err)
	}

	ownerView := owner.Public()
	created.Owner = &ownerView

	b.populate(ctx, created)
	b.users.EvictUser(ctx, owner.Username)

	return created, nil
}

// UpdateTask applies a partial update to the task.
//
// Only non-nil patch fields are written; UpdatedAt is stamped with the
// current time, bumped forward when the clock has not advanced past the
// previous value so that UpdatedAt strictly increases on every successful
// update, even for two updates within the same millisecond.
func (b *taskBoard) UpdateTask(ctx context.Context, id int64, patch models.TaskUpdate) (models.Task, error) {
	log := logger.FromContext(ctx)

	current, err := b.FindByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	updatedAt := time.Now()
	if !updatedAt.After(current.UpdatedAt) {
		updatedAt = current.UpdatedAt.Add(time.Millisecond)
	}

	updated, err := b.tasks.UpdateTask(ctx, id, patch, updatedAt)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("task update ended with error")
		return models.Task{}, err
	}
	updated.Owner = current.Owner

	b.populate(ctx, updated)
	if updated.Owner != nil {
		b.users.EvictUser(ctx, updated.Owner.Username)
	}

	return updated, nil
}

// DeleteTask removes a task and keeps both caches coherent: the task's own
// cache entry and the owner's user-cache entry are evicted before the
// durable row is deleted. Owner eviction happens on delete for the same
// staleness reason as on create and update.
func (b *taskBoard) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	task, err := b.FindByID(ctx, id)
	if err != nil {
		return err
	}

	b.EvictTask(ctx, id)
	if task.Owner != nil {
		b.users.EvictUser(ctx, task.Owner.Username)
	}

	if err := b.tasks.DeleteTaskByID(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("task deletion ended with error")
		return fmt.Errorf("task deletion ended with error: %w", err)
	}

	return nil
}

// EvictTask removes the task's cache entry. Best-effort: a failed delete is
// logged and swallowed, the entry then self-heals via TTL expiry.
func (b *taskBoard) EvictTask(ctx context.Context, id int64) {
	key := cache.TaskKey(id)
	if err := b.cache.Del(ctx, key); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("cache eviction failed")
	}
}

// populate writes the task record into the cache, best-effort.
func (b *taskBoard) populate(ctx context.Context, task models.Task) {
	log := logger.FromContext(ctx)
	key := cache.TaskKey(task.ID)

	payload, err := cache.Encode(task)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache encoding failed")
		return
	}

	if err := b.cache.Set(ctx, key, payload, b.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache population failed")
	}
}

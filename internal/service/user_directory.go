package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/cache"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

// TaskEvictor is the slice of the task board the user directory needs for
// the user-delete cascade. Keeping it to a single method breaks the
// construction cycle between the two coordinators.
type TaskEvictor interface {
	EvictTask(ctx context.Context, id int64)
}

// userDirectory is the concrete implementation of [UserDirectory].
//
// Cached values retain the password hash (msgpack only, never JSON) so that
// signin verification can be served through the cache-aside path; the
// output-safe projection happens at the HTTP boundary via models.PublicUser.
type userDirectory struct {
	users  store.UserRepository
	cache  cache.Cache
	hasher utils.PasswordHasher
	ttl    time.Duration

	// tasks is bound after construction via BindTaskEvictor because the
	// task board itself depends on this directory.
	tasks TaskEvictor

	logger *logger.Logger
}

// NewUserDirectory constructs the user-side cache coordinator.
// BindTaskEvictor must be called before DeleteUser is used.
func NewUserDirectory(users store.UserRepository, c cache.Cache, hasher utils.PasswordHasher, ttl time.Duration, logger *logger.Logger) *userDirectory {
	logger.Debug().Msg("creating user directory")
	return &userDirectory{
		users:  users,
		cache:  c,
		hasher: hasher,
		ttl:    ttl,
		logger: logger,
	}
}

// BindTaskEvictor attaches the task board's eviction primitive for the
// user-delete cascade. Called once during wiring, before any request is
// served.
func (d *userDirectory) BindTaskEvictor(tasks TaskEvictor) {
	d.tasks = tasks
}

// FindByUsername implements the cache-aside read for user records.
//
// The cache is consulted first; a hit short-circuits the durable store
// entirely. On a miss the record is read from the store with the
// owned-tasks relation loaded and the cache is repopulated best-effort:
// a cache write failure degrades the call to a plain store read, it never
// fails it.
func (d *userDirectory) FindByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)
	key := cache.UserKey(username)

	if raw, ok, err := d.cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
	} else if ok {
		user, decodeErr := cache.Decode[models.User](raw)
		if decodeErr == nil {
			return user, nil
		}
		// corrupt entry: drop it and fall through to the store
		log.Warn().Err(decodeErr).Str("key", key).Msg("dropping undecodable cache entry")
		d.evict(ctx, key)
	}

	user, err := d.users.FindUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}

	d.populate(ctx, user)

	return user, nil
}

// CreateUser hashes the raw password, persists the account, and populates
// the cache with the freshly created record.
//
// The duplicate-username pre-check belongs to the caller so it can decide
// ordering against other validation; the store's unique constraint still
// backstops the race and surfaces as store.ErrUsernameExists.
func (d *userDirectory) CreateUser(ctx context.Context, username, rawPassword string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || rawPassword == "" {
		log.Error().Str("username", username).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := d.hasher.Hash(rawPassword)
	if err != nil {
		log.Err(err).Str("username", username).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	created, err := d.users.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	d.populate(ctx, created)

	return created, nil
}

// DeleteUser removes a user account and keeps both caches coherent.
//
// The cascade order is a contract:
//  1. fresh store lookup, which discovers the owned tasks to evict;
//  2. evict the user's own cache entry;
//  3. evict every owned task's cache entry via the task board;
//  4. delete the durable row (task rows go with it via ON DELETE CASCADE).
//
// If step 4 fails after 1-3 succeeded the system is left with an empty
// cache and a live durable record; the next read repopulates the cache.
// Partial failure therefore produces an empty cache, never a stale one.
func (d *userDirectory) DeleteUser(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	user, err := d.users.FindUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	d.EvictUser(ctx, username)

	for _, task := range user.Tasks {
		d.tasks.EvictTask(ctx, task.ID)
	}

	if err := d.users.DeleteUserByUsername(ctx, username); err != nil {
		log.Err(err).Str("username", username).Msg("user deletion ended with error")
		return fmt.Errorf("user deletion ended with error: %w", err)
	}

	return nil
}

// EvictUser removes the user's cache entry. Best-effort: a failed delete is
// logged and swallowed, the entry then self-heals via TTL expiry.
func (d *userDirectory) EvictUser(ctx context.Context, username string) {
	d.evict(ctx, cache.UserKey(username))
}

func (d *userDirectory) evict(ctx context.Context, key string) {
	if err := d.cache.Del(ctx, key); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("cache eviction failed")
	}
}

// populate writes the user record into the cache, best-effort.
func (d *userDirectory) populate(ctx context.Context, user models.User) {
	log := logger.FromContext(ctx)
	key := cache.UserKey(user.Username)

	payload, err := cache.Encode(user)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache encoding failed")
		return
	}

	if err := d.cache.Set(ctx, key, payload, d.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache population failed")
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: UserDirectory
// ─────────────────────────────────────────────

type mockUserDirectory struct {
	findFn func(ctx context.Context, username string) (models.User, error)
}

func (m *mockUserDirectory) FindByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findFn != nil {
		return m.findFn(ctx, username)
	}
	return models.User{}, store.ErrNoUserFound
}

func (m *mockUserDirectory) CreateUser(context.Context, string, string) (models.User, error) {
	return models.User{}, nil
}

func (m *mockUserDirectory) DeleteUser(context.Context, string) error { return nil }

func (m *mockUserDirectory) EvictUser(context.Context, string) {}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var testAppConfig = config.App{
	TokenSignKey:  "unit-test-sign-key",
	TokenIssuer:   "task-tracker-test",
	TokenDuration: time.Hour,
}

func newTestAuthService(users UserDirectory) AuthService {
	return NewAuthService(users, stubHasher{}, testAppConfig, logger.Nop())
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	account := models.User{ID: 42, Username: "alice", PasswordHash: "hashed:secret"}
	users := &mockUserDirectory{
		findFn: func(_ context.Context, username string) (models.User, error) {
			assert.Equal(t, "alice", username)
			return account, nil
		},
	}
	auth := newTestAuthService(users)

	got, err := auth.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, account, got)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	auth := newTestAuthService(&mockUserDirectory{})

	_, err := auth.Login(context.Background(), "", "secret")
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = auth.Login(context.Background(), "alice", "")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	auth := newTestAuthService(&mockUserDirectory{})

	_, err := auth.Login(context.Background(), "ghost", "secret")
	require.ErrorIs(t, err, store.ErrNoUserFound)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := &mockUserDirectory{
		findFn: func(context.Context, string) (models.User, error) {
			return models.User{ID: 1, Username: "alice", PasswordHash: "hashed:right"}, nil
		},
	}
	auth := newTestAuthService(users)

	_, err := auth.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrWrongPassword)
}

// ─────────────────────────────────────────────
// CreateToken / ParseToken
// ─────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	auth := newTestAuthService(&mockUserDirectory{})
	user := models.User{ID: 42, Username: "alice"}

	issued, err := auth.CreateToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, issued.SignedString)

	parsed, err := auth.ParseToken(context.Background(), issued.String())
	require.NoError(t, err)
	assert.Equal(t, "alice", parsed.TokenClaims.Username)

	userID, err := parsed.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestAuthService_ParseToken_InvalidAlwaysCollapsesToOneError(t *testing.T) {
	auth := newTestAuthService(&mockUserDirectory{})

	// malformed string
	_, err := auth.ParseToken(context.Background(), "not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)

	// signed with a different key
	other := NewAuthService(&mockUserDirectory{}, stubHasher{}, config.App{
		TokenSignKey:  "a-different-key",
		TokenIssuer:   testAppConfig.TokenIssuer,
		TokenDuration: time.Hour,
	}, logger.Nop())
	foreign, err := other.CreateToken(context.Background(), models.User{ID: 1, Username: "bob"})
	require.NoError(t, err)
	_, err = auth.ParseToken(context.Background(), foreign.String())
	require.ErrorIs(t, err, ErrInvalidToken)

	// wrong issuer
	badIssuer := NewAuthService(&mockUserDirectory{}, stubHasher{}, config.App{
		TokenSignKey:  testAppConfig.TokenSignKey,
		TokenIssuer:   "someone-else",
		TokenDuration: time.Hour,
	}, logger.Nop())
	foreign, err = badIssuer.CreateToken(context.Background(), models.User{ID: 1, Username: "bob"})
	require.NoError(t, err)
	_, err = auth.ParseToken(context.Background(), foreign.String())
	require.ErrorIs(t, err, ErrInvalidToken)

	// expired
	shortLived := NewAuthService(&mockUserDirectory{}, stubHasher{}, config.App{
		TokenSignKey:  testAppConfig.TokenSignKey,
		TokenIssuer:   testAppConfig.TokenIssuer,
		TokenDuration: -time.Minute,
	}, logger.Nop())
	expired, err := shortLived.CreateToken(context.Background(), models.User{ID: 1, Username: "bob"})
	require.NoError(t, err)
	_, err = auth.ParseToken(context.Background(), expired.String())
	require.ErrorIs(t, err, ErrInvalidToken)
}

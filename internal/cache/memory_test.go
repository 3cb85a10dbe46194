package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	require.NoError(t, m.Set(ctx, UserKey("alice"), []byte("payload"), 0))

	value, ok, err := m.Get(ctx, UserKey("alice"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), value)
}

func TestMemory_GetMiss(t *testing.T) {
	m := NewMemory(time.Minute)

	value, ok, err := m.Get(context.Background(), TaskKey(42))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	require.NoError(t, m.Set(ctx, TaskKey(1), []byte("x"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := m.Get(ctx, TaskKey(1))
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must read as a miss")
	assert.Zero(t, m.Len(), "expired entry must be removed on access")
}

func TestMemory_Del(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	require.NoError(t, m.Set(ctx, UserKey("bob"), []byte("x"), 0))
	require.NoError(t, m.Del(ctx, UserKey("bob")))

	_, ok, err := m.Get(ctx, UserKey("bob"))
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting an absent key is not an error
	assert.NoError(t, m.Del(ctx, UserKey("bob")))
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	require.NoError(t, m.Set(ctx, UserKey("alice"), []byte("abc"), 0))

	first, _, err := m.Get(ctx, UserKey("alice"))
	require.NoError(t, err)
	first[0] = 'z'

	second, _, err := m.Get(ctx, UserKey("alice"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), second)
}

func TestKeySchemes(t *testing.T) {
	assert.Equal(t, "user:alice", UserKey("alice"))
	assert.Equal(t, "task:42", TaskKey(42))
}

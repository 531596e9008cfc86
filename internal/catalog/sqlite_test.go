package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRoomLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	room := &domain.Room{Code: "ABC12345", Name: "general", AdminID: "u-1", Active: true}
	require.NoError(t, s.CreateRoom(ctx, room))

	got, err := s.GetRoom(ctx, "ABC12345")
	require.NoError(t, err)
	assert.Equal(t, room.Name, got.Name)
	assert.Equal(t, room.AdminID, got.AdminID)
	assert.True(t, got.Active)

	assert.ErrorIs(t, s.CreateRoom(ctx, room), ErrAlreadyExists)

	require.NoError(t, s.DeleteRoom(ctx, "ABC12345"))
	_, err = s.GetRoom(ctx, "ABC12345")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteRoom(ctx, "ABC12345"), ErrNotFound)
}

func TestGetRoomMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRoom(context.Background(), "NOPE1234")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "alice", "hash-1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	got, hash, err := s.GetUserByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash-1", hash)

	_, err = s.CreateUser(ctx, "alice", "hash-2")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, _, err = s.GetUserByName(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

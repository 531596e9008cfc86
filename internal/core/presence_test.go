package core

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

type nopConn struct{}

func (nopConn) TrySend(Frame) error { return nil }
func (nopConn) Close()              {}

func member(conn, user string, admin bool) Member {
	u := &domain.User{ID: domain.UserID(user), Username: user}
	return Member{Participant: domain.NewParticipant(domain.ConnID(conn), u, admin), Conn: nopConn{}}
}

func TestAddAndSnapshotOrder(t *testing.T) {
	p := NewPresence()
	code := domain.RoomCode("ROOM0001")

	require.NoError(t, p.AddParticipant(code, member("c1", "alice", true)))
	require.NoError(t, p.AddParticipant(code, member("c2", "bob", false)))
	require.NoError(t, p.AddParticipant(code, member("c3", "carol", false)))

	snap := p.Snapshot(code)
	require.Len(t, snap, 3)
	// Join order is stable for UI consistency.
	assert.Equal(t, domain.ConnID("c1"), snap[0].Conn)
	assert.Equal(t, domain.ConnID("c2"), snap[1].Conn)
	assert.Equal(t, domain.ConnID("c3"), snap[2].Conn)
}

func TestDuplicateConnection(t *testing.T) {
	p := NewPresence()
	code := domain.RoomCode("ROOM0001")

	require.NoError(t, p.AddParticipant(code, member("c1", "alice", false)))
	err := p.AddParticipant(code, member("c1", "alice", false))
	assert.ErrorIs(t, err, ErrDuplicateConnection)
	assert.Len(t, p.Snapshot(code), 1)
}

func TestRemoveParticipant(t *testing.T) {
	p := NewPresence()
	code := domain.RoomCode("ROOM0001")

	require.NoError(t, p.AddParticipant(code, member("c1", "alice", false)))
	require.NoError(t, p.AddParticipant(code, member("c2", "bob", false)))

	m, err := p.RemoveParticipant(code, "c1")
	require.NoError(t, err)
	assert.Equal(t, "alice", m.Participant.Username)

	snap := p.Snapshot(code)
	require.Len(t, snap, 1)
	assert.Equal(t, domain.ConnID("c2"), snap[0].Conn)

	// Removal races with disconnects are benign.
	_, err = p.RemoveParticipant(code, "c1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = p.RemoveParticipant("NOROOM01", "c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmptyRoomIsReaped(t *testing.T) {
	p := NewPresence()
	code := domain.RoomCode("ROOM0001")

	require.NoError(t, p.AddParticipant(code, member("c1", "alice", false)))
	_, err := p.RemoveParticipant(code, "c1")
	require.NoError(t, err)

	assert.True(t, p.IsEmpty(code))
	assert.Nil(t, p.Snapshot(code))

	// A later join recreates the session lazily.
	require.NoError(t, p.AddParticipant(code, member("c2", "bob", false)))
	assert.Len(t, p.Snapshot(code), 1)
}

func TestDropRoom(t *testing.T) {
	p := NewPresence()
	code := domain.RoomCode("ROOM0001")

	require.NoError(t, p.AddParticipant(code, member("c1", "alice", true)))
	require.NoError(t, p.AddParticipant(code, member("c2", "bob", false)))

	evicted := p.DropRoom(code)
	assert.Len(t, evicted, 2)
	assert.True(t, p.IsEmpty(code))
	assert.Nil(t, p.Members(code))

	assert.Nil(t, p.DropRoom(code), "dropping twice yields nothing")
}

func TestSnapshotIsACopy(t *testing.T) {
	p := NewPresence()
	code := domain.RoomCode("ROOM0001")
	require.NoError(t, p.AddParticipant(code, member("c1", "alice", false)))

	snap := p.Snapshot(code)
	snap[0].Username = "mallory"

	assert.Equal(t, "alice", p.Snapshot(code)[0].Username)
}

func TestAddSurvivesConcurrentReap(t *testing.T) {
	p := NewPresence()
	code := domain.RoomCode("ROOM0001")

	// Each worker cycles its own connection through the same room. The
	// room keeps emptying, so every add races the reap; an add must
	// always land in the live session and be visible to its own removal.
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			conn := fmt.Sprintf("c%d", w)
			for i := 0; i < 500; i++ {
				assert.NoError(t, p.AddParticipant(code, member(conn, conn, false)))
				_, err := p.RemoveParticipant(code, domain.ConnID(conn))
				assert.NoError(t, err, "added participant vanished before removal")
			}
		}(w)
	}
	wg.Wait()

	assert.True(t, p.IsEmpty(code))
}

func TestRoomsDoNotBlockEachOther(t *testing.T) {
	p := NewPresence()
	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		code := domain.RoomCode(fmt.Sprintf("ROOM%04d", r))
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(code domain.RoomCode, i int) {
				defer wg.Done()
				conn := fmt.Sprintf("c%d", i)
				assert.NoError(t, p.AddParticipant(code, member(conn, conn, false)))
				_ = p.Snapshot(code)
				if i%2 == 0 {
					_, _ = p.RemoveParticipant(code, domain.ConnID(conn))
				}
			}(code, i)
		}
	}
	wg.Wait()

	for r := 0; r < 8; r++ {
		code := domain.RoomCode(fmt.Sprintf("ROOM%04d", r))
		assert.Len(t, p.Snapshot(code), 8, "odd-numbered conns remain")
	}
}

// Package app holds the live session logic: who is connected where,
// which events are allowed, and what each one broadcasts.
package app

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/catalog"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/core"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

// Verifier resolves a credential token to a user identity.
type Verifier interface {
	Verify(token string) (*domain.User, error)
}

// Coordinator validates inbound realtime events, mutates the presence
// registry, and decides what gets broadcast to whom. Per-room event
// ordering is enforced by holding the room's lock across the whole
// mutate+broadcast sequence.
type Coordinator struct {
	verifier Verifier
	catalog  catalog.Rooms
	presence core.Presence
	registry *Registry
	cast     Broadcaster
	locks    *roomLocks
}

func NewCoordinator(v Verifier, cat catalog.Rooms, p core.Presence, r *Registry) *Coordinator {
	return &Coordinator{
		verifier: v,
		catalog:  cat,
		presence: p,
		registry: r,
		locks:    newRoomLocks(),
	}
}

// Connect registers a fresh transport connection. The connection stays
// unauthenticated until its first accepted join.
func (c *Coordinator) Connect(conn domain.ConnID, sig core.SignalConnection) {
	c.registry.Bind(conn, sig)
}

// Disconnect is driven by the transport layer and is always valid.
// Applying it twice to the same connection is a no-op.
func (c *Coordinator) Disconnect(conn domain.ConnID) {
	s, ok := c.registry.Unbind(conn)
	if !ok {
		return
	}
	if s.Room == "" {
		return
	}
	c.departRoom(conn, s.Room)
}

// departRoom removes the connection from its room and narrates the
// departure to whoever remains.
func (c *Coordinator) departRoom(conn domain.ConnID, code domain.RoomCode) {
	unlock := c.locks.Acquire(code)
	defer unlock()

	m, err := c.presence.RemoveParticipant(code, conn)
	if err != nil {
		// Raced with a kick or dismissal; the room already saw the removal.
		log.Debug().Str("module", "app.coordinator").Str("conn", string(conn)).Msg("depart: already removed")
		return
	}
	members := c.presence.Members(code)
	c.cast.Fanout(members, domain.NewParticipantsUpdate(code, c.presence.Snapshot(code)))
	c.cast.Fanout(members, domain.NewSystemNoticeEvent(m.Participant.Username+" left"))
}

// Message broadcasts a chat message to the whole room, sender included,
// so every client renders from the same authoritative echo. Nothing is
// stored anywhere.
func (c *Coordinator) Message(conn domain.ConnID, code domain.RoomCode, text string) error {
	s, ok := c.registry.Get(conn)
	if !ok {
		return nil
	}
	if s.Room == "" || s.Room != code {
		return ErrNotInRoom
	}
	if strings.TrimSpace(text) == "" {
		return ErrInvalidMessage
	}

	unlock := c.locks.Acquire(code)
	defer unlock()

	// Re-check under the room's serialization; a concurrent kick or
	// dismissal may have removed the sender already.
	if room, ok := c.registry.RoomOf(conn); !ok || room != code {
		return ErrNotInRoom
	}
	members := c.presence.Members(code)
	var self *domain.Participant
	for i := range members {
		if members[i].Participant.Conn == conn {
			self = &members[i].Participant
			break
		}
	}
	if self == nil {
		return ErrNotInRoom
	}

	msg := domain.NewChatMessage(*self, text)
	c.cast.Fanout(members, domain.NewChatMessageEvent(msg))
	return nil
}

package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/catalog"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/core"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

// Join authenticates the caller, authorizes the room against the
// catalog, registers presence, and announces the arrival.
func (c *Coordinator) Join(ctx context.Context, conn domain.ConnID, token string, code domain.RoomCode) error {
	user, err := c.verifier.Verify(token)
	if err != nil {
		return ErrAuthenticationFailed
	}
	room, err := c.catalog.GetRoom(ctx, code)
	if err != nil || !room.Active {
		return ErrRoomNotFound
	}

	// Switching rooms: depart the old one first, before taking the new
	// room's lock, so two room locks are never held at once.
	if old, ok := c.registry.RoomOf(conn); ok && old != code {
		c.registry.ClearRoom(conn)
		c.departRoom(conn, old)
	}

	unlock := c.locks.Acquire(code)
	defer unlock()

	// A dismissal may have completed between the validation above and
	// taking the lock; re-read the catalog under the room's serialization
	// so a closed room is never repopulated.
	room, err = c.catalog.GetRoom(ctx, code)
	if err != nil || !room.Active {
		return ErrRoomNotFound
	}

	// The transport may have dropped the connection while we validated.
	// If it is gone, the join has no side effects at all.
	s, ok := c.registry.Get(conn)
	if !ok {
		log.Debug().Str("module", "app.coordinator").Str("conn", string(conn)).Msg("join: connection gone")
		return nil
	}

	// Admin status is a fresh comparison against the catalog's admin id,
	// never a flag cached on the connection or taken from the client.
	isAdmin := user.ID == room.AdminID

	// Repeated join for the room the connection is already in: idempotent,
	// but the ack is re-sent so a client that missed the first one can
	// still settle.
	if s.Room == code {
		c.cast.Send(s.Sig, domain.NewJoinAccepted(room, isAdmin, c.presence.Snapshot(code)))
		return nil
	}
	c.registry.SetUser(conn, user)

	p := domain.NewParticipant(conn, user, isAdmin)
	if err := c.presence.AddParticipant(code, core.Member{Participant: p, Conn: s.Sig}); err != nil {
		log.Warn().Err(err).Str("module", "app.coordinator").
			Str("conn", string(conn)).Str("room", string(code)).Msg("join rejected by presence")
		return nil
	}
	c.registry.SetRoom(conn, code)

	snap := c.presence.Snapshot(code)
	members := c.presence.Members(code)
	c.cast.Send(s.Sig, domain.NewJoinAccepted(room, isAdmin, snap))
	c.cast.Fanout(members, domain.NewParticipantsUpdate(code, snap))
	c.cast.FanoutExcept(members, conn, domain.NewSystemNoticeEvent(user.Username+" joined"))

	log.Info().Str("module", "app.coordinator").Str("conn", string(conn)).
		Str("room", string(code)).Bool("admin", isAdmin).Msg("join accepted")
	return nil
}

// Kick removes the target connection from the caller's room. Only the
// room's admin may kick; anyone else gets ErrForbidden, which the
// adapter swallows so admin state is not revealed.
func (c *Coordinator) Kick(ctx context.Context, conn, target domain.ConnID) error {
	s, ok := c.registry.Get(conn)
	if !ok {
		return nil
	}
	if s.Room == "" {
		return ErrNotInRoom
	}
	code := s.Room

	room, err := c.catalog.GetRoom(ctx, code)
	if err != nil {
		return ErrRoomNotFound
	}
	if s.User == nil || s.User.ID != room.AdminID {
		return ErrForbidden
	}

	unlock := c.locks.Acquire(code)
	defer unlock()

	m, err := c.presence.RemoveParticipant(code, target)
	if err != nil {
		// Target already left; nothing to do.
		return nil
	}
	c.registry.ClearRoom(target)
	c.cast.Send(m.Conn, domain.NewKicked(code))

	members := c.presence.Members(code)
	c.cast.Fanout(members, domain.NewParticipantsUpdate(code, c.presence.Snapshot(code)))
	c.cast.Fanout(members, domain.NewSystemNoticeEvent(m.Participant.Username+" was kicked by admin"))

	log.Info().Str("module", "app.coordinator").Str("room", string(code)).
		Str("target", string(target)).Msg("participant kicked")
	return nil
}

// Dismiss permanently closes the caller's room: terminal notice to all
// members, catalog record deleted, everyone evicted.
func (c *Coordinator) Dismiss(ctx context.Context, conn domain.ConnID, code domain.RoomCode) error {
	s, ok := c.registry.Get(conn)
	if !ok {
		return nil
	}
	if s.Room != code {
		return ErrNotInRoom
	}
	if s.User == nil {
		return ErrForbidden
	}
	return c.DismissRoom(ctx, s.User.ID, code)
}

// LeaveRoom departs every live connection the identity holds in the
// room. It backs the REST surface; the ws path leaves by closing the
// socket. Leaving a room the identity has no connection in is a no-op.
func (c *Coordinator) LeaveRoom(ctx context.Context, actor domain.UserID, code domain.RoomCode) error {
	if _, err := c.catalog.GetRoom(ctx, code); err != nil {
		return ErrRoomNotFound
	}
	for _, m := range c.presence.Members(code) {
		if m.Participant.UserID != actor {
			continue
		}
		conn := m.Participant.Conn
		c.registry.ClearRoom(conn)
		c.departRoom(conn, code)
		log.Info().Str("module", "app.coordinator").Str("room", string(code)).
			Str("conn", string(conn)).Msg("left via rest")
	}
	return nil
}

// DismissRoom is the shared dismissal path, also reachable from the
// REST surface, keyed by the acting identity instead of a connection.
func (c *Coordinator) DismissRoom(ctx context.Context, actor domain.UserID, code domain.RoomCode) error {
	room, err := c.catalog.GetRoom(ctx, code)
	if err != nil {
		return ErrRoomNotFound
	}
	if actor != room.AdminID {
		return ErrForbidden
	}

	unlock := c.locks.Acquire(code)
	defer unlock()

	members := c.presence.Members(code)
	c.cast.Fanout(members, domain.NewRoomDismissed("room permanently closed, no history retained"))

	if err := c.catalog.DeleteRoom(ctx, code); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		log.Error().Err(err).Str("module", "app.coordinator").Str("room", string(code)).Msg("catalog delete failed")
	}
	evicted := c.presence.DropRoom(code)
	for _, m := range evicted {
		c.registry.ClearRoom(m.Participant.Conn)
	}

	log.Info().Str("module", "app.coordinator").Str("room", string(code)).
		Int("evicted", len(evicted)).Msg("room dismissed")
	return nil
}

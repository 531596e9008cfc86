package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/core"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

// Session is one live connection's binding: transport endpoint, the
// identity pinned at join time, and the room it currently occupies.
type Session struct {
	Conn domain.ConnID
	Sig  core.SignalConnection
	User *domain.User
	Room domain.RoomCode
}

// Registry tracks every live connection, joined or not. A connection
// with an empty Room is either unauthenticated or has left its room.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.ConnID]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[domain.ConnID]*Session)}
}

// Bind registers a fresh connection. Called once per ws upgrade.
func (r *Registry) Bind(conn domain.ConnID, sig core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[conn] = &Session{Conn: conn, Sig: sig}
	log.Info().Str("module", "app.registry").Str("conn", string(conn)).Msg("bound session")
}

// Unbind removes the connection and reports what it was bound to.
// A second Unbind for the same connection returns false; disconnect
// handling relies on that for idempotence.
func (r *Registry) Unbind(conn domain.ConnID) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[conn]
	if !ok {
		return Session{}, false
	}
	delete(r.sessions, conn)
	log.Info().Str("module", "app.registry").Str("conn", string(conn)).Msg("unbound session")
	return *s, true
}

// Get returns a copy of the session, if the connection is still live.
func (r *Registry) Get(conn domain.ConnID) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[conn]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// SetUser pins the verified identity on the connection.
func (r *Registry) SetUser(conn domain.ConnID, user *domain.User) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[conn]
	if !ok {
		return false
	}
	s.User = user
	return true
}

// SetRoom records the room the connection joined.
func (r *Registry) SetRoom(conn domain.ConnID, code domain.RoomCode) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[conn]
	if !ok {
		return false
	}
	s.Room = code
	log.Info().Str("module", "app.registry").Str("conn", string(conn)).
		Str("room", string(code)).Msg("joined room")
	return true
}

// ClearRoom moves the connection out of its room without dropping the
// binding; the connection survives a kick or dismissal.
func (r *Registry) ClearRoom(conn domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[conn]; ok {
		s.Room = ""
	}
}

// RoomOf reports the room the connection currently occupies.
func (r *Registry) RoomOf(conn domain.ConnID) (domain.RoomCode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[conn]
	if !ok || s.Room == "" {
		return "", false
	}
	return s.Room, true
}

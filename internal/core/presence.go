package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

// presenceImpl is a threadsafe in-memory presence registry.
// It never closes adapter-owned transport resources.
type presenceImpl struct {
	mu    sync.RWMutex
	rooms map[domain.RoomCode]*roomSession
}

// roomSession holds one room's live participant set in join order.
type roomSession struct {
	mu     sync.Mutex
	order  []domain.ConnID
	byConn map[domain.ConnID]Member
}

func NewPresence() Presence {
	return &presenceImpl{rooms: make(map[domain.RoomCode]*roomSession)}
}

// room returns the session for code, or nil if absent.
func (p *presenceImpl) room(code domain.RoomCode) *roomSession {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rooms[code]
}

func (p *presenceImpl) EnsureRoom(code domain.RoomCode) {
	p.mu.RLock()
	_, ok := p.rooms[code]
	p.mu.RUnlock()
	if ok {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok = p.rooms[code]; !ok {
		p.rooms[code] = newRoomSession()
	}
}

func newRoomSession() *roomSession {
	return &roomSession{byConn: make(map[domain.ConnID]Member)}
}

func (p *presenceImpl) AddParticipant(code domain.RoomCode, m Member) error {
	// Get-or-create and pin the session in one critical section: a
	// concurrent removal may reap the entry, and an add resolved in two
	// steps could land in the orphaned session. The room lock is taken
	// before the registry lock is released so the reap path (which
	// acquires both in the same order) cannot run in between.
	p.mu.Lock()
	r, ok := p.rooms[code]
	if !ok {
		r = newRoomSession()
		p.rooms[code] = r
	}
	r.mu.Lock()
	p.mu.Unlock()
	defer r.mu.Unlock()
	conn := m.Participant.Conn
	if _, ok := r.byConn[conn]; ok {
		return ErrDuplicateConnection
	}
	r.byConn[conn] = m
	r.order = append(r.order, conn)
	log.Info().Str("module", "core.presence").Str("room", string(code)).
		Str("conn", string(conn)).Str("user", string(m.Participant.UserID)).Msg("participant added")
	return nil
}

func (p *presenceImpl) RemoveParticipant(code domain.RoomCode, conn domain.ConnID) (Member, error) {
	p.mu.Lock()
	r, ok := p.rooms[code]
	if !ok {
		p.mu.Unlock()
		return Member{}, ErrNotFound
	}

	r.mu.Lock()
	m, ok := r.byConn[conn]
	if !ok {
		r.mu.Unlock()
		p.mu.Unlock()
		return Member{}, ErrNotFound
	}
	delete(r.byConn, conn)
	for i, c := range r.order {
		if c == conn {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	empty := len(r.byConn) == 0
	r.mu.Unlock()

	// Reap empty rooms so abandoned codes do not pin memory; the catalog
	// record survives and a later join lazily recreates the session.
	if empty {
		delete(p.rooms, code)
	}
	p.mu.Unlock()

	log.Info().Str("module", "core.presence").Str("room", string(code)).
		Str("conn", string(conn)).Bool("reaped", empty).Msg("participant removed")
	return m, nil
}

// Snapshot returns an immutable join-ordered copy for broadcast payloads.
func (p *presenceImpl) Snapshot(code domain.RoomCode) []domain.Participant {
	r := p.room(code)
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Participant, 0, len(r.order))
	for _, conn := range r.order {
		out = append(out, r.byConn[conn].Participant)
	}
	return out
}

// Members returns participant+transport pairs for fanout, join-ordered.
func (p *presenceImpl) Members(code domain.RoomCode) []Member {
	r := p.room(code)
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Member, 0, len(r.order))
	for _, conn := range r.order {
		out = append(out, r.byConn[conn])
	}
	return out
}

func (p *presenceImpl) DropRoom(code domain.RoomCode) []Member {
	p.mu.Lock()
	r, ok := p.rooms[code]
	if ok {
		delete(p.rooms, code)
	}
	p.mu.Unlock()
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := make([]Member, 0, len(r.order))
	for _, conn := range r.order {
		evicted = append(evicted, r.byConn[conn])
	}
	r.byConn = make(map[domain.ConnID]Member)
	r.order = nil
	log.Info().Str("module", "core.presence").Str("room", string(code)).
		Int("evicted", len(evicted)).Msg("room dropped")
	return evicted
}

func (p *presenceImpl) IsEmpty(code domain.RoomCode) bool {
	r := p.room(code)
	if r == nil {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byConn) == 0
}

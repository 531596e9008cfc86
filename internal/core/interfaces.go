package core

import (
	"errors"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

// Frame is an encoded wire payload (JSON event).
type Frame []byte

// SignalConnection abstracts the messaging transport endpoint.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Member binds a participant record to its transport endpoint.
// This is what a room stores and fans out to.
type Member struct {
	Participant domain.Participant
	Conn        SignalConnection
}

// Registry faults. Both are defensive: duplicate handles should not
// happen under correct transport semantics, and removal races with
// disconnects are expected. Logged, never surfaced to clients.
var (
	ErrDuplicateConnection = errors.New("connection already in room")
	ErrNotFound            = errors.New("participant not found")
)

// Presence is the authoritative map of who is connected where.
// All operations are atomic per room; rooms never block each other.
// No caller may cache or mutate a participant set outside of it.
type Presence interface {
	EnsureRoom(code domain.RoomCode)
	AddParticipant(code domain.RoomCode, m Member) error
	RemoveParticipant(code domain.RoomCode, conn domain.ConnID) (Member, error)
	Snapshot(code domain.RoomCode) []domain.Participant
	Members(code domain.RoomCode) []Member
	DropRoom(code domain.RoomCode) []Member
	IsEmpty(code domain.RoomCode) bool
}

// Package catalog is the durable room/user store behind the live session core.
package catalog

import (
	"context"
	"errors"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Rooms is the slice of the catalog the session coordinator consumes:
// authorization lookups plus delete-on-dismiss.
type Rooms interface {
	GetRoom(ctx context.Context, code domain.RoomCode) (*domain.Room, error)
	DeleteRoom(ctx context.Context, code domain.RoomCode) error
}

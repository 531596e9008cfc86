package domain

import (
	"crypto/rand"
	"errors"
)

type (
	RoomName string
	RoomCode string
)

const (
	RoomCodeLen    = 8
	MaxRoomNameLen = 36

	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var (
	ErrRoomNameEmpty   = errors.New("room name empty")
	ErrRoomNameTooLong = errors.New("room name too long")
)

// Room mirrors one catalog record. Live membership is not part of it;
// that belongs to the presence registry.
type Room struct {
	Code    RoomCode `json:"code"`
	Name    RoomName `json:"name"`
	AdminID UserID   `json:"adminId"`
	Active  bool     `json:"active"`
}

func NewRoom(name RoomName, admin UserID) (*Room, error) {
	if len(name) == 0 {
		return nil, ErrRoomNameEmpty
	}
	if len(name) > MaxRoomNameLen {
		return nil, ErrRoomNameTooLong
	}
	return &Room{Code: NewRoomCode(), Name: name, AdminID: admin, Active: true}, nil
}

// NewRoomCode returns a short shareable code. The alphabet skips
// lookalike characters (0/O, 1/I).
func NewRoomCode() RoomCode {
	b := make([]byte, RoomCodeLen)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = roomCodeAlphabet[int(b[i])%len(roomCodeAlphabet)]
	}
	return RoomCode(b)
}

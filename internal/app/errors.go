package app

import "errors"

// Event-level failures. None of these is fatal to the process; the ws
// adapter decides per policy whether each one reaches the client.
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRoomNotFound         = errors.New("room not found")
	ErrNotInRoom            = errors.New("not in room")
	ErrInvalidMessage       = errors.New("invalid message")
	ErrForbidden            = errors.New("forbidden")
)

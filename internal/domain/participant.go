package domain

import "time"

// ConnID identifies one live transport connection. A user who rejoins
// gets a fresh ConnID; the old one never comes back.
type ConnID string

// Participant is one connection's membership record inside a room.
// Immutable once created. No transport or lifecycle logic here.
type Participant struct {
	Conn     ConnID    `json:"conn"`
	UserID   UserID    `json:"id"`
	Username string    `json:"username"`
	IsAdmin  bool      `json:"isAdmin"`
	JoinedAt time.Time `json:"joinedAt"`
}

// NewParticipant avoids raw literals in adapters and keeps construction obvious.
func NewParticipant(conn ConnID, user *User, isAdmin bool) Participant {
	return Participant{
		Conn:     conn,
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  isAdmin,
		JoinedAt: time.Now().UTC(),
	}
}

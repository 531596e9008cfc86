package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Wire event names, both directions. The ws adapter dispatches inbound
// frames on EventType and stamps it on every outbound frame.
type EventType string

const (
	// client -> server
	EventJoin    EventType = "join"
	EventMessage EventType = "message"
	EventKick    EventType = "kick"
	EventDismiss EventType = "dismiss"
	EventPing    EventType = "ping"

	// server -> client
	EventJoinAccepted       EventType = "joinAccepted"
	EventParticipantsUpdate EventType = "participantsUpdate"
	EventChatMessage        EventType = "chatMessage"
	EventSystemNotice       EventType = "systemNotice"
	EventKicked             EventType = "kicked"
	EventRoomDismissed      EventType = "roomDismissed"
	EventErrorNotice        EventType = "errorNotice"
	EventPong               EventType = "pong"
)

// ChatMessage is an in-flight broadcast payload. It is never stored.
type ChatMessage struct {
	ID        string    `json:"id"`
	AuthorID  UserID    `json:"authorId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsAdmin   bool      `json:"isAdmin"`
}

func NewChatMessage(p Participant, text string) ChatMessage {
	return ChatMessage{
		ID:        ulid.Make().String(),
		AuthorID:  p.UserID,
		Username:  p.Username,
		Text:      text,
		Timestamp: time.Now().UTC(),
		IsAdmin:   p.IsAdmin,
	}
}

// SystemNotice narrates presence and lifecycle changes to room members.
type SystemNotice struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	RoomClosed bool      `json:"roomClosed,omitempty"`
}

func NewSystemNotice(text string) SystemNotice {
	return SystemNotice{ID: ulid.Make().String(), Text: text, Timestamp: time.Now().UTC()}
}

func NewRoomClosedNotice(text string) SystemNotice {
	n := NewSystemNotice(text)
	n.RoomClosed = true
	return n
}

// Outbound frames. Each carries its EventType inline so clients can
// dispatch on a flat {type, ...} envelope.

type JoinAcceptedEvent struct {
	Type         EventType     `json:"type"`
	RoomCode     RoomCode      `json:"roomCode"`
	RoomName     RoomName      `json:"roomName"`
	IsAdmin      bool          `json:"isAdmin"`
	Participants []Participant `json:"participants"`
}

func NewJoinAccepted(room *Room, isAdmin bool, participants []Participant) JoinAcceptedEvent {
	return JoinAcceptedEvent{
		Type:         EventJoinAccepted,
		RoomCode:     room.Code,
		RoomName:     room.Name,
		IsAdmin:      isAdmin,
		Participants: participants,
	}
}

type ParticipantsUpdateEvent struct {
	Type         EventType     `json:"type"`
	RoomCode     RoomCode      `json:"roomCode"`
	Participants []Participant `json:"participants"`
}

func NewParticipantsUpdate(code RoomCode, participants []Participant) ParticipantsUpdateEvent {
	return ParticipantsUpdateEvent{Type: EventParticipantsUpdate, RoomCode: code, Participants: participants}
}

type ChatMessageEvent struct {
	Type EventType `json:"type"`
	ChatMessage
}

func NewChatMessageEvent(msg ChatMessage) ChatMessageEvent {
	return ChatMessageEvent{Type: EventChatMessage, ChatMessage: msg}
}

type SystemNoticeEvent struct {
	Type EventType `json:"type"`
	SystemNotice
}

func NewSystemNoticeEvent(text string) SystemNoticeEvent {
	return SystemNoticeEvent{Type: EventSystemNotice, SystemNotice: NewSystemNotice(text)}
}

type KickedEvent struct {
	Type     EventType `json:"type"`
	RoomCode RoomCode  `json:"roomCode"`
}

func NewKicked(code RoomCode) KickedEvent {
	return KickedEvent{Type: EventKicked, RoomCode: code}
}

type RoomDismissedEvent struct {
	Type EventType `json:"type"`
	SystemNotice
}

func NewRoomDismissed(text string) RoomDismissedEvent {
	return RoomDismissedEvent{Type: EventRoomDismissed, SystemNotice: NewRoomClosedNotice(text)}
}

type ErrorNoticeEvent struct {
	Type   EventType `json:"type"`
	Reason string    `json:"reason"`
}

func NewErrorNotice(reason string) ErrorNoticeEvent {
	return ErrorNoticeEvent{Type: EventErrorNotice, Reason: reason}
}

type PongEvent struct {
	Type EventType `json:"type"`
}

func NewPong() PongEvent { return PongEvent{Type: EventPong} }

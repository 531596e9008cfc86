package signal

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/app"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

func (ctl *Controller) handleJoin(ctx context.Context, conn domain.ConnID, c *WsConn, data []byte) {
	var p struct {
		Type     domain.EventType `json:"type"`
		Token    string           `json:"token"`
		RoomCode domain.RoomCode  `json:"roomCode"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(c, "bad_payload")
		return
	}

	err := ctl.coord.Join(ctx, conn, p.Token, p.RoomCode)
	switch {
	case errors.Is(err, app.ErrAuthenticationFailed):
		ctl.sendError(c, "Authentication failed")
	case errors.Is(err, app.ErrRoomNotFound):
		ctl.sendError(c, "Room not found")
	case err != nil:
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(conn)).Msg("join failed")
	}
}

func (ctl *Controller) handleKick(ctx context.Context, conn domain.ConnID, c *WsConn, data []byte) {
	var p struct {
		Type   domain.EventType `json:"type"`
		Target domain.ConnID    `json:"target"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad kick payload")
		return
	}

	// Forbidden is deliberately silent: a non-admin probing for kick
	// must not learn who the admin is.
	if err := ctl.coord.Kick(ctx, conn, p.Target); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(conn)).Msg("kick dropped")
	}
}

func (ctl *Controller) handleDismiss(ctx context.Context, conn domain.ConnID, c *WsConn, data []byte) {
	var p struct {
		Type     domain.EventType `json:"type"`
		RoomCode domain.RoomCode  `json:"roomCode"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad dismiss payload")
		return
	}

	err := ctl.coord.Dismiss(ctx, conn, p.RoomCode)
	switch {
	case errors.Is(err, app.ErrRoomNotFound):
		ctl.sendError(c, "Room not found")
	case err != nil:
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(conn)).Msg("dismiss dropped")
	}
}

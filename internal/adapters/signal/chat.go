package signal

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

func (ctl *Controller) handleMessage(ctx context.Context, conn domain.ConnID, c *WsConn, data []byte) {
	var p struct {
		Type     domain.EventType `json:"type"`
		RoomCode domain.RoomCode  `json:"roomCode"`
		Text     string           `json:"text"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad message payload")
		return
	}

	// Invalid or out-of-room messages are dropped, not surfaced.
	if err := ctl.coord.Message(conn, p.RoomCode, p.Text); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(conn)).Msg("message dropped")
	}
}

func (ctl *Controller) handlePing(_ context.Context, _ domain.ConnID, c *WsConn, _ []byte) {
	ctl.cast.Send(c, domain.NewPong())
}

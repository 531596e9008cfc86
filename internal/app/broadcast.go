package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/core"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

// Broadcaster is the thin adapter over the transport primitives: encode
// once, then room multicast or single-connection send. TrySend never
// blocks; a slow client just drops the frame.
type Broadcaster struct{}

func (Broadcaster) encode(v any) (core.Frame, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.broadcast").Msg("marshal event")
		return nil, false
	}
	return b, true
}

// Send delivers one event to one connection.
func (b Broadcaster) Send(sig core.SignalConnection, v any) {
	if sig == nil {
		return
	}
	frame, ok := b.encode(v)
	if !ok {
		return
	}
	if err := sig.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "app.broadcast").Msg("unicast dropped")
	}
}

// Fanout delivers one event to every member of a room snapshot.
func (b Broadcaster) Fanout(members []core.Member, v any) {
	b.fanout(members, "", v)
}

// FanoutExcept delivers to every member except one connection.
func (b Broadcaster) FanoutExcept(members []core.Member, skip domain.ConnID, v any) {
	b.fanout(members, skip, v)
}

func (b Broadcaster) fanout(members []core.Member, skip domain.ConnID, v any) {
	frame, ok := b.encode(v)
	if !ok {
		return
	}
	sent := 0
	for _, m := range members {
		if m.Participant.Conn == skip {
			continue
		}
		if err := m.Conn.TrySend(frame); err != nil {
			log.Warn().Err(err).Str("module", "app.broadcast").
				Str("conn", string(m.Participant.Conn)).Msg("fanout dropped")
			continue
		}
		sent++
	}
	log.Debug().Str("module", "app.broadcast").Int("sent_to", sent).Msg("fanout")
}

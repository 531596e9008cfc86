// Package signal is the realtime transport adapter: it owns the
// websocket connections and translates wire frames into coordinator
// events. The core never touches sockets directly.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/app"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/core"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

type handlerFunc func(ctx context.Context, conn domain.ConnID, c *WsConn, data []byte)

// Controller upgrades connections and dispatches inbound events.
type Controller struct {
	coord     *app.Coordinator
	cast      app.Broadcaster
	readLimit int64
	handlers  map[domain.EventType]handlerFunc
}

func NewController(coord *app.Coordinator, readLimit int64) *Controller {
	ctl := &Controller{coord: coord, readLimit: readLimit}
	// Explicit dispatch table; handler lifetime is scoped to the
	// connection's read loop, nothing is registered or removed at runtime.
	ctl.handlers = map[domain.EventType]handlerFunc{
		domain.EventJoin:    ctl.handleJoin,
		domain.EventMessage: ctl.handleMessage,
		domain.EventKick:    ctl.handleKick,
		domain.EventDismiss: ctl.handleDismiss,
		domain.EventPing:    ctl.handlePing,
	}
	return ctl
}

// WsConn is the transport endpoint stored in the presence registry.
// Owned here; the adapter must Close() it.
type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and starts the connection's pumps.
// Every upgrade gets a fresh connection handle; a rejoining user is a
// new participant under a new handle.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.readLimit > 0 {
		ws.SetReadLimit(ctl.readLimit)
	}

	conn := domain.ConnID(uuid.NewString())
	wsc := &WsConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}
	log.Info().Str("module", "signal").Str("conn", string(conn)).Msg("new WS connection")

	ctl.coord.Connect(conn, wsc)

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ctl.writePump(ctx, wsc)
		cancel()
	}()
	go func() {
		ctl.readPump(ctx, conn, wsc)
		cancel()
	}()
}

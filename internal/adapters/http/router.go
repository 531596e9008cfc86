// Package http wires the request/response surface: auth plumbing, the
// room catalog REST API, and the ws endpoint the realtime core hangs off.
package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/adapters/signal"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/app"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/catalog"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/config"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/identity"
)

// Deps bundles what the routes need; main builds it once.
type Deps struct {
	Catalog  *catalog.Store
	Verifier *identity.Verifier
	Coord    *app.Coordinator
	Signal   *signal.Controller
}

func SetupRouter(ctx context.Context, cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Chit-Chat API running")
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.handleRegister)
	auth.POST("/login", d.handleLogin)

	rooms := api.Group("/rooms")
	rooms.Use(d.authRequired())
	rooms.POST("/create", d.handleCreateRoom)
	rooms.POST("/join", d.handleJoinRoom)
	rooms.POST("/leave", d.handleLeaveRoom)
	rooms.POST("/dismiss", d.handleDismissRoom)

	r.GET("/ws", func(c *gin.Context) {
		d.Signal.HandleWS(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}

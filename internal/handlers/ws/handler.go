// Package ws serves the game over WebSocket: one session per
// connection, JSON commands in, frame and event updates out. The
// simulation core never sees the connection; everything crosses the
// boundary as decoded actions and rendered frames.
package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/game"
)

// Config holds the dependencies for creating a Handler.
type Config struct {
	Sessions game.SessionService
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Sessions == nil {
		vb.RequiredField("Sessions")
	}
	return vb.Build()
}

// Handler upgrades HTTP requests to websockets and runs one client
// pump pair per connection.
type Handler struct {
	sessions game.SessionService
	upgrader websocket.Upgrader
}

// NewHandler creates a Handler from the given configuration.
func NewHandler(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		sessions: cfg.Sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	slog.Info("client connected", "remote", conn.RemoteAddr().String())

	c := newClient(h, conn)
	go c.writePump()
	go c.readPump()
}

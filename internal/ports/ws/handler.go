// Package ws exposes the coordinator to browser clients over websockets.
package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"setgame/internal/app"
)

const leaveTimeout = 5 * time.Second

// Handler upgrades HTTP requests and feeds client frames to the coordinator.
type Handler struct {
	coord    *app.Coordinator
	logger   zerolog.Logger
	upgrader websocket.Upgrader
	newID    func() string
}

// Option customizes a Handler.
type Option func(*Handler)

// WithCheckOrigin overrides the upgrader's origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(h *Handler) { h.upgrader.CheckOrigin = fn }
}

// WithIDGenerator overrides how connection user ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(h *Handler) { h.newID = fn }
}

// NewHandler builds a websocket handler bound to coord.
func NewHandler(coord *app.Coordinator, logger zerolog.Logger, opts ...Option) *Handler {
	h := &Handler{
		coord:  coord,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP serves one client until its socket closes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := newConnection(h.newID(), conn, h.logger)
	h.logger.Debug().Str("user", c.id).Str("remote", r.RemoteAddr).Msg("client connected")
	defer h.disconnect(c)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug().Err(err).Str("user", c.id).Msg("read failed")
			}
			return
		}
		h.handleMessage(r.Context(), c, data)
	}
}

func (h *Handler) handleMessage(ctx context.Context, c *connection, data []byte) {
	msg, err := decodeInbound(data)
	if err != nil {
		h.reply(c, err)
		return
	}
	cmd, err := msg.command(c)
	if err != nil {
		h.reply(c, err)
		return
	}

	if join, ok := cmd.(app.Join); ok {
		if prev := c.joinedRoom(); prev != "" && prev != join.RoomName {
			if err := h.coord.Submit(ctx, app.Leave{UserID: c.id, Sink: c, RoomName: prev}); err != nil {
				h.logger.Warn().Err(err).Str("user", c.id).Str("room", prev).Msg("leave before join failed")
			}
			c.setRoom("")
		}
	}

	if err := h.coord.Submit(ctx, cmd); err != nil {
		h.logger.Info().Err(err).Str("user", c.id).Str("type", msg.Type).Msg("command rejected")
		h.reply(c, err)
		return
	}

	switch cmd := cmd.(type) {
	case app.Join:
		c.setRoom(cmd.RoomName)
	case app.Leave:
		c.setRoom("")
	}
}

// reply sends the error straight to the connection; the user may not be registered yet.
func (h *Handler) reply(c *connection, err error) {
	data, encErr := app.EncodeEvent(app.ErrorEvent(c.id, err))
	if encErr != nil {
		h.logger.Error().Err(encErr).Msg("encode error event")
		return
	}
	_ = c.Deliver(data)
}

func (h *Handler) disconnect(c *connection) {
	defer c.close()

	room := c.joinedRoom()
	if room == "" {
		h.coord.Sessions().Unregister(c.id, c)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), leaveTimeout)
	defer cancel()
	err := h.coord.Submit(ctx, app.Leave{UserID: c.id, Sink: c, RoomName: room})
	if err != nil && !errors.Is(err, app.ErrCoordinatorStopped) {
		h.logger.Warn().Err(err).Str("user", c.id).Str("room", room).Msg("leave on disconnect failed")
	}
	h.logger.Debug().Str("user", c.id).Msg("client disconnected")
}

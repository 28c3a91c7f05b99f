package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	sendBufferSize = 32
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var (
	errConnectionClosed = errors.New("connection closed")
	errSendBufferFull   = errors.New("send buffer full")
)

// connection is one websocket client. Deliver queues frames; a single
// writeLoop goroutine owns all writes to the socket.
type connection struct {
	id     string
	conn   *websocket.Conn
	logger zerolog.Logger

	send      chan []byte
	closeOnce sync.Once
	done      chan struct{}

	mu   sync.Mutex
	room string
}

func newConnection(id string, conn *websocket.Conn, logger zerolog.Logger) *connection {
	c := &connection{
		id:     id,
		conn:   conn,
		logger: logger,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
	go c.writeLoop()
	return c
}

// Deliver queues data without blocking. A client that cannot keep up is disconnected.
func (c *connection) Deliver(data []byte) error {
	select {
	case <-c.done:
		return errConnectionClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return errConnectionClosed
	default:
		c.logger.Warn().Str("user", c.id).Msg("send buffer full; dropping client")
		c.close()
		return errSendBufferFull
	}
}

func (c *connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug().Err(err).Str("user", c.id).Msg("write failed")
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}

func (c *connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *connection) joinedRoom() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *connection) setRoom(room string) {
	c.mu.Lock()
	c.room = room
	c.mu.Unlock()
}

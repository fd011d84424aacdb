package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
)

// Conn is one client websocket. Rooms enqueue frames with Send; a single
// writer goroutine drains the queue so frames leave in enqueue order.
type Conn struct {
	socket    *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newConn(socket *websocket.Conn, queueSize int) *Conn {
	socket.SetReadLimit(maxMessageSize)
	return &Conn{
		socket: socket,
		send:   make(chan []byte, queueSize),
		done:   make(chan struct{}),
	}
}

// Send queues data without blocking. A client whose queue is full is too
// slow to keep up and gets disconnected.
func (c *Conn) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.Close()
		return ErrSendQueueFull
	}
}

func (c *Conn) IsOpen() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.socket.Close()
	})
}

func (c *Conn) read() ([]byte, error) {
	_, data, err := c.socket.ReadMessage()
	return data, err
}

func (c *Conn) writePump() {
	defer c.Close()

	for {
		select {
		case data := <-c.send:
			_ = c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.socket.WriteMessage(websocket.TextMessage, data); err != nil {
				zap.L().Debug("ws.write", zap.Error(err))
				return
			}
		case <-c.done:
			return
		}
	}
}

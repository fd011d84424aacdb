package game

import (
	"time"

	"golang.org/x/time/rate"
)

// Conn is the outbound half of a client connection. Send must not block:
// implementations queue the frame and write it from their own goroutine.
// Close is called when another connection takes over the seat.
type Conn interface {
	Send(data []byte) error
	IsOpen() bool
	Close()
}

// Player is one seat in a room. All fields are owned by the room and only
// touched while holding the room lock.
type Player struct {
	username  string
	clientID  string
	conn      Conn
	isDrawing bool
	score     int
	rank      int
	isOnline  bool

	lastPingAt   time.Time
	lastPongAt   time.Time
	heartbeat    Timer
	heartbeatGen uint64

	chat *rate.Limiter
}

func newPlayer(clientID, username string, conn Conn, settings Settings) *Player {
	limit := rate.Inf
	if settings.ChatRate > 0 {
		limit = rate.Limit(settings.ChatRate)
	}
	burst := settings.ChatBurst
	if burst < 1 {
		burst = 1
	}
	return &Player{
		username: username,
		clientID: clientID,
		conn:     conn,
		isOnline: true,
		chat:     rate.NewLimiter(limit, burst),
	}
}

func (p *Player) connected() bool {
	return p.conn != nil && p.conn.IsOpen()
}

func (p *Player) usernameOrEmpty() string {
	if p == nil {
		return ""
	}
	return p.username
}

package ws

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ThakurMayank5/skribbl-rooms/internal/api"
	"github.com/ThakurMayank5/skribbl-rooms/internal/game"
	"github.com/ThakurMayank5/skribbl-rooms/internal/protocol"
)

type Server struct {
	rooms     *game.Registry
	upgrader  websocket.Upgrader
	queueSize int
}

func NewServer(rooms *game.Registry, allowedOrigins []string, queueSize int) *Server {
	return &Server{
		rooms: rooms,
		upgrader: websocket.Upgrader{
			CheckOrigin: checkOrigin(allowedOrigins),
		},
		queueSize: queueSize,
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
	}
}

// session is the per-connection state of the read loop.
type session struct {
	clientID string
	conn     *Conn
}

// Handle upgrades the request and serves the connection until it closes.
func (s *Server) Handle(c *gin.Context) {
	clientID := api.ClientID(c)
	if clientID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.BasicApiResponse{Successful: false, Message: "No session."})
		return
	}

	socket, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}

	conn := newConn(socket, s.queueSize)
	go conn.writePump()

	sess := &session{clientID: clientID, conn: conn}
	zap.L().Debug("ws.connected", zap.String("client", clientID))
	s.readLoop(sess)
}

func (s *Server) readLoop(sess *session) {
	defer s.disconnected(sess)

	for {
		raw, err := sess.conn.read()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("ws.read", zap.String("client", sess.clientID), zap.Error(err))
			}
			return
		}

		msg, err := protocol.Decode(raw)
		if err != nil {
			zap.L().Debug("ws.decode", zap.String("client", sess.clientID), zap.Error(err))
			s.reply(sess, protocol.NewGameError(protocol.ErrorInvalidMessage))
			continue
		}
		s.dispatch(sess, msg)
	}
}

func (s *Server) dispatch(sess *session, msg any) {
	switch m := msg.(type) {
	case *protocol.JoinRoomHandshake:
		s.handshake(sess, m)
	case *protocol.DrawData:
		if room := s.roomByName(sess, m.RoomName); room != nil {
			room.HandleDrawData(sess.clientID, *m)
		}
	case *protocol.DrawAction:
		if room, ok := s.rooms.RoomOf(sess.clientID); ok {
			room.HandleDrawAction(sess.clientID, *m)
		}
	case *protocol.ChosenWord:
		if room := s.roomByName(sess, m.RoomName); room != nil {
			room.ChooseWord(sess.clientID, m.ChosenWord)
		}
	case *protocol.ChatMessage:
		if room := s.roomByName(sess, m.RoomName); room != nil {
			room.HandleChat(sess.clientID, *m)
		}
	case *protocol.Ping:
		if room, ok := s.rooms.RoomOf(sess.clientID); ok {
			room.ReceivePong(sess.clientID)
		}
	case *protocol.DisconnectRequest:
		if room, ok := s.rooms.RoomOf(sess.clientID); ok {
			room.Leave(sess.clientID, true)
		}
	}
}

func (s *Server) handshake(sess *session, m *protocol.JoinRoomHandshake) {
	if m.ClientID != "" {
		sess.clientID = m.ClientID
	}

	room, ok := s.rooms.Get(m.RoomName)
	if !ok {
		s.reply(sess, protocol.NewGameError(protocol.ErrorRoomNotFound))
		return
	}
	// the current room is only left once the new one would take the client
	if err := room.CanJoin(sess.clientID, m.Username); err != nil {
		s.rejectJoin(sess, m.RoomName, err)
		return
	}
	if current, ok := s.rooms.RoomOf(sess.clientID); ok && current != room {
		current.Leave(sess.clientID, true)
	}

	if err := room.Join(sess.clientID, m.Username, sess.conn); err != nil {
		s.rejectJoin(sess, m.RoomName, err)
	}
}

func (s *Server) rejectJoin(sess *session, roomName string, err error) {
	zap.L().Debug("ws.join_rejected",
		zap.String("client", sess.clientID),
		zap.String("room", roomName),
		zap.Error(err),
	)
	s.reply(sess, protocol.NewGameError(gameErrorCode(err)))
}

// roomByName resolves the room a frame is addressed to, telling the sender
// when it does not exist.
func (s *Server) roomByName(sess *session, name string) *game.Room {
	room, ok := s.rooms.Get(name)
	if !ok {
		s.reply(sess, protocol.NewGameError(protocol.ErrorRoomNotFound))
		return nil
	}
	return room
}

func (s *Server) disconnected(sess *session) {
	if room, ok := s.rooms.RoomOf(sess.clientID); ok {
		room.ConnectionClosed(sess.clientID, sess.conn)
	}
	sess.conn.Close()
	zap.L().Debug("ws.disconnected", zap.String("client", sess.clientID))
}

func (s *Server) reply(sess *session, msg any) {
	data, err := protocol.Encode(msg)
	if err != nil {
		zap.L().Error("ws.encode", zap.Error(err))
		return
	}
	if err := sess.conn.Send(data); err != nil {
		zap.L().Debug("ws.reply", zap.String("client", sess.clientID), zap.Error(err))
	}
}

func gameErrorCode(err error) int {
	switch {
	case errors.Is(err, game.ErrRoomFull):
		return protocol.ErrorRoomFull
	case errors.Is(err, game.ErrUsernameTaken):
		return protocol.ErrorUsernameTaken
	default:
		return protocol.ErrorRoomNotFound
	}
}

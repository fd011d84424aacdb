package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ThakurMayank5/skribbl-rooms/internal/game"
)

type Handler struct {
	rooms *game.Registry
}

func New(rooms *game.Registry) *Handler { return &Handler{rooms: rooms} }

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/api/createRoom", h.createRoom)
	r.GET("/api/getRooms", h.getRooms)
	r.GET("/api/joinRoom", h.joinRoom)
}

func (h *Handler) createRoom(c *gin.Context) {
	var body CreateRoomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, BasicApiResponse{Successful: false, Message: err.Error()})
		return
	}

	if _, err := h.rooms.Create(body.Name, body.MaxPlayers); err != nil {
		c.JSON(http.StatusOK, BasicApiResponse{Successful: false, Message: h.createRoomMessage(err)})
		return
	}
	c.JSON(http.StatusOK, BasicApiResponse{Successful: true})
}

func (h *Handler) createRoomMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrRoomExists):
		return "Room already exists."
	case errors.Is(err, game.ErrRoomTooSmall):
		return fmt.Sprintf("The minimum room size is %d.", game.MinRoomSize)
	case errors.Is(err, game.ErrRoomTooLarge):
		return fmt.Sprintf("The maximum room size is %d.", h.rooms.MaxRoomSize())
	default:
		zap.L().Error("api.create_room", zap.Error(err))
		return err.Error()
	}
}

func (h *Handler) getRooms(c *gin.Context) {
	// an empty query lists every room, a missing one is rejected
	query, ok := c.GetQuery("searchQuery")
	if !ok {
		c.JSON(http.StatusBadRequest, BasicApiResponse{Successful: false, Message: "The search query is null."})
		return
	}

	infos := h.rooms.List(query)
	out := make([]RoomResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, RoomResponse{
			Name:        info.Name,
			MaxPlayers:  info.MaxPlayers,
			PlayerCount: info.PlayerCount,
		})
	}
	c.JSON(http.StatusOK, out)
}

// joinRoom only checks whether a join would be accepted; the seat is taken
// by the websocket handshake.
func (h *Handler) joinRoom(c *gin.Context) {
	var q JoinRoomQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, BasicApiResponse{Successful: false, Message: "The user name or room name is null"})
		return
	}

	room, ok := h.rooms.Get(q.RoomName)
	if !ok {
		c.JSON(http.StatusOK, BasicApiResponse{Successful: false, Message: "Room not found"})
		return
	}

	switch err := room.CanJoin("", q.Username); {
	case err == nil:
		c.JSON(http.StatusOK, BasicApiResponse{Successful: true})
	case errors.Is(err, game.ErrUsernameTaken):
		c.JSON(http.StatusOK, BasicApiResponse{Successful: false, Message: "A player with this username already joined."})
	case errors.Is(err, game.ErrRoomFull):
		c.JSON(http.StatusOK, BasicApiResponse{Successful: false, Message: "This room is already full."})
	default:
		c.JSON(http.StatusOK, BasicApiResponse{Successful: false, Message: "Room not found"})
	}
}

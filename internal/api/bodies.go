package api

type BasicApiResponse struct {
	Successful bool   `json:"successful"`
	Message    string `json:"message,omitempty"`
}

type CreateRoomBody struct {
	Name       string `json:"name"       binding:"required,max=64"`
	MaxPlayers int    `json:"maxPlayers"`
}

type RoomResponse struct {
	Name        string `json:"name"`
	MaxPlayers  int    `json:"maxPlayers"`
	PlayerCount int    `json:"playerCount"`
}

type JoinRoomQuery struct {
	Username string `form:"username" binding:"required"`
	RoomName string `form:"roomName" binding:"required"`
}

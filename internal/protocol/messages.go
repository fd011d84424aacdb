package protocol

// Message type tags carried in the "type" field of every frame.
const (
	TypeChatMessage       = "TYPE_CHAT_MESSAGE"
	TypeDrawData          = "TYPE_DRAW_DATA"
	TypeDrawAction        = "TYPE_DRAW_ACTION"
	TypeAnnouncement      = "TYPE_ANNOUNCEMENT"
	TypeJoinRoomHandshake = "TYPE_JOIN_ROOM_HANDSHAKE"
	TypeGameError         = "TYPE_GAME_ERROR"
	TypePhaseChange       = "TYPE_PHASE_CHANGE"
	TypeChosenWord        = "TYPE_CHOSEN_WORD"
	TypeGameState         = "TYPE_GAME_STATE"
	TypeNewWords          = "TYPE_NEW_WORDS"
	TypePlayersList       = "TYPE_PLAYERS_LIST"
	TypePing              = "TYPE_PING"
	TypeDisconnectRequest = "TYPE_DISCONNECT_REQUEST"
	TypeCurRoundDrawInfo  = "TYPE_CUR_ROUND_DRAW_INFO"
)

// Stroke states of a DrawData segment, mirroring touch events on the client.
const (
	StrokeDown = 0
	StrokeUp   = 1
	StrokeMove = 2
)

const ActionUndo = "ACTION_UNDO"

const (
	ErrorRoomNotFound   = 0
	ErrorRoomFull       = 1
	ErrorUsernameTaken  = 2
	ErrorInvalidMessage = 3
)

const (
	AnnouncementPlayerJoined     = 0
	AnnouncementPlayerLeft       = 1
	AnnouncementPlayerGuessed    = 2
	AnnouncementEverybodyGuessed = 3
)

type Envelope struct {
	Type string `json:"type"`
}

type JoinRoomHandshake struct {
	Type     string `json:"type"`
	Username string `json:"username" validate:"required,max=32"`
	RoomName string `json:"roomName" validate:"required,max=64"`
	ClientID string `json:"clientId" validate:"omitempty,max=64"`
}

type DrawData struct {
	Type        string  `json:"type"`
	RoomName    string  `json:"roomName" validate:"required"`
	Color       int     `json:"color"`
	Thickness   float64 `json:"thickness" validate:"gte=0"`
	FromX       float64 `json:"fromX"`
	FromY       float64 `json:"fromY"`
	ToX         float64 `json:"toX"`
	ToY         float64 `json:"toY"`
	StrokeState int     `json:"strokeState" validate:"gte=0,lte=2"`
}

type DrawAction struct {
	Type   string `json:"type"`
	Action string `json:"action" validate:"required,oneof=ACTION_UNDO"`
}

type ChosenWord struct {
	Type       string `json:"type"`
	ChosenWord string `json:"chosenWord" validate:"required"`
	RoomName   string `json:"roomName" validate:"required"`
}

type ChatMessage struct {
	Type      string `json:"type"`
	From      string `json:"from"`
	RoomName  string `json:"roomName" validate:"required"`
	Message   string `json:"message" validate:"required,max=500"`
	Timestamp int64  `json:"timestamp"`
}

type Ping struct {
	Type string `json:"type"`
}

type DisconnectRequest struct {
	Type string `json:"type"`
}

type GameError struct {
	Type      string `json:"type"`
	ErrorType int    `json:"errorType"`
}

// PhaseChange is broadcast on every phase tick. Phase is nil on
// continuation ticks; Time is the remaining time in milliseconds.
type PhaseChange struct {
	Type          string  `json:"type"`
	Phase         *string `json:"phase"`
	Time          int64   `json:"time"`
	DrawingPlayer *string `json:"drawingPlayer"`
}

type NewWords struct {
	Type     string   `json:"type"`
	NewWords []string `json:"newWords"`
}

type GameState struct {
	Type          string `json:"type"`
	DrawingPlayer string `json:"drawingPlayer"`
	Word          string `json:"word"`
}

type PlayerData struct {
	Username  string `json:"username"`
	IsDrawing bool   `json:"isDrawing"`
	Score     int    `json:"score"`
	Rank      int    `json:"rank"`
}

type PlayersList struct {
	Type    string       `json:"type"`
	Players []PlayerData `json:"players"`
}

type Announcement struct {
	Type             string `json:"type"`
	Message          string `json:"message"`
	Timestamp        int64  `json:"timestamp"`
	AnnouncementType int    `json:"announcementType"`
}

type RoundDrawInfo struct {
	Type string   `json:"type"`
	Data []string `json:"data"`
}

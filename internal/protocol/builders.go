package protocol

import "time"

func NewGameError(errorType int) GameError {
	return GameError{Type: TypeGameError, ErrorType: errorType}
}

func NewPhaseChange(phase *string, remaining time.Duration, drawingPlayer *string) PhaseChange {
	return PhaseChange{
		Type:          TypePhaseChange,
		Phase:         phase,
		Time:          remaining.Milliseconds(),
		DrawingPlayer: drawingPlayer,
	}
}

func NewNewWords(words []string) NewWords {
	return NewWords{Type: TypeNewWords, NewWords: words}
}

func NewGameState(drawingPlayer, word string) GameState {
	return GameState{Type: TypeGameState, DrawingPlayer: drawingPlayer, Word: word}
}

func NewPlayersList(players []PlayerData) PlayersList {
	return PlayersList{Type: TypePlayersList, Players: players}
}

func NewAnnouncement(message string, at time.Time, announcementType int) Announcement {
	return Announcement{
		Type:             TypeAnnouncement,
		Message:          message,
		Timestamp:        at.UnixMilli(),
		AnnouncementType: announcementType,
	}
}

func NewChosenWord(word, roomName string) ChosenWord {
	return ChosenWord{Type: TypeChosenWord, ChosenWord: word, RoomName: roomName}
}

func NewPing() Ping {
	return Ping{Type: TypePing}
}

func NewRoundDrawInfo(frames []string) RoundDrawInfo {
	data := make([]string, len(frames))
	copy(data, frames)
	return RoundDrawInfo{Type: TypeCurRoundDrawInfo, Data: data}
}

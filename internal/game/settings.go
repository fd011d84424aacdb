package game

import "time"

const (
	MinRoomSize = 2

	wordCandidates = 3

	penaltyNobodyGuessedIt = 50
	guessScoreBase         = 50
	guessScoreMultiplier   = 50
	drawerScorePool        = 50
)

// Settings holds the timing knobs shared by every room of a registry.
type Settings struct {
	WaitingForStart time.Duration
	NewRound        time.Duration
	GameRunning     time.Duration
	ShowWord        time.Duration

	// TickInterval is the period of PhaseChange broadcasts.
	TickInterval time.Duration
	// GracePeriod is how long a disconnected player keeps their seat.
	GracePeriod  time.Duration
	PingInterval time.Duration

	// ChatRate is the sustained chat messages per second per player.
	ChatRate  float64
	ChatBurst int
}

func DefaultSettings() Settings {
	return Settings{
		WaitingForStart: 10 * time.Second,
		NewRound:        20 * time.Second,
		GameRunning:     60 * time.Second,
		ShowWord:        10 * time.Second,
		TickInterval:    time.Second,
		GracePeriod:     60 * time.Second,
		PingInterval:    3 * time.Second,
		ChatRate:        3,
		ChatBurst:       5,
	}
}

func (s Settings) phaseDuration(p Phase) time.Duration {
	switch p {
	case PhaseWaitingForStart:
		return s.WaitingForStart
	case PhaseNewRound:
		return s.NewRound
	case PhaseGameRunning:
		return s.GameRunning
	case PhaseShowWord:
		return s.ShowWord
	default:
		return 0
	}
}

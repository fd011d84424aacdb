package game

// Phase is the stage of a room's round lifecycle.
type Phase string

const (
	PhaseWaitingForPlayers Phase = "WAITING_FOR_PLAYERS"
	PhaseWaitingForStart   Phase = "WAITING_FOR_START"
	PhaseNewRound          Phase = "NEW_ROUND"
	PhaseGameRunning       Phase = "GAME_RUNNING"
	PhaseShowWord          Phase = "SHOW_WORD"
)

var phaseTransitions = map[Phase][]Phase{
	PhaseWaitingForPlayers: {PhaseWaitingForPlayers, PhaseWaitingForStart},
	PhaseWaitingForStart:   {PhaseNewRound, PhaseWaitingForPlayers},
	PhaseNewRound:          {PhaseGameRunning, PhaseWaitingForPlayers},
	PhaseGameRunning:       {PhaseShowWord, PhaseGameRunning, PhaseNewRound, PhaseWaitingForPlayers},
	PhaseShowWord:          {PhaseNewRound, PhaseWaitingForPlayers},
}

func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo reports whether target is reachable from p in one step.
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, next := range phaseTransitions[p] {
		if next == target {
			return true
		}
	}
	return false
}

// timed reports whether the phase ends on its own timer.
func (p Phase) timed() bool {
	return p != PhaseWaitingForPlayers
}

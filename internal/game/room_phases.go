package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/ThakurMayank5/skribbl-rooms/internal/protocol"
)

// applyPhase moves the room to next and runs the entry action of next.
// Callers hold the lock.
func (r *Room) applyPhase(next Phase) {
	if !r.phase.CanTransitionTo(next) {
		r.log.Warn("room.invalid_transition",
			zap.Stringer("from", r.phase),
			zap.Stringer("to", next),
		)
		return
	}
	r.log.Debug("room.phase", zap.Stringer("from", r.phase), zap.Stringer("to", next))
	r.phase = next

	switch next {
	case PhaseWaitingForPlayers:
		r.waitingForPlayers()
	case PhaseWaitingForStart:
		r.waitingForStart()
	case PhaseNewRound:
		r.newRound()
	case PhaseGameRunning:
		r.gameRunning()
	case PhaseShowWord:
		r.showWord()
	}
}

func (r *Room) waitingForPlayers() {
	r.cancelPhaseTimer()
	r.phaseEndsAt = time.Time{}
	r.resetRound()
	if r.drawingPlayer != nil {
		r.drawingPlayer.isDrawing = false
		r.drawingPlayer = nil
	}

	phase := string(PhaseWaitingForPlayers)
	r.broadcast(protocol.NewPhaseChange(&phase, r.settings.WaitingForStart, nil))
}

func (r *Room) waitingForStart() {
	r.armPhaseTimer()
}

func (r *Room) newRound() {
	r.resetRound()
	r.candidateWords = r.words.Draw(wordCandidates)
	r.nextDrawingPlayer()

	r.broadcastPlayers()
	if len(r.candidateWords) > 0 {
		r.sendTo(r.drawingPlayer, protocol.NewNewWords(r.candidateWords))
	}
	r.armPhaseTimer()
}

func (r *Room) gameRunning() {
	clear(r.winningPlayers)
	if r.word == "" {
		if len(r.candidateWords) > 0 {
			r.word = r.candidateWords[rand.IntN(len(r.candidateWords))]
		} else {
			r.word = r.words.Random()
		}
	}
	r.roundStartedAt = r.clock.Now()

	if r.drawingPlayer != nil {
		drawer := r.drawingPlayer
		r.broadcastExcept(protocol.NewGameState(drawer.username, MaskWord(r.word)), drawer.clientID)
		r.sendTo(drawer, protocol.NewGameState(drawer.username, r.word))
	}
	r.log.Info("room.drawing_started",
		zap.String("drawer", r.drawingPlayer.usernameOrEmpty()),
		zap.Duration("duration", r.settings.GameRunning),
	)
	r.armPhaseTimer()
}

func (r *Room) showWord() {
	if len(r.winningPlayers) == 0 && r.drawingPlayer != nil {
		r.drawingPlayer.score -= penaltyNobodyGuessedIt
	}
	r.broadcastPlayers()
	if r.word != "" {
		r.broadcast(protocol.NewChosenWord(r.word, r.name))
	}
	r.finishOffDrawing()
	r.armPhaseTimer()
}

// finishOffDrawing lifts the pen of a stroke that was still being drawn
// when the drawing phase ended.
func (r *Room) finishOffDrawing() {
	if r.lastDrawOp == nil || r.lastDrawOp.StrokeState != protocol.StrokeMove || len(r.roundDrawLog) == 0 {
		return
	}
	up := *r.lastDrawOp
	up.StrokeState = protocol.StrokeUp
	r.recordDrawFrame(up, "")
	r.lastDrawOp = &up
}

func (r *Room) resetRound() {
	r.word = ""
	r.candidateWords = nil
	clear(r.winningPlayers)
	r.roundDrawLog = nil
	r.lastDrawOp = nil
}

// advancePhase is the successor taken when the current phase times out.
func (r *Room) advancePhase() {
	switch r.phase {
	case PhaseWaitingForStart:
		r.applyPhase(PhaseNewRound)
	case PhaseNewRound:
		r.applyPhase(PhaseGameRunning)
	case PhaseGameRunning:
		r.applyPhase(PhaseShowWord)
	case PhaseShowWord:
		r.applyPhase(PhaseNewRound)
	default:
		r.applyPhase(PhaseWaitingForPlayers)
	}
}

// armPhaseTimer starts the countdown of the current phase. Any countdown
// already running is superseded.
func (r *Room) armPhaseTimer() {
	r.cancelPhaseTimer()
	d := r.settings.phaseDuration(r.phase)
	r.phaseEndsAt = r.clock.Now().Add(d)
	gen := r.timerGen

	if d <= 0 {
		r.activeTimer = r.clock.AfterFunc(0, func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.closed || gen != r.timerGen {
				return
			}
			r.activeTimer = nil
			r.advancePhase()
		})
		return
	}
	r.phaseTick(gen, d, true)
}

func (r *Room) cancelPhaseTimer() {
	r.timerGen++
	if r.activeTimer != nil {
		r.activeTimer.Stop()
		r.activeTimer = nil
	}
}

// phaseTick broadcasts the remaining time and schedules the next tick.
// Only the first tick of a phase carries the phase name.
func (r *Room) phaseTick(gen uint64, remaining time.Duration, first bool) {
	if remaining <= 0 {
		r.activeTimer = nil
		r.advancePhase()
		return
	}

	var phase *string
	if first {
		name := string(r.phase)
		phase = &name
	}
	r.broadcast(protocol.NewPhaseChange(phase, remaining, r.drawingPlayerName()))

	step := r.settings.TickInterval
	if step <= 0 || step > remaining {
		step = remaining
	}
	r.activeTimer = r.clock.AfterFunc(step, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed || gen != r.timerGen {
			return
		}
		r.phaseTick(gen, remaining-step, false)
	})
}

// everybodyGuessed reports whether every live player other than the
// drawer has guessed the word.
func (r *Room) everybodyGuessed() bool {
	guessers := 0
	for _, p := range r.players {
		if p == r.drawingPlayer {
			continue
		}
		guessers++
		if _, ok := r.winningPlayers[p.username]; !ok {
			return false
		}
	}
	return guessers > 0
}

func (r *Room) roundOver() {
	r.applyPhase(PhaseNewRound)
	r.broadcast(protocol.NewAnnouncement(
		"Everybody guessed it! New round is starting...",
		r.clock.Now(),
		protocol.AnnouncementEverybodyGuessed,
	))
}

func (r *Room) isGuessCorrect(p *Player, guess string) bool {
	if r.phase != PhaseGameRunning || r.word == "" || p == r.drawingPlayer {
		return false
	}
	if _, ok := r.winningPlayers[p.username]; ok {
		return false
	}
	return matchesWord(guess, r.word)
}

func (r *Room) acceptGuess(p *Player) {
	elapsed := r.clock.Now().Sub(r.roundStartedAt)
	p.score += guessScore(elapsed, r.settings.GameRunning)
	if r.drawingPlayer != nil {
		r.drawingPlayer.score += drawerScore(len(r.players))
	}
	r.winningPlayers[p.username] = struct{}{}
	r.log.Debug("room.guessed", zap.String("username", p.username), zap.Duration("elapsed", elapsed))

	r.broadcastPlayers()
	r.broadcast(protocol.NewAnnouncement(
		fmt.Sprintf("%s has guessed it!", p.username),
		r.clock.Now(),
		protocol.AnnouncementPlayerGuessed,
	))

	if r.everybodyGuessed() {
		r.roundOver()
	}
}

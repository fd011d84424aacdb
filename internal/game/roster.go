package game

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/ThakurMayank5/skribbl-rooms/internal/protocol"
)

func (r *Room) join(clientID, username string, conn Conn) {
	// same client on a fresh connection while the old one is still seated
	if _, p := r.findPlayer(clientID); p != nil {
		if p.conn != nil && p.conn != conn {
			p.conn.Close()
		}
		p.conn = conn
		p.isOnline = true
		r.startHeartbeat(p)
		r.log.Info("room.reattach", zap.String("client", clientID), zap.String("username", p.username))
		r.welcome(p)
		return
	}

	var player *Player
	index := len(r.players)
	if pending, ok := r.pendingRemovals[clientID]; ok {
		pending.timer.Stop()
		delete(r.pendingRemovals, clientID)

		player = pending.player
		player.conn = conn
		player.isOnline = true
		player.isDrawing = player == r.drawingPlayer
		index = clampIndex(pending.index, len(r.players))
		r.log.Info("room.rejoin", zap.String("client", clientID), zap.String("username", player.username), zap.Int("index", index))
	} else {
		player = newPlayer(clientID, username, conn, r.settings)
		r.dir.bindClient(clientID, r)
		r.log.Info("room.join", zap.String("client", clientID), zap.String("username", username))
	}

	r.insertPlayer(index, player)
	r.startHeartbeat(player)
	r.applyRosterRules()
	r.welcome(player)
}

func (r *Room) leave(clientID string, immediate bool) {
	index, player := r.findPlayer(clientID)
	if player == nil {
		if immediate {
			r.dropPending(clientID)
		}
		return
	}

	r.stopHeartbeat(player)
	r.removePlayerAt(index)

	if immediate {
		player.isOnline = false
		r.dir.unbindClient(clientID, r)
		r.log.Info("room.leave", zap.String("client", clientID), zap.String("username", player.username))
	} else {
		entry := &pendingRemoval{player: player, index: index}
		entry.timer = r.clock.AfterFunc(r.settings.GracePeriod, func() {
			r.expirePending(clientID, entry)
		})
		r.pendingRemovals[clientID] = entry
		r.log.Info("room.disconnect", zap.String("client", clientID), zap.String("username", player.username),
			zap.Duration("grace", r.settings.GracePeriod))
	}

	r.afterRemoval(player)
}

// afterRemoval runs once a player has left the live roster.
func (r *Room) afterRemoval(player *Player) {
	r.broadcast(protocol.NewAnnouncement(
		fmt.Sprintf("%s left the party :(", player.username),
		r.clock.Now(),
		protocol.AnnouncementPlayerLeft,
	))
	r.broadcastPlayers()

	switch len(r.players) {
	case 0:
		r.teardown()
	case 1:
		r.applyPhase(PhaseWaitingForPlayers)
	default:
		if r.phase == PhaseGameRunning && r.everybodyGuessed() {
			r.roundOver()
		}
	}
}

func (r *Room) expirePending(clientID string, entry *pendingRemoval) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.pendingRemovals[clientID] != entry {
		return
	}
	delete(r.pendingRemovals, clientID)
	if index, p := r.findPlayer(clientID); p == entry.player {
		r.removePlayerAt(index)
	}
	r.dir.unbindClient(clientID, r)
	r.log.Info("room.grace_expired", zap.String("client", clientID), zap.String("username", entry.player.username))
}

func (r *Room) dropPending(clientID string) {
	entry, ok := r.pendingRemovals[clientID]
	if !ok {
		return
	}
	entry.timer.Stop()
	delete(r.pendingRemovals, clientID)
	r.dir.unbindClient(clientID, r)
}

// applyRosterRules moves the phase after the roster grew.
func (r *Room) applyRosterRules() {
	switch n := len(r.players); {
	case n == 1:
		r.applyPhase(PhaseWaitingForPlayers)
	case n == 2 && r.phase == PhaseWaitingForPlayers:
		r.shufflePlayers()
		r.applyPhase(PhaseWaitingForStart)
	}

	if r.phase == PhaseWaitingForStart && len(r.players) == r.maxPlayers {
		r.shufflePlayers()
		r.applyPhase(PhaseNewRound)
	}
}

// welcome brings a (re)joined player up to date and tells the room.
func (r *Room) welcome(player *Player) {
	r.broadcast(protocol.NewAnnouncement(
		fmt.Sprintf("%s joined the party!", player.username),
		r.clock.Now(),
		protocol.AnnouncementPlayerJoined,
	))

	phase := string(r.phase)
	r.sendTo(player, protocol.NewPhaseChange(&phase, r.remaining(), r.drawingPlayerName()))

	if r.word != "" && r.drawingPlayer != nil {
		word := MaskWord(r.word)
		if player.isDrawing || r.phase == PhaseShowWord {
			word = r.word
		}
		r.sendTo(player, protocol.NewGameState(r.drawingPlayer.username, word))
	}
	if r.phase == PhaseNewRound && player == r.drawingPlayer && len(r.candidateWords) > 0 {
		r.sendTo(player, protocol.NewNewWords(r.candidateWords))
	}
	if r.phase == PhaseGameRunning || r.phase == PhaseShowWord {
		r.sendTo(player, protocol.NewRoundDrawInfo(r.roundDrawLog))
	}

	r.broadcastPlayers()
}

// insertPlayer keeps the rotation cursor on the same upcoming drawer.
func (r *Room) insertPlayer(index int, p *Player) {
	var upcoming *Player
	if n := len(r.players); n > 0 && r.drawingPlayerIndex >= 0 {
		upcoming = r.players[r.drawingPlayerIndex%n]
	}
	r.players = slices.Insert(r.players, index, p)
	if upcoming != nil {
		r.drawingPlayerIndex = slices.Index(r.players, upcoming)
	}
}

func (r *Room) removePlayerAt(index int) {
	r.players = slices.Delete(r.players, index, index+1)
	if index < r.drawingPlayerIndex {
		r.drawingPlayerIndex--
	}
}

func (r *Room) shufflePlayers() {
	rand.Shuffle(len(r.players), func(i, j int) {
		r.players[i], r.players[j] = r.players[j], r.players[i]
	})
}

// nextDrawingPlayer hands the turn to the player under the rotation
// cursor and advances it, wrapping past the end of the roster.
func (r *Room) nextDrawingPlayer() {
	if r.drawingPlayer != nil {
		r.drawingPlayer.isDrawing = false
	}
	if len(r.players) == 0 {
		r.drawingPlayer = nil
		return
	}
	if r.drawingPlayerIndex < 0 || r.drawingPlayerIndex >= len(r.players) {
		r.drawingPlayerIndex = 0
	}
	r.drawingPlayer = r.players[r.drawingPlayerIndex]
	r.drawingPlayer.isDrawing = true
	r.drawingPlayerIndex = (r.drawingPlayerIndex + 1) % len(r.players)
}

func clampIndex(index, size int) int {
	if size == 0 || index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}

package game

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ThakurMayank5/skribbl-rooms/internal/protocol"
	"github.com/ThakurMayank5/skribbl-rooms/internal/words"
)

// directory is the part of the registry a room reports roster changes to.
type directory interface {
	bindClient(clientID string, r *Room)
	unbindClient(clientID string, r *Room)
	removeRoom(r *Room)
}

type pendingRemoval struct {
	player *Player
	index  int
	timer  Timer
}

// RoomInfo is a point-in-time description of a room for listings.
type RoomInfo struct {
	Name        string
	MaxPlayers  int
	PlayerCount int
}

// Room is one game session. Every field below mu is guarded by it; phase
// actions, roster changes, guesses and timer callbacks all run under the
// lock and never interleave.
type Room struct {
	name       string
	maxPlayers int
	settings   Settings
	clock      Clock
	words      words.Bank
	dir        directory
	log        *zap.Logger

	mu sync.Mutex

	phase              Phase
	phaseEndsAt        time.Time
	players            []*Player
	drawingPlayerIndex int
	drawingPlayer      *Player
	word               string
	candidateWords     []string
	winningPlayers     map[string]struct{}
	roundStartedAt     time.Time
	pendingRemovals    map[string]*pendingRemoval
	roundDrawLog       []string
	lastDrawOp         *protocol.DrawData

	activeTimer Timer
	timerGen    uint64
	closed      bool
}

func newRoom(name string, maxPlayers int, settings Settings, clock Clock, bank words.Bank, dir directory) *Room {
	return &Room{
		name:            name,
		maxPlayers:      maxPlayers,
		settings:        settings,
		clock:           clock,
		words:           bank,
		dir:             dir,
		log:             zap.L().With(zap.String("room", name)),
		phase:           PhaseWaitingForPlayers,
		players:         make([]*Player, 0, maxPlayers),
		winningPlayers:  make(map[string]struct{}),
		pendingRemovals: make(map[string]*pendingRemoval),
	}
}

func (r *Room) Name() string { return r.name }

func (r *Room) MaxPlayers() int { return r.maxPlayers }

func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Room) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomInfo{Name: r.name, MaxPlayers: r.maxPlayers, PlayerCount: len(r.players)}
}

// Players returns the live roster ranked by score.
func (r *Room) Players() []protocol.PlayerData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rankPlayers(r.players)
}

// CanJoin applies the join policy: a known client may always come back,
// otherwise the username must be free and a seat must be available.
// Seats held for disconnected players count as taken.
func (r *Room) CanJoin(clientID, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.canJoin(clientID, username)
}

// Join seats a client after checking the join policy. A client coming back
// within the grace period gets its old player back, score and drawing role
// included.
func (r *Room) Join(clientID, username string, conn Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.canJoin(clientID, username); err != nil {
		return err
	}
	r.join(clientID, username, conn)
	return nil
}

func (r *Room) canJoin(clientID, username string) error {
	if r.closed {
		return ErrRoomNotFound
	}
	if clientID != "" {
		if _, p := r.findPlayer(clientID); p != nil {
			return nil
		}
		if _, ok := r.pendingRemovals[clientID]; ok {
			return nil
		}
	}
	for _, p := range r.players {
		if p.username == username {
			return ErrUsernameTaken
		}
	}
	for _, pending := range r.pendingRemovals {
		if pending.player.username == username {
			return ErrUsernameTaken
		}
	}
	if len(r.players)+len(r.pendingRemovals) >= r.maxPlayers {
		return ErrRoomFull
	}
	return nil
}

// Leave removes a client. An immediate leave drops the player for good;
// otherwise the seat is held for the grace period.
func (r *Room) Leave(clientID string, immediate bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.leave(clientID, immediate)
}

// ConnectionClosed reports a transport disconnect. It is ignored when the
// player has already moved on to a newer connection.
func (r *Room) ConnectionClosed(clientID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if _, p := r.findPlayer(clientID); p == nil || p.conn != conn {
		return
	}
	r.leave(clientID, false)
}

// HandleChat evaluates a chat line as a guess and broadcasts it as chat
// when it is not one.
func (r *Room) HandleChat(clientID string, msg protocol.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	_, player := r.findPlayer(clientID)
	if player == nil {
		return
	}
	if !player.chat.AllowN(r.clock.Now(), 1) {
		r.log.Debug("room.chat_rate_limited", zap.String("client", clientID))
		return
	}

	if r.isGuessCorrect(player, msg.Message) {
		r.acceptGuess(player)
		return
	}
	// the drawer and players who already guessed must not leak the word
	if r.phase == PhaseGameRunning && r.word != "" && matchesWord(msg.Message, r.word) {
		return
	}

	msg.Type = protocol.TypeChatMessage
	msg.From = player.username
	msg.RoomName = r.name
	if msg.Timestamp == 0 {
		msg.Timestamp = r.clock.Now().UnixMilli()
	}
	r.broadcast(msg)
}

// HandleDrawData records a stroke segment from the drawer and forwards it
// to everyone else.
func (r *Room) HandleDrawData(clientID string, data protocol.DrawData) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || !r.isActiveDrawer(clientID) {
		return
	}
	data.Type = protocol.TypeDrawData
	data.RoomName = r.name
	r.recordDrawFrame(data, clientID)
	r.lastDrawOp = &data
}

// HandleDrawAction records a canvas action such as undo from the drawer.
func (r *Room) HandleDrawAction(clientID string, action protocol.DrawAction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || !r.isActiveDrawer(clientID) {
		return
	}
	action.Type = protocol.TypeDrawAction
	r.recordDrawFrame(action, clientID)
}

// ChooseWord accepts the drawer's pick among the round's candidates and
// starts (or restarts) the drawing phase with it.
func (r *Room) ChooseWord(clientID, word string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	_, player := r.findPlayer(clientID)
	if player == nil || player != r.drawingPlayer {
		return
	}
	switch r.phase {
	case PhaseNewRound:
	case PhaseGameRunning:
		if len(r.winningPlayers) > 0 {
			return
		}
	default:
		return
	}
	if !slices.Contains(r.candidateWords, word) {
		r.log.Debug("room.invalid_word_choice", zap.String("client", clientID))
		return
	}

	r.word = word
	r.candidateWords = nil
	r.applyPhase(PhaseGameRunning)
}

// ReceivePong records a heartbeat reply.
func (r *Room) ReceivePong(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if _, p := r.findPlayer(clientID); p != nil {
		p.lastPongAt = r.clock.Now()
		p.isOnline = true
	}
}

// Close tears the room down regardless of its roster.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.closed {
		r.teardown()
	}
}

func (r *Room) findPlayer(clientID string) (int, *Player) {
	for i, p := range r.players {
		if p.clientID == clientID {
			return i, p
		}
	}
	return -1, nil
}

func (r *Room) isActiveDrawer(clientID string) bool {
	if r.phase != PhaseGameRunning || r.drawingPlayer == nil {
		return false
	}
	_, p := r.findPlayer(clientID)
	return p != nil && p == r.drawingPlayer
}

func (r *Room) recordDrawFrame(frame any, from string) {
	data, err := protocol.Encode(frame)
	if err != nil {
		r.log.Error("room.encode_failed", zap.Error(err))
		return
	}
	r.roundDrawLog = append(r.roundDrawLog, string(data))
	fanOut(r.log, r.players, data, from)
}

func (r *Room) drawingPlayerName() *string {
	if r.drawingPlayer == nil {
		return nil
	}
	name := r.drawingPlayer.username
	return &name
}

// remaining is the time left in the current phase. Untimed phases report
// the nominal start delay.
func (r *Room) remaining() time.Duration {
	if !r.phase.timed() || r.phaseEndsAt.IsZero() {
		return r.settings.WaitingForStart
	}
	return max(0, r.phaseEndsAt.Sub(r.clock.Now()))
}

// teardown cancels every timer the room owns and unregisters it.
func (r *Room) teardown() {
	r.closed = true
	r.cancelPhaseTimer()
	for clientID, pending := range r.pendingRemovals {
		pending.timer.Stop()
		r.dir.unbindClient(clientID, r)
	}
	clear(r.pendingRemovals)
	for _, p := range r.players {
		r.stopHeartbeat(p)
		r.dir.unbindClient(p.clientID, r)
	}
	r.dir.removeRoom(r)
	r.log.Info("room.closed")
}

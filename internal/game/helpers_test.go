package game

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ThakurMayank5/skribbl-rooms/internal/protocol"
)

// fakeClock fires timers only when a test advances it.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*fakeTimer
}

type fakeTimer struct {
	clock *fakeClock
	when  time.Time
	seq   uint64
	f     func()
	done  bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{clock: c, when: c.now.Add(max(d, 0)), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// Advance moves time forward by d, firing every due timer in order. The
// clock lock is released while a callback runs so callbacks can schedule.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.popDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.when
		c.mu.Unlock()
		next.f()
	}
}

func (c *fakeClock) popDue(target time.Time) *fakeTimer {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	c.timers = live
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].when.Equal(c.timers[j].when) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].when.Before(c.timers[j].when)
	})
	if len(c.timers) == 0 || c.timers[0].when.After(target) {
		return nil
	}
	t := c.timers[0]
	t.done = true
	c.timers = c.timers[1:]
	return t
}

var errFakeConnClosed = errors.New("fake connection closed")

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func newFakeConn() *fakeConn { return &fakeConn{} }

func (c *fakeConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errFakeConnClosed
	}
	c.frames = append(c.frames, append([]byte(nil), data...))
	return nil
}

func (c *fakeConn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = nil
}

func (c *fakeConn) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.frames))
	for _, f := range c.frames {
		var env protocol.Envelope
		if err := json.Unmarshal(f, &env); err == nil {
			out = append(out, env.Type)
		}
	}
	return out
}

// messagesOf decodes every frame of the given type received by c.
func messagesOf[T any](t *testing.T, c *fakeConn, typ string) []T {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []T
	for _, f := range c.frames {
		var env protocol.Envelope
		require.NoError(t, json.Unmarshal(f, &env))
		if env.Type != typ {
			continue
		}
		var msg T
		require.NoError(t, json.Unmarshal(f, &msg))
		out = append(out, msg)
	}
	return out
}

func lastOf[T any](t *testing.T, c *fakeConn, typ string) T {
	t.Helper()
	msgs := messagesOf[T](t, c, typ)
	require.NotEmpty(t, msgs, "no %s frame received", typ)
	return msgs[len(msgs)-1]
}

type MockBank struct {
	mock.Mock
}

func (m *MockBank) Draw(count int) []string {
	args := m.Called(count)
	return args.Get(0).([]string)
}

func (m *MockBank) Random() string {
	return m.Called().String(0)
}

var testCandidates = []string{"apple", "banana", "ice cream"}

func testSettings() Settings {
	s := DefaultSettings()
	s.PingInterval = time.Hour
	s.ChatRate = 0
	return s
}

type fixture struct {
	reg   *Registry
	clock *fakeClock
	bank  *MockBank
	logs  *observer.ObservedLogs
	conns map[string]*fakeConn
}

func newFixture(t *testing.T, tweak ...func(*Settings)) *fixture {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)

	settings := testSettings()
	for _, fn := range tweak {
		fn(&settings)
	}

	bank := &MockBank{}
	bank.On("Draw", wordCandidates).Return(testCandidates).Maybe()
	bank.On("Random").Return("kiwi").Maybe()

	clock := newFakeClock()
	return &fixture{
		reg:   NewRegistry(settings, bank, 8, WithClock(clock)),
		clock: clock,
		bank:  bank,
		logs:  logs,
		conns: make(map[string]*fakeConn),
	}
}

func (f *fixture) room(t *testing.T, name string, maxPlayers int) *Room {
	t.Helper()
	room, err := f.reg.Create(name, maxPlayers)
	require.NoError(t, err)
	return room
}

// join seats username with a client id equal to the username.
func (f *fixture) join(t *testing.T, room *Room, username string) *fakeConn {
	t.Helper()
	conn := newFakeConn()
	require.NoError(t, room.CanJoin(username, username))
	require.NoError(t, room.Join(username, username, conn))
	f.conns[username] = conn
	return conn
}

func (f *fixture) resetFrames() {
	for _, c := range f.conns {
		c.Reset()
	}
}

func (f *fixture) transitions() [][2]Phase {
	var out [][2]Phase
	for _, entry := range f.logs.FilterMessage("room.phase").All() {
		fields := entry.ContextMap()
		out = append(out, [2]Phase{Phase(fields["from"].(string)), Phase(fields["to"].(string))})
	}
	return out
}

func drawerOf(r *Room) *Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drawingPlayer
}

func guessersOf(r *Room) []*Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Player
	for _, p := range r.players {
		if p != r.drawingPlayer {
			out = append(out, p)
		}
	}
	return out
}

func currentWord(r *Room) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.word
}

func scoreOf(r *Room, username string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.username == username {
			return p.score
		}
	}
	return 0
}

func usernames(r *Room) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p.username)
	}
	return out
}

func chat(username, message string) protocol.ChatMessage {
	return protocol.ChatMessage{
		Type:     protocol.TypeChatMessage,
		From:     username,
		RoomName: "room",
		Message:  message,
	}
}

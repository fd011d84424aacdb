package game

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ThakurMayank5/skribbl-rooms/internal/words"
)

// Registry owns every room of the process and the client to room index.
// Rooms lock before the registry, never the other way round.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	clients map[string]*Room

	settings    Settings
	words       words.Bank
	clock       Clock
	maxRoomSize int
}

type Option func(*Registry)

// WithClock replaces the clock driving every room timer.
func WithClock(c Clock) Option {
	return func(reg *Registry) {
		reg.clock = c
	}
}

func NewRegistry(settings Settings, bank words.Bank, maxRoomSize int, opts ...Option) *Registry {
	reg := &Registry{
		rooms:       make(map[string]*Room),
		clients:     make(map[string]*Room),
		settings:    settings,
		words:       bank,
		clock:       SystemClock(),
		maxRoomSize: maxRoomSize,
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

func (reg *Registry) MaxRoomSize() int { return reg.maxRoomSize }

// Create registers a new empty room.
func (reg *Registry) Create(name string, maxPlayers int) (*Room, error) {
	if maxPlayers < MinRoomSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrRoomTooSmall, maxPlayers, MinRoomSize)
	}
	if maxPlayers > reg.maxRoomSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrRoomTooLarge, maxPlayers, reg.maxRoomSize)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.rooms[name]; ok {
		return nil, ErrRoomExists
	}
	room := newRoom(name, maxPlayers, reg.settings, reg.clock, reg.words, reg)
	reg.rooms[name] = room
	zap.L().Info("registry.room_created", zap.String("room", name), zap.Int("max_players", maxPlayers))
	return room, nil
}

func (reg *Registry) Get(name string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[name]
	return room, ok
}

// RoomOf returns the room a client is currently seated in.
func (reg *Registry) RoomOf(clientID string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.clients[clientID]
	return room, ok
}

// List returns the rooms whose name contains query, case-insensitively,
// sorted by name. An empty query matches every room.
func (reg *Registry) List(query string) []RoomInfo {
	query = strings.ToLower(query)

	reg.mu.RLock()
	matched := make([]*Room, 0, len(reg.rooms))
	for name, room := range reg.rooms {
		if strings.Contains(strings.ToLower(name), query) {
			matched = append(matched, room)
		}
	}
	reg.mu.RUnlock()

	infos := make([]RoomInfo, 0, len(matched))
	for _, room := range matched {
		infos = append(infos, room.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// CloseAll tears down every room.
func (reg *Registry) CloseAll() {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.RUnlock()

	for _, room := range rooms {
		room.Close()
	}
}

func (reg *Registry) bindClient(clientID string, r *Room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.clients[clientID] = r
}

func (reg *Registry) unbindClient(clientID string, r *Room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.clients[clientID] == r {
		delete(reg.clients, clientID)
	}
}

func (reg *Registry) removeRoom(r *Room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.rooms[r.name] == r {
		delete(reg.rooms, r.name)
		zap.L().Info("registry.room_removed", zap.String("room", r.name))
	}
}

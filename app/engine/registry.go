package engine

import "sync"

// Registry is the shared id-keyed room index. It is the only mutable
// state shared across rooms, so it carries the only lock; individual
// rooms are serialized by their transport.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*GameRoom
	cfg   Config
	dice  DiceRoller
}

func NewRegistry(cfg Config, dice DiceRoller) *Registry {
	return &Registry{
		rooms: make(map[string]*GameRoom),
		cfg:   cfg,
		dice:  dice,
	}
}

func (reg *Registry) Create(id string) (*GameRoom, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.rooms[id]; ok {
		return nil, ErrRoomExists
	}
	room := NewRoom(id, reg.cfg, reg.dice)
	reg.rooms[id] = room
	return room, nil
}

func (reg *Registry) Get(id string) (*GameRoom, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (reg *Registry) Delete(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, id)
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

package core

import (
	"slices"
	"sync"

	"github.com/dkeye/Sidebar/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomStore owns the ordered room list of one application session and the
// exclusive-selection rule.
//
// Mutations hold mu until every notification they trigger has been
// delivered, and the store's readers take it shared, so a reader never sees a
// selection half applied. Subscribers run while mu is held: they must use the
// values they are handed and the rooms' own cells, never the store's methods.
type RoomStore struct {
	mu    sync.RWMutex
	rooms *Cell[[]*Room]
}

func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: NewCell([]*Room{})}
}

// AddRoom appends an inactive room. Empty and duplicate names are accepted.
func (s *RoomStore) AddRoom(name domain.RoomName) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := newRoom(name)
	cur := s.rooms.Get()
	next := make([]*Room, len(cur), len(cur)+1)
	copy(next, cur)
	s.rooms.Set(append(next, room))

	log.Debug().Str("module", "core.store").Str("room_id", string(room.id)).Str("name", string(name)).Int("count", len(next)+1).Msg("room added")
	return room
}

// SelectRoom activates every room whose name equals target and deactivates
// all others. Every room's active cell is rewritten, so subscribers are
// notified even when the flag does not change.
//
// Names are not unique: a duplicated name activates all of its rooms, and a
// name that matches nothing leaves every room inactive. SelectRoomByID is the
// variant that keeps at most one room active.
func (s *RoomStore) SelectRoom(target domain.RoomName) {
	n := s.selectWhere(func(r *Room) bool { return r.name.Get() == target })
	log.Debug().Str("module", "core.store").Str("name", string(target)).Int("active", n).Msg("select by name")
}

// SelectRoomByID is SelectRoom keyed on the room's opaque ID. It reports
// whether the ID was present; an unknown ID deselects every room.
func (s *RoomStore) SelectRoomByID(id domain.RoomID) bool {
	n := s.selectWhere(func(r *Room) bool { return r.id == id })
	log.Debug().Str("module", "core.store").Str("room_id", string(id)).Int("active", n).Msg("select by id")
	return n > 0
}

func (s *RoomStore) ClearSelection() {
	s.selectWhere(func(*Room) bool { return false })
}

func (s *RoomStore) selectWhere(match func(*Room) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := 0
	for _, r := range s.rooms.Get() {
		on := match(r)
		r.active.Set(on)
		if on {
			active++
		}
	}
	return active
}

// Rooms is the observable room sequence. Every read and notification gets its
// own copy of the slice. Reads through it do not take the store lock.
func (s *RoomStore) Rooms() Observable[[]*Room] {
	return mapped[[]*Room]{cell: s.rooms, fn: func(v []*Room) []*Room { return slices.Clone(v) }}
}

func (s *RoomStore) List() []*Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rooms.Get())
}

func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms.Get())
}

func (s *RoomStore) Get(id domain.RoomID) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rooms.Get() {
		if r.id == id {
			return r, true
		}
	}
	return nil, false
}

// ActiveRoom returns the first active room in list order.
func (s *RoomStore) ActiveRoom() (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rooms.Get() {
		if r.active.Get() {
			return r, true
		}
	}
	return nil, false
}

func (s *RoomStore) Snapshot() []domain.RoomInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := s.rooms.Get()
	out := make([]domain.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Info())
	}
	return out
}

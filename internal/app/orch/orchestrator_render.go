package orch

import (
	"sync"

	"github.com/dkeye/Sidebar/internal/core"
	"github.com/dkeye/Sidebar/internal/domain"
	"github.com/rs/zerolog/log"
)

// storeWatcher renders one session's store onto its connections. Room field
// notifications are memoised per room ID so that the full rewrite done by a
// selection only produces frames for rooms whose state actually changed.
type storeWatcher struct {
	o   *Orchestrator
	sid core.SessionID

	mu   sync.Mutex
	last map[domain.RoomID]domain.RoomInfo
}

func (o *Orchestrator) watch(sid core.SessionID, store *core.RoomStore) {
	w := &storeWatcher{
		o:    o,
		sid:  sid,
		last: make(map[domain.RoomID]domain.RoomInfo),
	}
	store.Rooms().Subscribe(w.onRooms)
	// Seeded rooms, and anything added before the subscription above.
	w.track(store.List())
	log.Debug().Str("module", "orch.render").Str("sid", string(sid)).Msg("watching store")
}

func (w *storeWatcher) onRooms(rooms []*core.Room) {
	w.track(rooms)
	infos := make([]domain.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		infos = append(infos, r.Info())
	}
	w.o.Publish(w.sid, RoomsEvent{Type: EventRooms, Rooms: infos})
}

func (w *storeWatcher) track(rooms []*core.Room) {
	for _, r := range rooms {
		r := r
		w.mu.Lock()
		if _, ok := w.last[r.ID()]; ok {
			w.mu.Unlock()
			continue
		}
		w.last[r.ID()] = r.Info()
		w.mu.Unlock()

		r.Name().Subscribe(func(domain.RoomName) { w.onField(r) })
		r.Active().Subscribe(func(bool) { w.onField(r) })
	}
}

func (w *storeWatcher) onField(r *core.Room) {
	info := r.Info()
	w.mu.Lock()
	if prev, ok := w.last[info.ID]; ok && prev == info {
		w.mu.Unlock()
		return
	}
	w.last[info.ID] = info
	w.mu.Unlock()

	w.o.Publish(w.sid, RoomEvent{Type: EventRoomUpdated, Room: info})
}

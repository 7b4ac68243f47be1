package app

import (
	"context"
	"sync"

	"github.com/dkeye/Sidebar/internal/core"
	"github.com/dkeye/Sidebar/internal/domain"
	"github.com/rs/zerolog/log"
)

type connEntry struct {
	Conn   core.SignalConnection
	Cancel context.CancelFunc
}

type sessionEntry struct {
	Store *core.RoomStore
	Conns map[core.ConnID]*connEntry
}

// Registry maps each application session to its RoomStore and to the signal
// connections currently rendering that store. Stores are never evicted.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
	seed     []domain.RoomName
	onCreate func(core.SessionID, *core.RoomStore)
}

// NewRegistry returns a registry that seeds every new store with the given
// room names, in order.
func NewRegistry(seed ...domain.RoomName) *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
		seed:     seed,
	}
}

// OnStoreCreated sets fn to run on every new store, after seeding and before
// the store is visible to any caller. fn runs under the registry lock and must
// not call back into the registry.
func (r *Registry) OnStoreCreated(fn func(core.SessionID, *core.RoomStore)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onCreate = fn
}

func (r *Registry) entry(sid core.SessionID) (*sessionEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	return e, ok
}

// GetOrCreateStore reports created=true to exactly one caller per session.
func (r *Registry) GetOrCreateStore(sid core.SessionID) (store *core.RoomStore, created bool) {
	if e, ok := r.entry(sid); ok {
		return e.Store, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Store, false
	}
	store = core.NewRoomStore()
	for _, name := range r.seed {
		store.AddRoom(name)
	}
	if r.onCreate != nil {
		r.onCreate(sid, store)
	}
	r.sessions[sid] = &sessionEntry{
		Store: store,
		Conns: make(map[core.ConnID]*connEntry),
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Int("seeded", len(r.seed)).Msg("created room store")
	return store, true
}

func (r *Registry) BindSignal(
	sid core.SessionID,
	id core.ConnID,
	conn core.SignalConnection,
	cancel context.CancelFunc,
) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return false
	}
	e.Conns[id] = &connEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("conn", string(id)).Int("conns", len(e.Conns)).Msg("bound signal")
	return true
}

func (r *Registry) Unbind(sid core.SessionID, id core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sid]; ok {
		delete(e.Conns, id)
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("conn", string(id)).Msg("unbind signal")
}

type ConnSnap struct {
	ID   core.ConnID
	Conn core.SignalConnection
}

func (r *Registry) Conns(sid core.SessionID) []ConnSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok {
		return nil
	}
	out := make([]ConnSnap, 0, len(e.Conns))
	for id, c := range e.Conns {
		out = append(out, ConnSnap{ID: id, Conn: c.Conn})
	}
	return out
}

func (r *Registry) Cancel(sid core.SessionID, id core.ConnID) bool {
	r.mu.RLock()
	var c *connEntry
	if e, ok := r.sessions[sid]; ok {
		c = e.Conns[id]
	}
	r.mu.RUnlock()
	if c == nil {
		return false
	}
	if c.Cancel != nil {
		c.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("conn", string(id)).Msg("canceled signal")
	return true
}

func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

package orch

import (
	"encoding/json"

	"github.com/dkeye/Sidebar/internal/app"
	"github.com/dkeye/Sidebar/internal/core"
	"github.com/dkeye/Sidebar/internal/domain"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	Registry *app.Registry
	Policy   app.Policy
	// Limiter bounds room creation per session; nil means unlimited.
	Limiter *RoomRateLimiter
	// MaxNameLen bounds user supplied room names in runes; 0 disables it.
	MaxNameLen int
}

// New wires an orchestrator to reg. Every store reg creates from now on is
// rendered to its session's connections before anyone else can mutate it.
func New(reg *app.Registry, policy app.Policy, maxNameLen int) *Orchestrator {
	o := &Orchestrator{
		Registry:   reg,
		Policy:     policy,
		MaxNameLen: maxNameLen,
	}
	reg.OnStoreCreated(o.watch)
	return o
}

func (o *Orchestrator) Store(sid core.SessionID) *core.RoomStore {
	store, _ := o.Registry.GetOrCreateStore(sid)
	return store
}

func (o *Orchestrator) Rooms(sid core.SessionID) []domain.RoomInfo {
	return o.Store(sid).Snapshot()
}

func (o *Orchestrator) ActiveRoom(sid core.SessionID) (domain.RoomInfo, bool) {
	room, ok := o.Store(sid).ActiveRoom()
	if !ok {
		return domain.RoomInfo{}, false
	}
	return room.Info(), true
}

// Publish encodes v once and offers it to every connection of the session.
func (o *Orchestrator) Publish(sid core.SessionID, v any) {
	frame, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("publish marshal")
		return
	}
	sent := 0
	for _, snap := range o.Registry.Conns(sid) {
		if err := snap.Conn.TrySend(frame); err != nil {
			o.onSendFailed(sid, snap, err)
			continue
		}
		sent++
	}
	log.Debug().Str("module", "orch").Str("sid", string(sid)).Int("sent_to", sent).Msg("publish")
}

func (o *Orchestrator) onSendFailed(sid core.SessionID, snap app.ConnSnap, err error) {
	log.Warn().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("conn", string(snap.ID)).Msg("send failed")
	if o.Policy == nil {
		return
	}
	switch o.Policy.OnBackPressure(sid, snap.Conn) {
	case app.KickConn:
		o.Registry.Cancel(sid, snap.ID)
	case app.DropFrame, app.NoAction:
	}
}

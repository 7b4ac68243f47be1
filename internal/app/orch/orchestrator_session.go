package orch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkeye/Sidebar/internal/core"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Connect binds conn to the session and sends it the current room list.
func (o *Orchestrator) Connect(sid core.SessionID, conn core.SignalConnection, cancel context.CancelFunc) (core.ConnID, error) {
	store := o.Store(sid)
	id := core.ConnID(uuid.NewString())
	if !o.Registry.BindSignal(sid, id, conn, cancel) {
		return "", fmt.Errorf("bind %s: no store for session", sid)
	}

	frame, err := json.Marshal(RoomsEvent{Type: EventRooms, Rooms: store.Snapshot()})
	if err != nil {
		return id, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := conn.TrySend(frame); err != nil {
		return id, fmt.Errorf("send snapshot: %w", err)
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("conn", string(id)).Msg("connected")
	return id, nil
}

func (o *Orchestrator) OnDisconnect(sid core.SessionID, id core.ConnID) {
	o.Registry.Cancel(sid, id)
	o.Registry.Unbind(sid, id)
}

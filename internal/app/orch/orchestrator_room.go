package orch

import (
	"errors"
	"fmt"

	"github.com/dkeye/Sidebar/internal/core"
	"github.com/dkeye/Sidebar/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrRateLimited = errors.New("too many rooms created, slow down")

// CreateRoom trims raw, cuts it to MaxNameLen runes and appends the room.
// Empty and duplicate names are accepted.
func (o *Orchestrator) CreateRoom(sid core.SessionID, raw string) (domain.RoomInfo, error) {
	if o.Limiter != nil && !o.Limiter.Allow(sid) {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Msg("create room rate limited")
		return domain.RoomInfo{}, ErrRateLimited
	}
	name := domain.NormalizeRoomName(raw, o.MaxNameLen)
	room := o.Store(sid).AddRoom(name)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room_id", string(room.ID())).Str("name", string(name)).Msg("room created")
	return room.Info(), nil
}

// SelectRoom activates the room with the given ID. An unknown ID is rejected
// without touching the current selection.
func (o *Orchestrator) SelectRoom(sid core.SessionID, id domain.RoomID) error {
	store := o.Store(sid)
	if _, ok := store.Get(id); !ok {
		return fmt.Errorf("select %q: %w", id, domain.ErrRoomNotFound)
	}
	store.SelectRoomByID(id)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room_id", string(id)).Msg("room selected")
	return nil
}

// SelectRoomByName keeps the name-keyed behaviour: every room with that name
// becomes active, and an unknown name deselects everything.
func (o *Orchestrator) SelectRoomByName(sid core.SessionID, name string) {
	o.Store(sid).SelectRoom(domain.RoomName(name))
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("name", name).Msg("room selected by name")
}

func (o *Orchestrator) ClearSelection(sid core.SessionID) {
	o.Store(sid).ClearSelection()
	log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("selection cleared")
}

// Messages and SendMessage are the message pane's entry points. The pane is
// not built yet; both only validate the room.
func (o *Orchestrator) Messages(sid core.SessionID, id domain.RoomID) error {
	if _, ok := o.Store(sid).Get(id); !ok {
		return fmt.Errorf("messages %q: %w", id, domain.ErrRoomNotFound)
	}
	return fmt.Errorf("messages: %w", domain.ErrNotImplemented)
}

func (o *Orchestrator) SendMessage(sid core.SessionID, id domain.RoomID, _ string) error {
	if _, ok := o.Store(sid).Get(id); !ok {
		return fmt.Errorf("send message %q: %w", id, domain.ErrRoomNotFound)
	}
	return fmt.Errorf("send message: %w", domain.ErrNotImplemented)
}

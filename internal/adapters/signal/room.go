package signal

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/Sidebar/internal/app/orch"
	"github.com/dkeye/Sidebar/internal/core"
	"github.com/dkeye/Sidebar/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleList(
	sid core.SessionID,
	conn *WsSignalConn,
) {
	ctl.sendJSON(conn, orch.RoomsEvent{
		Type:  orch.EventRooms,
		Rooms: ctl.Orch.Rooms(sid),
	})
}

func (ctl *SignalWSController) handleCreateRoom(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	var p struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad create_room payload")
		ctl.sendError(conn, "bad_payload")
		return
	}

	info, err := ctl.Orch.CreateRoom(sid, p.Name)
	if errors.Is(err, orch.ErrRateLimited) {
		ctl.sendError(conn, "rate_limited")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("create room")
		ctl.sendError(conn, "internal")
		return
	}
	ctl.sendJSON(conn, orch.RoomEvent{Type: "room_created", Room: info})
}

func (ctl *SignalWSController) handleSelectRoom(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	var p struct {
		Type string        `json:"type"`
		ID   domain.RoomID `json:"id"`
		Name *string       `json:"name"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad select_room payload")
		ctl.sendError(conn, "bad_payload")
		return
	}

	switch {
	case p.ID != "":
		if err := ctl.Orch.SelectRoom(sid, p.ID); err != nil {
			log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("select room")
			ctl.sendError(conn, "room_not_found")
		}
	case p.Name != nil:
		ctl.Orch.SelectRoomByName(sid, *p.Name)
	default:
		ctl.sendError(conn, "bad_payload")
	}
}

func (ctl *SignalWSController) handleClearSelection(
	sid core.SessionID,
	_ *WsSignalConn,
) {
	ctl.Orch.ClearSelection(sid)
}

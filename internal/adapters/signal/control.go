package signal

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/Sidebar/internal/core"
	"github.com/dkeye/Sidebar/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handlePing(
	conn *WsSignalConn,
) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	ctl.sendJSON(conn, resp)
}

func (ctl *SignalWSController) handleWhoAmI(
	sid core.SessionID,
	conn *WsSignalConn,
) {
	resp := struct {
		Type   string           `json:"type"`
		SID    core.SessionID   `json:"sid"`
		Active *domain.RoomInfo `json:"active,omitempty"`
	}{
		Type: "whoami",
		SID:  sid,
	}
	if active, ok := ctl.Orch.ActiveRoom(sid); ok {
		resp.Active = &active
	}
	ctl.sendJSON(conn, resp)
}

// handleMessages answers for the message pane, which is not built yet.
func (ctl *SignalWSController) handleMessages(
	sid core.SessionID,
	conn *WsSignalConn,
	kind string,
	data []byte,
) {
	var p struct {
		Room domain.RoomID `json:"room"`
		Text string        `json:"text"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(conn, "bad_payload")
		return
	}
	var err error
	if kind == "send_message" {
		err = ctl.Orch.SendMessage(sid, p.Room, p.Text)
	} else {
		err = ctl.Orch.Messages(sid, p.Room)
	}
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		ctl.sendError(conn, "room_not_found")
	case errors.Is(err, domain.ErrNotImplemented):
		log.Debug().Str("module", "signal").Str("sid", string(sid)).Str("type", kind).Msg("message pane not implemented")
		ctl.sendError(conn, "not_implemented")
	}
}

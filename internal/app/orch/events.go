package orch

import "github.com/dkeye/Sidebar/internal/domain"

const (
	EventRooms       = "rooms"
	EventRoomUpdated = "room_updated"
)

type RoomsEvent struct {
	Type  string            `json:"type"`
	Rooms []domain.RoomInfo `json:"rooms"`
}

type RoomEvent struct {
	Type string          `json:"type"`
	Room domain.RoomInfo `json:"room"`
}

package core

import "github.com/dkeye/Sidebar/internal/domain"

// Room holds one room's display name and activation flag as separately
// observable cells. The ID is fixed at creation.
type Room struct {
	id     domain.RoomID
	name   *Cell[domain.RoomName]
	active *Cell[bool]
}

func newRoom(name domain.RoomName) *Room {
	return &Room{
		id:     domain.NewRoomID(),
		name:   NewCell(name),
		active: NewCell(false),
	}
}

func (r *Room) ID() domain.RoomID                 { return r.id }
func (r *Room) Name() Observable[domain.RoomName] { return r.name }
func (r *Room) Active() Observable[bool]          { return r.active }

func (r *Room) Info() domain.RoomInfo {
	return domain.RoomInfo{ID: r.id, Name: r.name.Get(), Active: r.active.Get()}
}

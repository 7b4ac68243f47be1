// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxRoomNameLen is the input bound the sidebar form applies before a name
// reaches the store. The store itself accepts any string.
const MaxRoomNameLen = 29

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrNotImplemented = errors.New("not implemented")
)

type (
	RoomName string
	RoomID   string
)

func NewRoomID() RoomID {
	return RoomID(uuid.NewString())
}

// RoomInfo is a plain value copy of a room, safe to hand to renderers.
type RoomInfo struct {
	ID     RoomID   `json:"id"`
	Name   RoomName `json:"name"`
	Active bool     `json:"active"`
}

// NormalizeRoomName trims surrounding whitespace and cuts the result to at most
// limit runes. A non-positive limit disables the bound.
func NormalizeRoomName(raw string, limit int) RoomName {
	name := strings.TrimSpace(raw)
	if limit <= 0 || utf8.RuneCountInString(name) <= limit {
		return RoomName(name)
	}
	runes := []rune(name)
	return RoomName(strings.TrimSpace(string(runes[:limit])))
}

package app

import "github.com/dkeye/Sidebar/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickConn
	DropFrame
)

type Policy interface {
	OnBackPressure(sid core.SessionID, conn core.SignalConnection) BackpressureAction
}

// SimplePolicy kicks any connection that cannot keep up. The browser is
// expected to reconnect and receive a fresh room snapshot.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(core.SessionID, core.SignalConnection) BackpressureAction {
	return KickConn
}

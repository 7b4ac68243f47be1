package core

// Observable is the read-only handle renderers hold. Mutation rights stay with
// the owner of the underlying Cell.
type Observable[T any] interface {
	Get() T
	Subscribe(fn func(T)) (cancel func())
}

// mapped exposes a Cell through a transform applied on every read and
// notification. RoomStore uses it to hand out copies of its room slice.
type mapped[T any] struct {
	cell *Cell[T]
	fn   func(T) T
}

func (m mapped[T]) Get() T { return m.fn(m.cell.Get()) }

func (m mapped[T]) Subscribe(fn func(T)) func() {
	return m.cell.Subscribe(func(v T) { fn(m.fn(v)) })
}

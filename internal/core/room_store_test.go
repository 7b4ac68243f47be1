package core

import (
	"fmt"
	"testing"

	"github.com/dkeye/Sidebar/internal/domain"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func infos(pairs ...any) []domain.RoomInfo {
	out := make([]domain.RoomInfo, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, domain.RoomInfo{
			Name:   domain.RoomName(pairs[i].(string)),
			Active: pairs[i+1].(bool),
		})
	}
	return out
}

func withoutIDs(in []domain.RoomInfo) []domain.RoomInfo {
	out := make([]domain.RoomInfo, len(in))
	for i, r := range in {
		out[i] = domain.RoomInfo{Name: r.Name, Active: r.Active}
	}
	return out
}

func activeCount(s *RoomStore) int {
	n := 0
	for _, r := range s.List() {
		if r.Active().Get() {
			n++
		}
	}
	return n
}

func TestNewRoomStoreIsEmpty(t *testing.T) {
	s := NewRoomStore()
	require.Zero(t, s.Len())
	require.Empty(t, s.Snapshot())
	_, ok := s.ActiveRoom()
	require.False(t, ok)
}

func TestSelectionScenario(t *testing.T) {
	s := NewRoomStore()
	s.AddRoom("General")
	s.AddRoom("Random")
	require.Equal(t, infos("General", false, "Random", false), withoutIDs(s.Snapshot()))

	s.SelectRoom("Random")
	require.Equal(t, infos("General", false, "Random", true), withoutIDs(s.Snapshot()))

	s.SelectRoom("General")
	require.Equal(t, infos("General", true, "Random", false), withoutIDs(s.Snapshot()))

	active, ok := s.ActiveRoom()
	require.True(t, ok)
	require.Equal(t, domain.RoomName("General"), active.Name().Get())
}

func TestEmptyNameIsSelectable(t *testing.T) {
	s := NewRoomStore()
	s.AddRoom("General")
	room := s.AddRoom("")

	s.SelectRoom("")
	require.True(t, room.Active().Get())
	require.Equal(t, 1, activeCount(s))
}

func TestSelectUnknownNameDeselectsAll(t *testing.T) {
	s := NewRoomStore()
	s.AddRoom("General")
	s.AddRoom("Random")
	s.SelectRoom("General")

	s.SelectRoom("nonexistent-name")
	require.Zero(t, activeCount(s))
}

func TestDuplicateNamesActivateEveryMatch(t *testing.T) {
	s := NewRoomStore()
	a := s.AddRoom("dup")
	s.AddRoom("other")
	b := s.AddRoom("dup")

	s.SelectRoom("dup")
	require.True(t, a.Active().Get())
	require.True(t, b.Active().Get())
	require.Equal(t, 2, activeCount(s))

	// ID selection disambiguates.
	require.True(t, s.SelectRoomByID(b.ID()))
	require.False(t, a.Active().Get())
	require.True(t, b.Active().Get())
	require.Equal(t, 1, activeCount(s))
}

func TestSelectRoomByIDUnknown(t *testing.T) {
	s := NewRoomStore()
	r := s.AddRoom("General")
	s.SelectRoomByID(r.ID())

	require.False(t, s.SelectRoomByID("missing"))
	require.Zero(t, activeCount(s))
}

func TestClearSelection(t *testing.T) {
	s := NewRoomStore()
	r := s.AddRoom("General")
	s.SelectRoomByID(r.ID())

	s.ClearSelection()
	require.False(t, r.Active().Get())
}

func TestGet(t *testing.T) {
	s := NewRoomStore()
	r := s.AddRoom("General")

	got, ok := s.Get(r.ID())
	require.True(t, ok)
	require.Same(t, r, got)

	_, ok = s.Get("missing")
	require.False(t, ok)
}

func TestAddRoomNotifiesListSubscribers(t *testing.T) {
	s := NewRoomStore()
	var lens []int
	cancel := s.Rooms().Subscribe(func(rooms []*Room) { lens = append(lens, len(rooms)) })
	defer cancel()

	s.AddRoom("a")
	s.AddRoom("b")
	require.Equal(t, []int{1, 2}, lens)
}

func TestSelectNotifiesEveryActiveCell(t *testing.T) {
	s := NewRoomStore()
	rooms := []*Room{s.AddRoom("a"), s.AddRoom("b"), s.AddRoom("c")}
	calls := make([]int, len(rooms))
	for i, r := range rooms {
		i := i
		r.Active().Subscribe(func(bool) { calls[i]++ })
	}

	s.SelectRoom("b")
	s.SelectRoom("b")
	require.Equal(t, []int{2, 2, 2}, calls)
}

func TestRoomsObservableHandsOutCopies(t *testing.T) {
	s := NewRoomStore()
	s.AddRoom("a")

	got := s.Rooms().Get()
	got[0] = nil
	require.NotNil(t, s.List()[0])

	list := s.List()
	_ = append(list[:0], nil)
	require.NotNil(t, s.List()[0])
}

func TestSubscriberMayReadRoomsDuringSelect(t *testing.T) {
	s := NewRoomStore()
	a := s.AddRoom("a")
	b := s.AddRoom("b")
	var seen []domain.RoomInfo
	a.Active().Subscribe(func(bool) { seen = []domain.RoomInfo{a.Info(), b.Info()} })

	s.SelectRoom("a")
	require.Len(t, seen, 2)
	require.True(t, seen[0].Active)
}

func TestReadersNeverSeeHalfAppliedSelection(t *testing.T) {
	s := NewRoomStore()
	a := s.AddRoom("a")
	b := s.AddRoom("b")
	s.AddRoom("c")
	s.SelectRoomByID(a.ID())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5000; i++ {
			if i%2 == 0 {
				s.SelectRoomByID(b.ID())
			} else {
				s.SelectRoomByID(a.ID())
			}
		}
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		active := 0
		for _, r := range s.Snapshot() {
			if r.Active {
				active++
			}
		}
		require.Equal(t, 1, active)
		room, ok := s.ActiveRoom()
		require.True(t, ok)
		require.Contains(t, []domain.RoomID{a.ID(), b.ID()}, room.ID())
	}
}

func TestAddRoomPreservesOrderAndFlags(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewRoomStore()
		names := rapid.SliceOf(rapid.StringN(0, 8, -1)).Draw(t, "names")
		selectAfter := rapid.IntRange(0, len(names)).Draw(t, "select-after")

		var want []domain.RoomName
		for i, n := range names {
			if i == selectAfter && i > 0 {
				s.SelectRoom(domain.RoomName(names[i-1]))
			}
			before := s.Snapshot()
			s.AddRoom(domain.RoomName(n))
			after := s.Snapshot()
			for j := range before {
				if before[j] != after[j] {
					t.Fatalf("AddRoom changed room %d: %v -> %v", j, before[j], after[j])
				}
			}
			want = append(want, domain.RoomName(n))
		}

		snap := s.Snapshot()
		if len(snap) != len(names) {
			t.Fatalf("got %d rooms, want %d", len(snap), len(names))
		}
		for i, r := range snap {
			if r.Name != want[i] {
				t.Fatalf("room %d: got %q, want %q", i, r.Name, want[i])
			}
		}
	})
}

func TestSelectActivatesExactlyMatchingRooms(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := []string{"", "General", "Random", "dev", "ops"}
		gen := rapid.SampledFrom(pool)
		names := rapid.SliceOfN(gen, 1, 12).Draw(t, "names")
		prior := rapid.SampledFrom(pool).Draw(t, "prior")
		target := rapid.OneOf(gen, rapid.Just("nonexistent-name")).Draw(t, "target")

		s := NewRoomStore()
		for _, n := range names {
			s.AddRoom(domain.RoomName(n))
		}
		s.SelectRoom(domain.RoomName(prior))

		s.SelectRoom(domain.RoomName(target))
		once := s.Snapshot()
		s.SelectRoom(domain.RoomName(target))
		twice := s.Snapshot()

		matches := 0
		for _, n := range names {
			if n == target {
				matches++
			}
		}
		if got := activeCount(s); got != matches {
			t.Fatalf("active=%d, matches=%d", got, matches)
		}
		for i := range once {
			if once[i] != twice[i] {
				t.Fatalf("select not idempotent at %d: %v vs %v", i, once[i], twice[i])
			}
			if once[i].Active != (string(once[i].Name) == target) {
				t.Fatalf("room %d active=%v for target %q", i, once[i].Active, target)
			}
		}
	})
}

func TestSelectByIDKeepsAtMostOneActive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewRoomStore()
		n := rapid.IntRange(1, 10).Draw(t, "n")
		for i := 0; i < n; i++ {
			// Same name on purpose.
			s.AddRoom("dup")
		}
		rooms := s.List()
		steps := rapid.SliceOfN(rapid.IntRange(-1, n-1), 1, 20).Draw(t, "steps")
		for _, idx := range steps {
			var id domain.RoomID = "missing"
			if idx >= 0 {
				id = rooms[idx].ID()
			}
			found := s.SelectRoomByID(id)
			want := 0
			if idx >= 0 {
				want = 1
			}
			if found != (idx >= 0) || activeCount(s) != want {
				t.Fatalf("step %d: found=%v active=%d", idx, found, activeCount(s))
			}
		}
	})
}

func ExampleRoomStore() {
	s := NewRoomStore()
	s.AddRoom("General")
	s.AddRoom("Random")
	s.SelectRoom("Random")
	for _, r := range s.Snapshot() {
		fmt.Println(r.Name, r.Active)
	}
	// Output:
	// General false
	// Random true
}

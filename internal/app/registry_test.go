package app

import (
	"context"
	"sync"
	"testing"

	"github.com/dkeye/Sidebar/internal/core"
	"github.com/dkeye/Sidebar/internal/domain"
	"github.com/stretchr/testify/require"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

func TestGetOrCreateStoreSeedsOnce(t *testing.T) {
	r := NewRegistry("General", "Random")

	s1, created := r.GetOrCreateStore("sid-1")
	require.True(t, created)
	s2, created := r.GetOrCreateStore("sid-1")
	require.False(t, created)
	require.Same(t, s1, s2)

	snap := s1.Snapshot()
	require.Len(t, snap, 2)
	require.Equal(t, domain.RoomName("General"), snap[0].Name)
	require.Equal(t, domain.RoomName("Random"), snap[1].Name)
	require.False(t, snap[0].Active)
	require.False(t, snap[1].Active)
}

func TestStoresAreIsolatedPerSession(t *testing.T) {
	r := NewRegistry()
	a, _ := r.GetOrCreateStore("a")
	b, _ := r.GetOrCreateStore("b")

	a.AddRoom("only-in-a")
	require.Equal(t, 1, a.Len())
	require.Zero(t, b.Len())
	require.Equal(t, 2, r.SessionCount())
}

func TestGetOrCreateStoreConcurrent(t *testing.T) {
	r := NewRegistry("seed")
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := r.GetOrCreateStore("sid"); ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, created)
	s, _ := r.GetOrCreateStore("sid")
	require.Equal(t, 1, s.Len())
}

func TestOnStoreCreatedRunsBeforeStoreIsShared(t *testing.T) {
	r := NewRegistry("seed")
	var mu sync.Mutex
	hooked := make(map[*core.RoomStore]int)
	r.OnStoreCreated(func(sid core.SessionID, s *core.RoomStore) {
		if sid != "sid" || s.Len() != 1 {
			t.Errorf("hook got sid=%q rooms=%d, want seeded store for sid", sid, s.Len())
		}
		mu.Lock()
		hooked[s]++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, _ := r.GetOrCreateStore("sid")
			mu.Lock()
			n := hooked[s]
			mu.Unlock()
			if n != 1 {
				t.Errorf("store returned with hook count %d", n)
			}
		}()
	}
	wg.Wait()
	require.Len(t, hooked, 1)
}

func TestBindUnbindCancel(t *testing.T) {
	r := NewRegistry()
	require.False(t, r.BindSignal("sid", "c1", nopConn{}, nil), "no store yet")

	r.GetOrCreateStore("sid")
	ctx, cancel := context.WithCancel(context.Background())
	require.True(t, r.BindSignal("sid", "c1", nopConn{}, cancel))
	require.True(t, r.BindSignal("sid", "c2", nopConn{}, nil))
	require.Len(t, r.Conns("sid"), 2)

	require.True(t, r.Cancel("sid", "c1"))
	require.ErrorIs(t, ctx.Err(), context.Canceled)
	require.True(t, r.Cancel("sid", "c2"), "nil cancel is tolerated")

	r.Unbind("sid", "c1")
	conns := r.Conns("sid")
	require.Len(t, conns, 1)
	require.Equal(t, core.ConnID("c2"), conns[0].ID)
	require.False(t, r.Cancel("sid", "c1"))
	require.Nil(t, r.Conns("unknown"))
}

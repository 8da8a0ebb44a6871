// Package view holds the per-view state behind the admin pages and the
// lifecycle that fills it from the gateway.
//
// A view is mounted once per activation. Mounting starts a single
// asynchronous fetch; its result replaces the view's data wholesale and the
// loading flag is cleared whether the fetch succeeds, fails, or panics.
// Mutations never patch local data: they write through the gateway and then
// refetch the full resource.
package view

import (
	"context"
	"sync"

	"market-stand-admin/internal/logger"
	"market-stand-admin/internal/metrics"
)

// State holds exactly what a view renders: its data and whether the mount
// fetch is still outstanding.
type State[T any] struct {
	mu      sync.RWMutex
	data    T
	loading bool
	settled int
}

// NewState returns a state that is loading and holds initial as its data.
func NewState[T any](initial T) *State[T] {
	return &State[T]{data: initial, loading: true}
}

// Snapshot returns the current data and loading flag together.
func (s *State[T]) Snapshot() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.loading
}

func (s *State[T]) Data() T {
	d, _ := s.Snapshot()
	return d
}

func (s *State[T]) Loading() bool {
	_, l := s.Snapshot()
	return l
}

// Settled reports how many fetch attempts have completed.
func (s *State[T]) Settled() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settled
}

func (s *State[T]) replace(data T) {
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}

func (s *State[T]) settle() {
	s.mu.Lock()
	s.loading = false
	s.settled++
	s.mu.Unlock()
}

// fetch runs one attempt of load against st. Data is replaced only on
// success; loading is cleared on every exit path, including a panic in load.
func fetch[T any](ctx context.Context, name string, st *State[T], m *metrics.Metrics, load func(context.Context) (T, error)) (ok bool) {
	log := logger.WithView(name)
	defer st.settle()
	defer func() {
		if r := recover(); r != nil {
			log.Error("View fetch panicked", "panic", r)
			ok = false
		}
		m.ObserveViewFetch(name, ok)
	}()

	data, err := load(ctx)
	if err != nil {
		log.Error("Error fetching view data", "error", err)
		return false
	}
	st.replace(data)
	return true
}

// mount runs the activation fetch on its own goroutine.
type mount struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func startMount(parent context.Context, run func(ctx context.Context)) *mount {
	ctx, cancel := context.WithCancel(parent)
	m := &mount{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(m.done)
		run(ctx)
	}()
	return m
}

// Wait blocks until the mount fetch has settled or ctx ends.
func (m *mount) Wait(ctx context.Context) error {
	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready is closed once the mount fetch has settled.
func (m *mount) Ready() <-chan struct{} {
	return m.done
}

// Unmount cancels an outstanding mount fetch and waits for it to return.
// The view's data should not be used afterwards.
func (m *mount) Unmount() {
	m.cancel()
	<-m.done
}

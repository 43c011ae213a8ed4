package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultMountTTL      = 30 * time.Minute
	defaultSweepInterval = time.Minute
)

// ErrMountNotFound indicates the mount was never created or has been evicted.
var ErrMountNotFound = errors.New("state: mount not found")

// ErrUnknownEvent is returned when Dispatch receives an event it cannot apply.
var ErrUnknownEvent = errors.New("state: unknown event")

// Mount is a snapshot of one mounted shell.
type Mount struct {
	ID        string
	State     State
	Path      string
	RouteName string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Observer receives store lifecycle notifications, typically for metrics.
type Observer interface {
	MountCreated()
	Transition(ev Event, before, after State)
	MountsEvicted(n int)
	ActiveMounts(n int)
}

type nopObserver struct{}

func (nopObserver) MountCreated() {}
func (nopObserver) Transition(Event, State, State) {}
func (nopObserver) MountsEvicted(int) {}
func (nopObserver) ActiveMounts(int) {}

// Options configures a Store.
type Options struct {
	TTL           time.Duration
	SweepInterval time.Duration
	Observer      Observer
	Now           func() time.Time
	NewID         func() string
}

// Store keeps the state of every mounted shell in memory. A full page load
// creates a new mount; nothing is carried over between mounts. All mutations
// are serialized under one lock.
type Store struct {
	mu       sync.Mutex
	mounts   map[string]*Mount
	ttl      time.Duration
	interval time.Duration
	observer Observer
	now      func() time.Time
	newID    func() string
}

// NewStore constructs a Store with defaults applied.
func NewStore(opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = defaultMountTTL
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = defaultSweepInterval
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.NewString() }
	}
	return &Store{
		mounts:   make(map[string]*Mount),
		ttl:      opts.TTL,
		interval: opts.SweepInterval,
		observer: opts.Observer,
		now:      opts.Now,
		newID:    opts.NewID,
	}
}

// Mount registers a new shell at the given location with the initial state.
func (s *Store) Mount(path, routeName string) Mount {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	m := &Mount{
		ID:        s.newID(),
		State:     Initial(),
		Path:      path,
		RouteName: routeName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mounts[m.ID] = m
	s.observer.MountCreated()
	s.observer.ActiveMounts(len(s.mounts))
	return *m
}

// Get returns the mount snapshot without touching its idle timer.
func (s *Store) Get(id string) (Mount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.mounts[id]
	if !ok {
		return Mount{}, fmt.Errorf("%w: %s", ErrMountNotFound, id)
	}
	return *m, nil
}

// Dispatch applies ev to the mount and returns the updated snapshot.
func (s *Store) Dispatch(id string, ev Event) (Mount, error) {
	if !ev.Valid() {
		return Mount{}, fmt.Errorf("%w: %d", ErrUnknownEvent, int(ev))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.mounts[id]
	if !ok {
		return Mount{}, fmt.Errorf("%w: %s", ErrMountNotFound, id)
	}
	before := m.State
	m.State = before.Apply(ev)
	m.UpdatedAt = s.now()
	s.observer.Transition(ev, before, m.State)
	return *m, nil
}

// Navigate moves the mount to a new location and applies the matching
// navigation event. Dismissing links close the drawer.
func (s *Store) Navigate(id, path, routeName string, dismiss bool) (Mount, error) {
	ev := EventNavigate
	if dismiss {
		ev = EventDrawerNavigate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.mounts[id]
	if !ok {
		return Mount{}, fmt.Errorf("%w: %s", ErrMountNotFound, id)
	}
	before := m.State
	m.State = before.Apply(ev)
	m.Path = path
	m.RouteName = routeName
	m.UpdatedAt = s.now()
	s.observer.Transition(ev, before, m.State)
	return *m, nil
}

// Len reports the number of live mounts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mounts)
}

// Sweep evicts mounts idle for longer than the TTL and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	for id, m := range s.mounts {
		if m.UpdatedAt.Before(cutoff) {
			delete(s.mounts, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.observer.MountsEvicted(evicted)
		s.observer.ActiveMounts(len(s.mounts))
	}
	return evicted
}

// Run sweeps idle mounts periodically until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

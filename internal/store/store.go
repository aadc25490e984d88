// Package store holds the client-side entity stores that mirror the roster API.
//
// A Store owns one collection together with a loading flag and the last error.
// Operations call the remote collection and reconcile the confirmed result into
// the collection; subscribers observe committed states in order.
package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")
	// ErrMissingIdentity is recorded when the server returns an entity without an id.
	ErrMissingIdentity = errors.New("server returned an entity without identity")
	// ErrUnknownAction is returned by Dispatch for unsupported actions.
	ErrUnknownAction = errors.New("unknown action")
)

// Remote is the collection client a Store reads from and writes to.
type Remote[E any, ID comparable, D any] interface {
	List(ctx context.Context) ([]E, error)
	Get(ctx context.Context, id ID) (E, error)
	Create(ctx context.Context, draft D) (E, error)
	Update(ctx context.Context, id ID, draft D) (E, error)
	Delete(ctx context.Context, id ID) error
}

// State is an immutable snapshot of a store.
// Items must be treated as read-only: it is shared with the store and with
// every other reader until the collection changes.
type State[E any] struct {
	Items   []E
	Loading bool
	Err     error
	Version uint64
}

// Listener receives every committed state change.
type Listener[E any] func(State[E])

type listener[E any] struct {
	id uint64
	fn Listener[E]
}

type config struct {
	log *zap.SugaredLogger
}

// Option configures a Store.
type Option func(*config)

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// Store is the state container of one entity type.
// E is the entity, ID its identity and D the draft sent on create/update.
type Store[E any, ID comparable, D any] struct {
	name   string
	remote Remote[E, ID, D]
	key    func(E) ID
	log    *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.RWMutex
	state     State[E]
	token     uint64
	closed    bool
	listeners []listener[E]
	nextID    uint64

	// pending holds committed states not yet delivered, in commit order.
	// Only the goroutine that set delivering drains it.
	pending    []delivery[E]
	delivering bool
}

type delivery[E any] struct {
	state   State[E]
	targets []listener[E]
}

// New creates an empty store named name (used in action labels and logs).
func New[E any, ID comparable, D any](name string, remote Remote[E, ID, D], key func(E) ID, opts ...Option) *Store[E, ID, D] {
	cfg := config{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Store[E, ID, D]{
		name:   name,
		remote: remote,
		key:    key,
		log:    cfg.log.Named("store").With("store", name),
		ctx:    ctx,
		cancel: cancel,
		state:  State[E]{Items: []E{}},
	}
}

// Name returns the store name.
func (s *Store[E, ID, D]) Name() string {
	return s.name
}

// Snapshot returns the current state.
func (s *Store[E, ID, D]) Snapshot() State[E] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// All returns the current collection. The slice is shared: do not modify it.
// Consecutive calls return the same slice until the collection changes.
func (s *Store[E, ID, D]) All() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Items
}

// Loading reports whether the latest dispatched request is outstanding.
func (s *Store[E, ID, D]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Loading
}

// Err returns the failure of the latest settled operation, or nil.
func (s *Store[E, ID, D]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Err
}

// Find returns the item with the given identity.
func (s *Store[E, ID, D]) Find(id ID) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.state.Items {
		if s.key(item) == id {
			return item, true
		}
	}
	var zero E
	return zero, false
}

// Subscribe registers fn and calls it with the current state, then once per
// committed change in commit order. Deliveries are serialized: fn may read
// selectors and start operations, and states committed while fn runs are
// delivered after it returns.
func (s *Store[E, ID, D]) Subscribe(fn Listener[E]) (unsubscribe func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	s.nextID++
	l := listener[E]{id: s.nextID, fn: fn}
	s.listeners = append(s.listeners, l)
	s.pending = append(s.pending, delivery[E]{state: s.state, targets: []listener[E]{l}})
	s.mu.Unlock()

	s.deliver()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(l.id) })
	}
}

func (s *Store[E, ID, D]) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Close drops all listeners, discards in-flight results and rejects new operations.
func (s *Store[E, ID, D]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.token++
	s.listeners = nil
	s.pending = nil
	s.mu.Unlock()

	s.cancel()
	s.log.Debugw("closed")
}

// commit applies fn to a copy of the state. When fn reports a change the copy
// becomes the new state, its version is bumped and listeners are notified.
func (s *Store[E, ID, D]) commit(fn func(st *State[E]) bool) bool {
	s.mu.Lock()
	next := s.state
	if !fn(&next) {
		s.mu.Unlock()
		return false
	}
	next.Version++
	s.state = next
	if len(s.listeners) > 0 {
		targets := make([]listener[E], len(s.listeners))
		copy(targets, s.listeners)
		s.pending = append(s.pending, delivery[E]{state: next, targets: targets})
	}
	s.mu.Unlock()

	s.deliver()
	return true
}

// deliver drains the pending queue unless another call is already doing so,
// possibly further up the current stack when a listener triggered the commit.
func (s *Store[E, ID, D]) deliver() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true

	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.delivering = false
			s.pending = nil
			s.mu.Unlock()
			panic(r)
		}
	}()

	for len(s.pending) > 0 {
		d := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		for _, l := range d.targets {
			if s.subscribed(l.id) {
				l.fn(d.state)
			}
		}

		s.mu.Lock()
	}
	s.delivering = false
	s.mu.Unlock()
}

func (s *Store[E, ID, D]) subscribed(id uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

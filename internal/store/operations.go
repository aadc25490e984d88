package store

import (
	"context"
	"fmt"
)

// reconcileFunc folds a confirmed result into the current items.
type reconcileFunc[E any] func(items []E) (next []E, changed bool)

type operation[E any] struct {
	kind string
	call func(ctx context.Context) (reconcileFunc[E], error)
}

// Load replaces the collection with the server list.
// On failure the previous items are kept and the error is recorded.
func (s *Store[E, ID, D]) Load(ctx context.Context) error {
	return s.exec(ctx, s.loadOp())
}

// LoadOne fetches one entity and merges it into the collection.
func (s *Store[E, ID, D]) LoadOne(ctx context.Context, id ID) (E, error) {
	var out E
	err := s.exec(ctx, s.loadOneOp(id, &out))
	return out, err
}

// Create sends draft to the server and appends the stored entity.
func (s *Store[E, ID, D]) Create(ctx context.Context, draft D) (E, error) {
	var out E
	err := s.exec(ctx, s.createOp(draft, &out))
	return out, err
}

// Update sends draft for id and replaces the item matching the returned entity.
func (s *Store[E, ID, D]) Update(ctx context.Context, id ID, draft D) (E, error) {
	var out E
	err := s.exec(ctx, s.updateOp(id, draft, &out))
	return out, err
}

// Delete removes id on the server and then locally. Removing an id that is
// not in the collection leaves the items untouched.
func (s *Store[E, ID, D]) Delete(ctx context.Context, id ID) error {
	return s.exec(ctx, s.deleteOp(id))
}

func (s *Store[E, ID, D]) loadOp() operation[E] {
	return operation[E]{
		kind: "Load",
		call: func(ctx context.Context) (reconcileFunc[E], error) {
			items, err := s.remote.List(ctx)
			if err != nil {
				return nil, err
			}
			if items == nil {
				items = []E{}
			}
			return func([]E) ([]E, bool) { return items, true }, nil
		},
	}
}

func (s *Store[E, ID, D]) loadOneOp(id ID, out *E) operation[E] {
	return operation[E]{
		kind: "Load One",
		call: func(ctx context.Context) (reconcileFunc[E], error) {
			e, err := s.remote.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			return s.upsert(e, out)
		},
	}
}

func (s *Store[E, ID, D]) createOp(draft D, out *E) operation[E] {
	return operation[E]{
		kind: "Create",
		call: func(ctx context.Context) (reconcileFunc[E], error) {
			e, err := s.remote.Create(ctx, draft)
			if err != nil {
				return nil, err
			}
			return s.upsert(e, out)
		},
	}
}

func (s *Store[E, ID, D]) updateOp(id ID, draft D, out *E) operation[E] {
	return operation[E]{
		kind: "Update",
		call: func(ctx context.Context) (reconcileFunc[E], error) {
			e, err := s.remote.Update(ctx, id, draft)
			if err != nil {
				return nil, err
			}
			return s.upsert(e, out)
		},
	}
}

func (s *Store[E, ID, D]) deleteOp(id ID) operation[E] {
	return operation[E]{
		kind: "Delete",
		call: func(ctx context.Context) (reconcileFunc[E], error) {
			if err := s.remote.Delete(ctx, id); err != nil {
				return nil, err
			}
			return func(items []E) ([]E, bool) {
				return Remove(items, id, s.key)
			}, nil
		},
	}
}

// upsert keys the reconciliation on the identity the server returned, not on
// the id that was dispatched.
func (s *Store[E, ID, D]) upsert(e E, out *E) (reconcileFunc[E], error) {
	var zero ID
	if s.key(e) == zero {
		return nil, ErrMissingIdentity
	}
	if out != nil {
		*out = e
	}
	return func(items []E) ([]E, bool) {
		return Upsert(items, e, s.key), true
	}, nil
}

func (s *Store[E, ID, D]) label(kind string) string {
	return fmt.Sprintf("[%s] %s", s.name, kind)
}

func (s *Store[E, ID, D]) exec(ctx context.Context, op operation[E]) error {
	token, err := s.begin(op.kind)
	if err != nil {
		return err
	}
	return s.finish(ctx, token, op)
}

// begin issues the next request token and marks the store as loading.
func (s *Store[E, ID, D]) begin(kind string) (uint64, error) {
	var token uint64
	closed := false
	s.commit(func(st *State[E]) bool {
		if s.closed {
			closed = true
			return false
		}
		s.token++
		token = s.token
		if st.Loading && st.Err == nil {
			return false
		}
		st.Loading = true
		st.Err = nil
		return true
	})
	if closed {
		return 0, ErrClosed
	}
	s.log.Debugw("dispatch", "action", s.label(kind), "token", token)
	return token, nil
}

// finish runs the remote call and applies its outcome when token is still the
// latest one issued. Results of superseded requests are dropped; the caller
// still receives the remote outcome.
func (s *Store[E, ID, D]) finish(ctx context.Context, token uint64, op operation[E]) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	reconcile, callErr := s.call(ctx, op)

	stale := false
	s.commit(func(st *State[E]) bool {
		if s.closed || token != s.token {
			stale = true
			return false
		}
		st.Loading = false
		if callErr != nil {
			st.Err = callErr
			return true
		}
		st.Err = nil
		if next, changed := reconcile(st.Items); changed {
			st.Items = next
		}
		return true
	})

	label := s.label(op.kind)
	switch {
	case stale:
		s.log.Infow("discarding stale result", "action", label, "token", token, "error", callErr)
	case callErr != nil:
		s.log.Debugw("failed", "action", label, "token", token, "error", callErr)
	default:
		s.log.Debugw("settled", "action", label, "token", token)
	}
	return callErr
}

func (s *Store[E, ID, D]) call(ctx context.Context, op operation[E]) (reconcile reconcileFunc[E], err error) {
	defer func() {
		if r := recover(); r != nil {
			reconcile = nil
			err = fmt.Errorf("%s: panic: %v", s.label(op.kind), r)
		}
	}()
	return op.call(ctx)
}

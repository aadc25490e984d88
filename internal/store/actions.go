package store

import (
	"context"
	"fmt"
)

// Action is a message handled by Store.Dispatch.
type Action interface {
	Kind() string
}

// LoadAction reloads the whole collection.
type LoadAction struct{}

// LoadOneAction fetches a single entity.
type LoadOneAction[ID comparable] struct {
	ID ID
}

// CreateAction creates an entity from a draft.
type CreateAction[D any] struct {
	Draft D
}

// UpdateAction updates the entity ID with a draft.
type UpdateAction[ID comparable, D any] struct {
	ID    ID
	Draft D
}

// DeleteAction deletes the entity ID.
type DeleteAction[ID comparable] struct {
	ID ID
}

func (LoadAction) Kind() string          { return "Load" }
func (LoadOneAction[ID]) Kind() string   { return "Load One" }
func (CreateAction[D]) Kind() string     { return "Create" }
func (UpdateAction[ID, D]) Kind() string { return "Update" }
func (DeleteAction[ID]) Kind() string    { return "Delete" }

// Type returns the label of action as handled by this store, e.g. "[Roles] Load".
func (s *Store[E, ID, D]) Type(action Action) string {
	return s.label(action.Kind())
}

// Dispatch starts action and returns immediately. The request token is taken
// before Dispatch returns, so dispatch order decides which result is kept.
// The returned channel receives exactly one completion value.
func (s *Store[E, ID, D]) Dispatch(ctx context.Context, action Action) <-chan error {
	done := make(chan error, 1)

	op, err := s.operationFor(action)
	if err != nil {
		done <- err
		return done
	}

	token, err := s.begin(op.kind)
	if err != nil {
		done <- err
		return done
	}

	go func() {
		done <- s.finish(ctx, token, op)
	}()
	return done
}

func (s *Store[E, ID, D]) operationFor(action Action) (operation[E], error) {
	switch a := action.(type) {
	case LoadAction:
		return s.loadOp(), nil
	case LoadOneAction[ID]:
		return s.loadOneOp(a.ID, nil), nil
	case CreateAction[D]:
		return s.createOp(a.Draft, nil), nil
	case UpdateAction[ID, D]:
		return s.updateOp(a.ID, a.Draft, nil), nil
	case DeleteAction[ID]:
		return s.deleteOp(a.ID), nil
	default:
		return operation[E]{}, fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
}

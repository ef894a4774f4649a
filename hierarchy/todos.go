package hierarchy

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jacentio/lattice/auth"
	"github.com/jacentio/lattice/fault"
	"github.com/jacentio/lattice/guard"
	"github.com/jacentio/lattice/model"
	"github.com/jacentio/lattice/store"
)

// TodoPatch carries the updatable todo fields; nil means unchanged.
// The container is deliberately not patchable: todos never move between lists.
type TodoPatch struct {
	Description *string
	Checked     *bool
}

// TodosInList returns the todos of a list the principal may view, in the
// list's order.
func (e *Engine) TodosInList(ctx context.Context, p auth.Principal, listID string) ([]*model.Todo, error) {
	l, err := e.loadAuthorizedList(ctx, p, listID, guard.ActionView)
	if err != nil {
		return nil, err
	}

	todos := make([]*model.Todo, 0, len(l.Todos))
	for _, id := range l.Todos {
		t, err := e.store.GetTodo(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			// Dangling back-reference; skip rather than fail the read.
			e.logger.Warn("list references missing todo", "list", l.ID, "todo", id)
			continue
		}
		if err != nil {
			return nil, fault.Transient(err)
		}
		todos = append(todos, t)
	}
	return todos, nil
}

// CreateTodo creates a todo inside the list and appends the back-reference.
// Fails with NotFound if the list does not exist.
func (e *Engine) CreateTodo(ctx context.Context, p auth.Principal, listID string, t *model.Todo) (*model.Todo, error) {
	l, err := e.loadAuthorizedList(ctx, p, listID, guard.ActionEdit)
	if err != nil {
		return nil, err
	}

	t.ID = uuid.NewString()
	t.Container = l.ID

	if err := e.store.CreateTodo(ctx, t); err != nil {
		return nil, mapStoreErr(err, "")
	}

	l.AddTodo(t.ID)
	if err := e.store.UpdateList(ctx, l); err != nil {
		return nil, fault.Transient(err)
	}

	return t, nil
}

// GetTodo returns a todo of the given list.
func (e *Engine) GetTodo(ctx context.Context, p auth.Principal, listID, todoID string) (*model.Todo, error) {
	l, err := e.loadAuthorizedList(ctx, p, listID, guard.ActionView)
	if err != nil {
		return nil, err
	}

	t, err := e.store.GetTodo(ctx, todoID)
	if err != nil {
		return nil, mapStoreErr(err, "")
	}
	if t.Container != l.ID {
		return nil, fault.NotFound()
	}
	return t, nil
}

// UpdateTodo applies a patch to a todo of the given list.
func (e *Engine) UpdateTodo(ctx context.Context, p auth.Principal, listID, todoID string, patch TodoPatch) (*model.Todo, error) {
	l, err := e.loadAuthorizedList(ctx, p, listID, guard.ActionEdit)
	if err != nil {
		return nil, err
	}

	t, err := e.store.GetTodo(ctx, todoID)
	if err != nil {
		return nil, mapStoreErr(err, "")
	}
	if t.Container != l.ID {
		return nil, fault.NotFound()
	}

	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Checked != nil {
		t.Checked = *patch.Checked
	}

	if err := e.store.UpdateTodo(ctx, t); err != nil {
		return nil, mapStoreErr(err, "")
	}
	return t, nil
}

// DeleteTodo deletes a todo and removes the list's back-reference. The
// list's todo set never retains a dangling ID after this completes.
func (e *Engine) DeleteTodo(ctx context.Context, p auth.Principal, listID, todoID string) error {
	l, err := e.loadAuthorizedList(ctx, p, listID, guard.ActionDelete)
	if err != nil {
		return err
	}

	t, err := e.store.GetTodo(ctx, todoID)
	if err != nil {
		return mapStoreErr(err, "")
	}
	if t.Container != l.ID {
		return fault.NotFound()
	}

	if err := e.store.DeleteTodo(ctx, t); err != nil {
		return fault.Transient(err)
	}

	l.RemoveTodo(t.ID)
	if err := e.store.UpdateList(ctx, l); err != nil {
		return fault.Transient(err)
	}
	return nil
}

// loadAuthorizedList fetches a list and applies the ownership policy for the
// given action.
func (e *Engine) loadAuthorizedList(ctx context.Context, p auth.Principal, listID string, action guard.Action) (*model.List, error) {
	l, err := e.store.GetList(ctx, listID)
	if err != nil {
		return nil, mapStoreErr(err, "")
	}
	if err := e.authorize(ctx, p, l.Creator, action); err != nil {
		return nil, err
	}
	return l, nil
}

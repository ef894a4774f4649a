package hierarchy

import (
	"context"
	"errors"

	"github.com/jacentio/lattice/auth"
	"github.com/jacentio/lattice/fault"
	"github.com/jacentio/lattice/guard"
	"github.com/jacentio/lattice/model"
	"github.com/jacentio/lattice/store"
)

// DeleteFolder deletes a folder. With keepChildren the contained lists are
// detached and survive; otherwise every contained list and its todos are
// deleted before the folder itself.
//
// After it returns, no list references the folder as its container, and in
// the cascade case no todo references any of the folder's former lists.
func (e *Engine) DeleteFolder(ctx context.Context, p auth.Principal, id string, keepChildren bool) error {
	f, err := e.store.GetFolder(ctx, id)
	if err != nil {
		return mapStoreErr(err, "")
	}
	if err := e.authorize(ctx, p, f.Creator, guard.ActionDelete); err != nil {
		return err
	}

	for _, listID := range f.Files {
		l, err := e.store.GetList(ctx, listID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return fault.Transient(err)
		}

		if keepChildren {
			l.Container = ""
			if err := e.store.UpdateList(ctx, l); err != nil {
				return fault.Transient(err)
			}
		} else {
			if err := e.cascadeList(ctx, l); err != nil {
				return err
			}
		}
	}

	if err := e.store.DeleteFolder(ctx, f); err != nil {
		return fault.Transient(err)
	}

	e.logger.Info("folder deleted", "folder", f.ID, "keepChildren", keepChildren, "lists", len(f.Files))
	return nil
}

// DeleteList deletes a list, its todos, and the parent folder's
// back-reference, in that order.
func (e *Engine) DeleteList(ctx context.Context, p auth.Principal, id string) error {
	l, err := e.store.GetList(ctx, id)
	if err != nil {
		return mapStoreErr(err, "")
	}
	if err := e.authorize(ctx, p, l.Creator, guard.ActionDelete); err != nil {
		return err
	}

	if err := e.detachList(ctx, l); err != nil {
		return err
	}
	return e.cascadeList(ctx, l)
}

// cascadeList deletes every todo of the list, then the list record.
// Idempotent: already-deleted todos are skipped so a retry completes the job.
func (e *Engine) cascadeList(ctx context.Context, l *model.List) error {
	for _, todoID := range l.Todos {
		if err := e.store.DeleteTodo(ctx, &model.Todo{ID: todoID, Container: l.ID}); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return fault.Transient(err)
		}
	}

	if err := e.store.DeleteList(ctx, l); err != nil {
		return fault.Transient(err)
	}

	e.logger.Info("list deleted", "list", l.ID, "todos", len(l.Todos))
	return nil
}

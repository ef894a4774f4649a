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

// ListPatch carries the updatable list fields; nil means unchanged.
// A non-nil empty Container clears the container (detach).
type ListPatch struct {
	Name      *string
	Image     *string
	Container *string
}

// CreateList creates a list owned by the principal. When l.Container names a
// folder, the principal must be authorized on that folder and the folder's
// back-reference is appended in the same logical operation.
func (e *Engine) CreateList(ctx context.Context, p auth.Principal, l *model.List) (*model.List, error) {
	var dest *model.Folder
	if l.Container != "" {
		f, err := e.store.GetFolder(ctx, l.Container)
		if err != nil {
			return nil, mapStoreErr(err, "")
		}
		if err := e.authorize(ctx, p, f.Creator, guard.ActionEdit); err != nil {
			return nil, err
		}
		dest = f
	}

	l.ID = uuid.NewString()
	l.Creator = p.ID
	l.Todos = []string{}

	if err := e.store.CreateList(ctx, l); err != nil {
		return nil, mapStoreErr(err, nameConflictMessage)
	}

	if dest != nil {
		dest.AddFile(l.ID)
		if err := e.store.UpdateFolder(ctx, dest); err != nil {
			return nil, fault.Transient(err)
		}
	}

	e.logger.Info("list created", "list", l.ID, "container", l.Container, "creator", p.ID)
	return l, nil
}

// GetList returns a list the principal may view.
func (e *Engine) GetList(ctx context.Context, p auth.Principal, id string) (*model.List, error) {
	l, err := e.store.GetList(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "")
	}
	if err := e.authorize(ctx, p, l.Creator, guard.ActionView); err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateList applies a patch to a list the principal may edit. Container
// changes run the detach-then-attach protocol; re-attaching to the current
// folder is a no-op that never duplicates the back-reference.
func (e *Engine) UpdateList(ctx context.Context, p auth.Principal, id string, patch ListPatch) (*model.List, error) {
	l, err := e.store.GetList(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "")
	}
	if err := e.authorize(ctx, p, l.Creator, guard.ActionEdit); err != nil {
		return nil, err
	}

	if patch.Container != nil && *patch.Container != l.Container {
		target := *patch.Container

		if target == "" {
			if err := e.detachList(ctx, l); err != nil {
				return nil, err
			}
		} else {
			// Moving into a folder you don't own is forbidden even if you
			// own the list; both checks apply independently.
			dest, err := e.store.GetFolder(ctx, target)
			if err != nil {
				return nil, mapStoreErr(err, "")
			}
			if err := e.authorize(ctx, p, dest.Creator, guard.ActionEdit); err != nil {
				return nil, err
			}
			if err := e.detachList(ctx, l); err != nil {
				return nil, err
			}
			if err := e.attachList(ctx, l, dest); err != nil {
				return nil, err
			}
		}
	}

	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Image != nil {
		l.Image = *patch.Image
	}

	if err := e.store.UpdateList(ctx, l); err != nil {
		return nil, mapStoreErr(err, nameConflictMessage)
	}
	return l, nil
}

// attachList appends the folder's back-reference and points the list at it.
// The folder side persists first so a failure never leaves the list claiming
// a folder that does not reference it.
func (e *Engine) attachList(ctx context.Context, l *model.List, dest *model.Folder) error {
	dest.AddFile(l.ID)
	if err := e.store.UpdateFolder(ctx, dest); err != nil {
		return fault.Transient(err)
	}
	l.Container = dest.ID
	return nil
}

// detachList removes the list from its current folder, if any, and clears
// the list's container. A container-less list is a no-op.
func (e *Engine) detachList(ctx context.Context, l *model.List) error {
	if l.Container == "" {
		return nil
	}

	f, err := e.store.GetFolder(ctx, l.Container)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Stale reference; clearing the list side restores the invariant.
	case err != nil:
		return fault.Transient(err)
	default:
		f.RemoveFile(l.ID)
		if err := e.store.UpdateFolder(ctx, f); err != nil {
			return fault.Transient(err)
		}
	}

	l.Container = ""
	return nil
}

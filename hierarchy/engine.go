// Package hierarchy implements the container-consistency core: ownership
// checks, the mirrored parent/child references between folders, lists, and
// todos, and the cascade/retention behavior on deletes.
//
// Every multi-document mutation follows the same protocol: never change one
// side of a back-reference without the paired update in the same logical
// operation. There is no cross-document transaction; a failed step surfaces
// as an error and the operation is retried idempotently.
package hierarchy

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jacentio/lattice/auth"
	"github.com/jacentio/lattice/fault"
	"github.com/jacentio/lattice/guard"
	"github.com/jacentio/lattice/model"
	"github.com/jacentio/lattice/store"
)

// Engine performs all resource operations on behalf of a principal.
type Engine struct {
	store  Store
	logger *slog.Logger
}

// New creates an Engine over the given store.
func New(s Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: s, logger: logger}
}

// authorize loads the creator record and applies the ownership policy.
func (e *Engine) authorize(ctx context.Context, p auth.Principal, creatorID string, action guard.Action) error {
	creator, err := e.store.GetUser(ctx, creatorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			creator = nil
		} else {
			return fault.Transient(err)
		}
	}

	decision := guard.Authorize(p, creator, action)
	if decision.Allowed {
		return nil
	}
	if decision.Reason == guard.ReasonNotFound {
		return fault.NotFound()
	}
	return fault.Forbidden("You are not authorized to proceed")
}

// mapStoreErr translates store sentinels into the fault taxonomy.
func mapStoreErr(err error, conflictMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrParentNotFound):
		return fault.NotFound()
	case errors.Is(err, store.ErrDuplicateValue), errors.Is(err, store.ErrAlreadyExists):
		return fault.Conflict(conflictMessage)
	default:
		return fault.Transient(err)
	}
}

const nameConflictMessage = "That name is not available, please try another one"

// --- Folders ---

// FolderPatch carries the updatable folder fields; nil means unchanged.
type FolderPatch struct {
	Name        *string
	Description *string
	Image       *string
}

// CreateFolder creates a folder owned by the principal.
func (e *Engine) CreateFolder(ctx context.Context, p auth.Principal, f *model.Folder) (*model.Folder, error) {
	f.ID = uuid.NewString()
	f.Creator = p.ID
	f.Files = []string{}

	if err := e.store.CreateFolder(ctx, f); err != nil {
		return nil, mapStoreErr(err, nameConflictMessage)
	}

	e.logger.Info("folder created", "folder", f.ID, "creator", p.ID)
	return f, nil
}

// GetFolder returns a folder the principal may view.
func (e *Engine) GetFolder(ctx context.Context, p auth.Principal, id string) (*model.Folder, error) {
	f, err := e.store.GetFolder(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "")
	}
	if err := e.authorize(ctx, p, f.Creator, guard.ActionView); err != nil {
		return nil, err
	}
	return f, nil
}

// UpdateFolder applies a patch to a folder the principal may edit.
func (e *Engine) UpdateFolder(ctx context.Context, p auth.Principal, id string, patch FolderPatch) (*model.Folder, error) {
	f, err := e.store.GetFolder(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "")
	}
	if err := e.authorize(ctx, p, f.Creator, guard.ActionEdit); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Description != nil {
		f.Description = *patch.Description
	}
	if patch.Image != nil {
		f.Image = *patch.Image
	}

	if err := e.store.UpdateFolder(ctx, f); err != nil {
		return nil, mapStoreErr(err, nameConflictMessage)
	}
	return f, nil
}

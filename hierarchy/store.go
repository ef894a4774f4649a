package hierarchy

import (
	"context"

	"github.com/jacentio/lattice/model"
	"github.com/jacentio/lattice/store"
)

// Store is the resource store boundary the engine operates through.
//
// Implementations return the store package's sentinel errors for expected
// conditions: store.ErrNotFound for absent or deleted records,
// store.ErrDuplicateValue for unique constraint violations,
// store.ErrParentNotFound when a container check fails, and
// store.ErrConcurrentModification when an optimistic lock loses.
type Store interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error

	GetFolder(ctx context.Context, id string) (*model.Folder, error)
	CreateFolder(ctx context.Context, f *model.Folder) error
	UpdateFolder(ctx context.Context, f *model.Folder) error
	DeleteFolder(ctx context.Context, f *model.Folder) error
	Folders(ctx context.Context, filter store.Filter) ([]*model.Folder, error)

	GetList(ctx context.Context, id string) (*model.List, error)
	CreateList(ctx context.Context, l *model.List) error
	UpdateList(ctx context.Context, l *model.List) error
	DeleteList(ctx context.Context, l *model.List) error
	Lists(ctx context.Context, filter store.Filter) ([]*model.List, error)

	GetTodo(ctx context.Context, id string) (*model.Todo, error)
	CreateTodo(ctx context.Context, t *model.Todo) error
	UpdateTodo(ctx context.Context, t *model.Todo) error
	DeleteTodo(ctx context.Context, t *model.Todo) error
}

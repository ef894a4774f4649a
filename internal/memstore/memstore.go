// Package memstore is an in-memory resource store used by tests.
//
// It mirrors the DynamoDB adapter's contract: sentinel errors from the store
// package, copies on read, unique constraints on usernames and folder names,
// container existence checks on create, and optimistic version bumps.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/jacentio/lattice/model"
	"github.com/jacentio/lattice/store"
)

// Store keeps every record in maps guarded by one mutex.
type Store struct {
	mu sync.Mutex

	users       map[string]*model.User
	usernames   map[string]string
	folders     map[string]*model.Folder
	folderNames map[string]string
	lists       map[string]*model.List
	todos       map[string]*model.Todo
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:       make(map[string]*model.User),
		usernames:   make(map[string]string),
		folders:     make(map[string]*model.Folder),
		folderNames: make(map[string]string),
		lists:       make(map[string]*model.List),
		todos:       make(map[string]*model.Todo),
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// --- Users ---

func (s *Store) GetUser(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *Store) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.ID]; exists {
		return store.ErrAlreadyExists
	}
	if _, taken := s.usernames[u.Username]; taken {
		return store.ErrDuplicateValue
	}

	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	u.Version = 1

	cp := *u
	s.users[u.ID] = &cp
	s.usernames[u.Username] = u.ID
	return nil
}

// --- Folders ---

func (s *Store) GetFolder(_ context.Context, id string) (*model.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyFolder(f), nil
}

func (s *Store) CreateFolder(_ context.Context, f *model.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.folders[f.ID]; exists {
		return store.ErrAlreadyExists
	}
	if _, taken := s.folderNames[f.Name]; taken {
		return store.ErrDuplicateValue
	}

	f.CreatedAt = now()
	f.UpdatedAt = f.CreatedAt
	f.Version = 1

	s.folders[f.ID] = copyFolder(f)
	s.folderNames[f.Name] = f.ID
	return nil
}

func (s *Store) UpdateFolder(_ context.Context, f *model.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.folders[f.ID]
	if !ok {
		return store.ErrNotFound
	}
	if cur.Version != f.Version {
		return store.ErrConcurrentModification
	}
	if f.Name != cur.Name {
		if owner, taken := s.folderNames[f.Name]; taken && owner != f.ID {
			return store.ErrDuplicateValue
		}
		delete(s.folderNames, cur.Name)
		s.folderNames[f.Name] = f.ID
	}

	f.Version++
	f.UpdatedAt = now()
	s.folders[f.ID] = copyFolder(f)
	return nil
}

func (s *Store) DeleteFolder(_ context.Context, f *model.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.folders[f.ID]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.folderNames, cur.Name)
	delete(s.folders, f.ID)
	return nil
}

func (s *Store) Folders(_ context.Context, filter store.Filter) ([]*model.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Folder
	for _, f := range s.folders {
		if filter.Creator != "" && f.Creator != filter.Creator {
			continue
		}
		out = append(out, copyFolder(f))
	}
	return out, nil
}

// --- Lists ---

func (s *Store) GetList(_ context.Context, id string) (*model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyList(l), nil
}

func (s *Store) CreateList(_ context.Context, l *model.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lists[l.ID]; exists {
		return store.ErrAlreadyExists
	}
	if l.Container != "" {
		if _, ok := s.folders[l.Container]; !ok {
			return store.ErrParentNotFound
		}
	}

	l.CreatedAt = now()
	l.UpdatedAt = l.CreatedAt
	l.Version = 1

	s.lists[l.ID] = copyList(l)
	return nil
}

func (s *Store) UpdateList(_ context.Context, l *model.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.lists[l.ID]
	if !ok {
		return store.ErrNotFound
	}
	if cur.Version != l.Version {
		return store.ErrConcurrentModification
	}

	l.Version++
	l.UpdatedAt = now()
	s.lists[l.ID] = copyList(l)
	return nil
}

func (s *Store) DeleteList(_ context.Context, l *model.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[l.ID]; !ok {
		return store.ErrNotFound
	}
	delete(s.lists, l.ID)
	return nil
}

func (s *Store) Lists(_ context.Context, filter store.Filter) ([]*model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.List
	for _, l := range s.lists {
		if filter.Creator != "" && l.Creator != filter.Creator {
			continue
		}
		if filter.FolderLess && l.Container != "" {
			continue
		}
		out = append(out, copyList(l))
	}
	return out, nil
}

// --- Todos ---

func (s *Store) GetTodo(_ context.Context, id string) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Store) CreateTodo(_ context.Context, t *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[t.ID]; exists {
		return store.ErrAlreadyExists
	}
	if _, ok := s.lists[t.Container]; !ok {
		return store.ErrParentNotFound
	}

	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt
	t.Version = 1

	cp := *t
	s.todos[t.ID] = &cp
	return nil
}

func (s *Store) UpdateTodo(_ context.Context, t *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.todos[t.ID]
	if !ok {
		return store.ErrNotFound
	}
	if cur.Version != t.Version {
		return store.ErrConcurrentModification
	}

	t.Version++
	t.UpdatedAt = now()
	cp := *t
	s.todos[t.ID] = &cp
	return nil
}

func (s *Store) DeleteTodo(_ context.Context, t *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.todos[t.ID]; !ok {
		return store.ErrNotFound
	}
	delete(s.todos, t.ID)
	return nil
}

func copyFolder(f *model.Folder) *model.Folder {
	cp := *f
	cp.Files = append([]string(nil), f.Files...)
	if cp.Files == nil {
		cp.Files = []string{}
	}
	return &cp
}

func copyList(l *model.List) *model.List {
	cp := *l
	cp.Todos = append([]string(nil), l.Todos...)
	if cp.Todos == nil {
		cp.Todos = []string{}
	}
	return &cp
}

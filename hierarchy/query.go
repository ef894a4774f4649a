package hierarchy

import (
	"context"
	"sort"

	"github.com/jacentio/lattice/auth"
	"github.com/jacentio/lattice/fault"
	"github.com/jacentio/lattice/model"
	"github.com/jacentio/lattice/store"
)

// DefaultPageLimit bounds page sizes; larger or unparseable requests are
// clamped to it silently, never rejected.
const DefaultPageLimit = 20

// ListOptions shapes a scoped, paginated listing.
type ListOptions struct {
	// Page is 1-based; values below 1 fall back to 1.
	Page int

	// Limit is clamped to DefaultPageLimit; 0 means the default.
	Limit int

	// SortProp selects the sort field. Unrecognized fields fall back to
	// creation order.
	SortProp string

	// SortOrder is "asc" or "desc".
	SortOrder string

	// All lifts the owner filter; honored only for admins.
	All bool

	// FolderLess restricts list queries to container-less lists.
	FolderLess bool
}

func (o *ListOptions) normalize() {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit <= 0 || o.Limit > DefaultPageLimit {
		o.Limit = DefaultPageLimit
	}
}

// Page is one page of a listing, mirroring the pagination contract shape.
type Page[T any] struct {
	Docs  []T `json:"docs"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ListFolders returns the principal's folders, paginated. Admins may pass
// All to list every user's folders.
func (e *Engine) ListFolders(ctx context.Context, p auth.Principal, opts ListOptions) (*Page[*model.Folder], error) {
	opts.normalize()

	filter := store.Filter{Creator: p.ID}
	if p.IsAdmin && opts.All {
		filter.Creator = ""
	}

	folders, err := e.store.Folders(ctx, filter)
	if err != nil {
		return nil, fault.Transient(err)
	}

	sortRecords(folders, opts, func(f *model.Folder) (string, string) { return f.Name, f.CreatedAt })
	docs, total := slicePage(folders, opts)

	return &Page[*model.Folder]{Docs: docs, Total: total, Page: opts.Page, Limit: opts.Limit}, nil
}

// ListLists returns the principal's todo lists, paginated. FolderLess
// restricts to lists outside any folder.
func (e *Engine) ListLists(ctx context.Context, p auth.Principal, opts ListOptions) (*Page[*model.List], error) {
	opts.normalize()

	filter := store.Filter{Creator: p.ID, FolderLess: opts.FolderLess}
	if p.IsAdmin && opts.All {
		filter.Creator = ""
	}

	lists, err := e.store.Lists(ctx, filter)
	if err != nil {
		return nil, fault.Transient(err)
	}

	sortRecords(lists, opts, func(l *model.List) (string, string) { return l.Name, l.CreatedAt })
	docs, total := slicePage(lists, opts)

	return &Page[*model.List]{Docs: docs, Total: total, Page: opts.Page, Limit: opts.Limit}, nil
}

// sortRecords orders records by the requested property. Unknown properties
// keep creation order.
func sortRecords[T any](records []T, opts ListOptions, keys func(T) (name, createdAt string)) {
	var less func(a, b T) bool
	switch opts.SortProp {
	case "name":
		less = func(a, b T) bool {
			na, _ := keys(a)
			nb, _ := keys(b)
			return na < nb
		}
	case "createdAt":
		less = func(a, b T) bool {
			_, ca := keys(a)
			_, cb := keys(b)
			return ca < cb
		}
	default:
		less = func(a, b T) bool {
			_, ca := keys(a)
			_, cb := keys(b)
			return ca < cb
		}
	}

	if opts.SortOrder == "desc" {
		inner := less
		less = func(a, b T) bool { return inner(b, a) }
	}

	sort.SliceStable(records, func(i, j int) bool { return less(records[i], records[j]) })
}

// slicePage cuts the requested page out of the full result set.
func slicePage[T any](records []T, opts ListOptions) ([]T, int) {
	total := len(records)
	start := (opts.Page - 1) * opts.Limit
	if start >= total {
		return []T{}, total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return records[start:end], total
}

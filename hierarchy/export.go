package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jacentio/lattice/auth"
	"github.com/jacentio/lattice/fault"
	"github.com/jacentio/lattice/guard"
	"github.com/jacentio/lattice/store"
)

// ExportFilename is the download name for an exported list.
const ExportFilename = "todo-download.txt"

// ExportList renders a list's todos as a newline-delimited text document:
// the containing folder's name (when any), the list name, then one bulleted
// line per todo description.
func (e *Engine) ExportList(ctx context.Context, p auth.Principal, listID string) (string, error) {
	l, err := e.loadAuthorizedList(ctx, p, listID, guard.ActionView)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	if l.Container != "" {
		f, err := e.store.GetFolder(ctx, l.Container)
		if err == nil {
			fmt.Fprintf(&b, "%s\n", f.Name)
		} else if !errors.Is(err, store.ErrNotFound) {
			return "", fault.Transient(err)
		}
	}

	fmt.Fprintf(&b, "%s: \n\n", l.Name)

	todos, err := e.TodosInList(ctx, p, listID)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(todos))
	for _, t := range todos {
		lines = append(lines, "• "+t.Description)
	}
	b.WriteString(strings.Join(lines, "\n"))

	return b.String(), nil
}

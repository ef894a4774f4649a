package model

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/lattice/store"
)

// Interface compliance.
var (
	_ store.Entity           = (*User)(nil)
	_ store.UniqueFielder    = (*User)(nil)
	_ store.Entity           = (*Folder)(nil)
	_ store.UniqueFielder    = (*Folder)(nil)
	_ store.Entity           = (*List)(nil)
	_ store.ContainerChecker = (*List)(nil)
	_ store.Entity           = (*Todo)(nil)
	_ store.ContainerChecker = (*Todo)(nil)
)

func TestEntityRefs(t *testing.T) {
	tests := []struct {
		entity store.Entity
		ref    string
		table  string
		etype  string
	}{
		{&User{ID: "u1"}, "user#u1", UsersTable, "user"},
		{&Folder{ID: "f1"}, "folder#f1", FoldersTable, "folder"},
		{&List{ID: "l1"}, "list#l1", ListsTable, "list"},
		{&Todo{ID: "t1"}, "todo#t1", TodosTable, "todo"},
	}

	for _, tt := range tests {
		if got := tt.entity.EntityRef(); got != tt.ref {
			t.Errorf("expected ref %q, got %q", tt.ref, got)
		}
		if got := tt.entity.TableName(); got != tt.table {
			t.Errorf("expected table %q, got %q", tt.table, got)
		}
		if got := tt.entity.EntityType(); got != tt.etype {
			t.Errorf("expected type %q, got %q", tt.etype, got)
		}
	}
}

func TestListContainerCheck(t *testing.T) {
	loose := &List{ID: "l1"}
	if loose.ContainerCheck() != nil {
		t.Error("expected nil check for a folder-less list")
	}

	contained := &List{ID: "l1", Container: "f1"}
	check := contained.ContainerCheck()
	if check == nil {
		t.Fatal("expected a check for a contained list")
	}
	if check.TableName != FoldersTable {
		t.Errorf("expected table %q, got %q", FoldersTable, check.TableName)
	}
	if v, ok := check.Key["id"].(*types.AttributeValueMemberS); !ok || v.Value != "f1" {
		t.Errorf("expected key id=f1, got %v", check.Key)
	}
}

func TestTodoContainerCheck(t *testing.T) {
	td := &Todo{ID: "t1", Container: "l1"}
	check := td.ContainerCheck()
	if check == nil {
		t.Fatal("expected todos to always carry a container check")
	}
	if check.TableName != ListsTable {
		t.Errorf("expected table %q, got %q", ListsTable, check.TableName)
	}
}

func TestFolderFileSet(t *testing.T) {
	f := &Folder{}

	f.AddFile("l1")
	f.AddFile("l2")
	f.AddFile("l1")
	if len(f.Files) != 2 {
		t.Errorf("expected AddFile to be idempotent, got %v", f.Files)
	}

	f.RemoveFile("l1")
	if f.ContainsFile("l1") || !f.ContainsFile("l2") {
		t.Errorf("unexpected file set after removal: %v", f.Files)
	}

	// Removing an absent entry is a no-op.
	f.RemoveFile("l9")
	if len(f.Files) != 1 {
		t.Errorf("expected 1 file, got %v", f.Files)
	}
}

func TestListTodoSet(t *testing.T) {
	l := &List{}

	l.AddTodo("t1")
	l.AddTodo("t2")
	l.AddTodo("t1")
	if len(l.Todos) != 2 {
		t.Errorf("expected AddTodo to be idempotent, got %v", l.Todos)
	}

	l.RemoveTodo("t1")
	if l.HasTodo("t1") || !l.HasTodo("t2") {
		t.Errorf("unexpected todo set after removal: %v", l.Todos)
	}
}

func TestUniqueFields(t *testing.T) {
	u := &User{Username: "alice"}
	if got := u.UniqueFields()["username"]; got != "alice" {
		t.Errorf("expected username constraint, got %v", u.UniqueFields())
	}
	if u.UniqueScope() != "users" {
		t.Errorf("unexpected scope %q", u.UniqueScope())
	}

	f := &Folder{Name: "Work"}
	if got := f.UniqueFields()["name"]; got != "Work" {
		t.Errorf("expected name constraint, got %v", f.UniqueFields())
	}
	if f.UniqueScope() != "folders" {
		t.Errorf("unexpected scope %q", f.UniqueScope())
	}
}

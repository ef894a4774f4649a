package shard

import (
	"regexp"
	"testing"
)

func TestConstraintPK_Deterministic(t *testing.T) {
	a := ConstraintPK("folders", "folder", "name", "Work")
	b := ConstraintPK("folders", "folder", "name", "Work")
	if a != b {
		t.Errorf("same inputs produced %q and %q", a, b)
	}
}

func TestConstraintPK_Distinct(t *testing.T) {
	// Every component participates in the key.
	tests := []struct {
		name  string
		scope string
		etype string
		field string
		value string
	}{
		{"different value", "folders", "folder", "name", "Personal"},
		{"different field", "folders", "folder", "label", "Work"},
		{"different type", "folders", "list", "name", "Work"},
		{"different scope", "users", "folder", "name", "Work"},
	}

	base := ConstraintPK("folders", "folder", "name", "Work")
	for _, tt := range tests {
		got := ConstraintPK(tt.scope, tt.etype, tt.field, tt.value)
		if got == base {
			t.Errorf("%s: expected a different key, got %q", tt.name, got)
		}
	}
}

func TestConstraintPK_Format(t *testing.T) {
	// 128-bit hash rendered as 32 hex characters.
	pk := ConstraintPK("users", "user", "username", "alice")
	if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(pk) {
		t.Errorf("expected 32 hex chars, got %q", pk)
	}
}

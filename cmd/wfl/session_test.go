package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mgomes/wfl/wfl"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	s, err := newSession(skirmishPath, "konrad", nil)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return s
}

func TestSessionRunQueries(t *testing.T) {
	s := newTestSession(t)
	tests := []struct {
		line string
		want string
	}{
		{"me.hitpoints", "36"},
		{"units.2.id", "bones"},
		{"unit_types.Skeleton.race", "undead"},
		{"42", "42"},
		{`"spear"`, "spear"},
		{"loc(3,1)", "loc(3,1)"},
		{"me.wings ?? 0", "0"},
		{"me.wings ?? current_loc", "loc(2,2)"},
		{"me.wings ?? object.me.id", "konrad"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := s.run(context.Background(), tt.line)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("%s = %q, want %q", tt.line, got.String(), tt.want)
			}
		})
	}
}

func TestSessionAssignmentBindsLocal(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.run(context.Background(), "home = me.loc"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	got, err := s.run(context.Background(), "home.x")
	if err != nil || got.Int() != 2 {
		t.Fatalf("home.x = %v, %v", got, err)
	}

	if _, err := s.run(context.Background(), "me = 1"); err != nil {
		t.Fatalf("shadowing assignment: %v", err)
	}
	if got, _ := s.run(context.Background(), "me"); got.Int() != 1 {
		t.Fatalf("locals should shadow bindings, got %v", got)
	}

	s.resetLocals()
	if _, err := s.run(context.Background(), "home"); !errors.Is(err, wfl.ErrAttributeNotFound) {
		t.Fatalf("reset should drop locals, got %v", err)
	}
	if got, _ := s.run(context.Background(), "me.id"); got.String() != "konrad" {
		t.Fatalf("bindings should survive reset, got %v", got)
	}
}

func TestSessionReloadKeepsLocals(t *testing.T) {
	data, err := os.ReadFile(skirmishPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	path := filepath.Join(t.TempDir(), "skirmish.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := newSession(path, "", nil)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if _, err := s.run(context.Background(), "kept = 7"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := s.reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got, _ := s.run(context.Background(), "kept"); got.Int() != 7 {
		t.Fatalf("locals lost on reload")
	}

	if err := os.WriteFile(path, []byte("name: [broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.reload(); err == nil {
		t.Fatalf("expected reload error")
	}
	if got, _ := s.run(context.Background(), "config.turns"); got.Int() != 12 {
		t.Fatalf("a failed reload must keep the previous world")
	}
}

func TestSessionCanceledContext(t *testing.T) {
	s := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.run(ctx, "me.wings ?? 0")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestSplitAssignment(t *testing.T) {
	tests := []struct {
		line string
		name string
		ok   bool
	}{
		{"a = 1", "a", true},
		{"a == 1", "", false},
		{"me.x = 1", "", false},
		{"me.x", "", false},
	}
	for _, tt := range tests {
		name, _, ok := splitAssignment(tt.line)
		if ok != tt.ok || name != tt.name {
			t.Fatalf("splitAssignment(%q) = %q, %v", tt.line, name, ok)
		}
	}
}

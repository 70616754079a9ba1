package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcherRelevantEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skirmish.yaml")
	sw, err := newScenarioWatcher(path)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer sw.Close()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"rename", fsnotify.Event{Name: path, Op: fsnotify.Rename}, true},
		{"chmod", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: path, Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(dir, "other.yaml"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sw.relevant(tt.event); got != tt.want {
				t.Fatalf("relevant = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skirmish.yaml")
	sw, err := newScenarioWatcher(path)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer sw.Close()

	msgs := make(chan any, 1)
	go func() { msgs <- sw.wait()() }()

	if err := os.WriteFile(path, []byte("name: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case msg := <-msgs:
		if _, ok := msg.(scenarioChangedMsg); !ok {
			t.Fatalf("expected scenarioChangedMsg, got %T", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported")
	}
}

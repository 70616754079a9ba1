package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type scenarioChangedMsg struct{}

type watchErrorMsg struct{ err error }

// scenarioWatcher reports edits to one scenario file. The parent directory
// is watched so editors that save by rename are still seen.
type scenarioWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

func newScenarioWatcher(path string) (*scenarioWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve scenario path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &scenarioWatcher{watcher: w, path: abs}, nil
}

// wait blocks until the next relevant event and reports it as a message.
func (sw *scenarioWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-sw.watcher.Events:
				if !ok {
					return nil
				}
				if sw.relevant(event) {
					return scenarioChangedMsg{}
				}
			case err, ok := <-sw.watcher.Errors:
				if !ok {
					return nil
				}
				return watchErrorMsg{err: err}
			}
		}
	}
}

func (sw *scenarioWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	if filepath.Clean(event.Name) != sw.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (sw *scenarioWatcher) Close() error {
	return sw.watcher.Close()
}

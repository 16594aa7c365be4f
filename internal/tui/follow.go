package tui

import (
	"fmt"
	"path/filepath"

	"github.com/NikitaCOEUR/chatcomplete/internal/history"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type logReloadedMsg struct {
	view  string
	lines []history.Line
	err   error
}

type followErrMsg struct {
	err error
}

// Follower reloads channel logs when they change on disk. Directories are
// watched rather than files so logs rewritten by rename are still seen.
type Follower struct {
	w *fsnotify.Watcher
	// cleaned log path -> view name
	views map[string]string
}

// NewFollower watches the log of every view in paths (view name -> path)
func NewFollower(paths map[string]string) (*Follower, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	f := &Follower{w: w, views: make(map[string]string, len(paths))}
	dirs := make(map[string]bool)
	for view, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		f.views[abs] = view
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return f, nil
}

// Wait returns a command that blocks until a followed log changes and
// yields its reloaded lines
func (f *Follower) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-f.w.Events:
				if !ok {
					return nil
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				path, err := filepath.Abs(ev.Name)
				if err != nil {
					continue
				}
				view, ok := f.views[path]
				if !ok {
					continue
				}
				lines, err := history.LoadFile(path)
				return logReloadedMsg{view: view, lines: lines, err: err}

			case err, ok := <-f.w.Errors:
				if !ok {
					return nil
				}
				return followErrMsg{err: err}
			}
		}
	}
}

// Close stops watching
func (f *Follower) Close() error {
	return f.w.Close()
}

package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DBChangedMsg reports that the database file changed on disk.
type DBChangedMsg struct{}

// Watcher notifies the GUI when the database file is modified outside
// the program, e.g. by a partdb add in another terminal.
type Watcher struct {
	fsw  *fsnotify.Watcher
	path string
	log  *zap.Logger
}

// NewWatcher watches the database file for changes. The containing
// directory is watched so that replace-on-write updates are seen too.
func NewWatcher(dbPath string, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(dbPath)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{fsw: fsw, path: dbPath, log: log}, nil
}

// Wait returns a command that blocks until the database file changes.
func (w *Watcher) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.fsw.Events:
				if !ok {
					return nil
				}
				if event.Name != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				w.log.Debug("database file changed", zap.String("op", event.Op.String()))
				return DBChangedMsg{}
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return nil
				}
				w.log.Warn("file watcher error", zap.Error(err))
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

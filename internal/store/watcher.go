// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the entity collections behind the sidebar.
package store

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/quillchat/quill-tui/internal/model"
)

// =============================================================================
// FOLDER DOCUMENT WATCHER
// =============================================================================

// Watcher observes the folder document for external writes and reports the
// reloaded collection. Saves are atomic renames, so the watch is placed on
// the parent directory and filtered by file name.
//
// Events are debounced: editors and atomic writers emit bursts of
// notifications for a single logical change.
type Watcher struct {
	file     *FolderFile
	onChange func([]model.Folder)
	onError  func(error)

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// debounceWindow is how long to wait after the last event before reloading.
const debounceWindow = 100 * time.Millisecond

// NewWatcher starts watching the folder document. onChange receives every
// successfully reloaded collection; onError (optional) receives reload and
// watch failures.
func NewWatcher(file *FolderFile, onChange func([]model.Folder), onError func(error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(file.Path())); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch folder directory: %w", err)
	}

	w := &Watcher{
		file:     file,
		onChange: onChange,
		onError:  onError,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher. Pending reloads are dropped.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	target := filepath.Base(w.file.Path())

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceWindow)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			folders, err := w.file.Load()
			if err != nil {
				if w.onError != nil {
					w.onError(err)
				}
				continue
			}
			w.onChange(folders)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

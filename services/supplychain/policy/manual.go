// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package policy holds the supplier policy manual: the static reference
// text used as grounding context for generated recommendations.
//
// A sample manual is embedded in the binary and used by default. When a
// manual path is configured, the file replaces the embedded text and is
// re-read in full whenever it changes on disk. The manual is never mutated
// in place; readers always see either the previous or the fresh load.
package policy

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// SampleManual holds the embedded sample supplier quality manual.
//
//go:embed supplier_quality_manual.txt
var SampleManual string

// Manual is an immutable-by-convention block of policy text shared
// read-only by the recommendation generator. Safe for concurrent readers.
type Manual struct {
	mu   sync.RWMutex
	text string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewManual returns a manual holding the embedded sample text.
func NewManual() *Manual {
	return &Manual{text: SampleManual}
}

// NewManualFromFile loads the manual from a file, falling back to the
// embedded sample if the file cannot be read.
func NewManualFromFile(path string) *Manual {
	m := NewManual()
	if err := m.reload(path); err != nil {
		slog.Warn("Could not read policy manual file, using embedded sample",
			"path", path, "error", err)
	}
	return m
}

// Text returns the full manual text.
func (m *Manual) Text() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.text
}

// Excerpt returns the first n characters of the manual, counted in runes so
// a multi-byte character is never split.
func (m *Manual) Excerpt(n int) string {
	text := m.Text()
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// reload replaces the manual text with a fresh load of the file.
func (m *Manual) reload(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manual: %w", err)
	}
	if len(content) == 0 {
		return fmt.Errorf("manual file %s is empty", path)
	}
	m.mu.Lock()
	m.text = string(content)
	m.mu.Unlock()
	return nil
}

// Watch re-loads the manual whenever the file changes. The watch runs until
// Close is called. Watch errors are logged; the current text stays in place.
func (m *Manual) Watch(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create manual watcher: %w", err)
	}
	// Watch the directory: editors often replace files via rename, which
	// drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch manual directory: %w", err)
	}

	m.watcher = watcher
	m.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if err := m.reload(path); err != nil {
					slog.Warn("Policy manual reload failed, keeping previous text",
						"path", path, "error", err)
					continue
				}
				slog.Info("Policy manual reloaded", "path", path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("Policy manual watcher error", "error", err)
			case <-m.done:
				return
			}
		}
	}()
	return nil
}

// Close stops the file watch, if one is running.
func (m *Manual) Close() {
	if m.watcher != nil {
		close(m.done)
		m.watcher.Close()
		m.watcher = nil
	}
}

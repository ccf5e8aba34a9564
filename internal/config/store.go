// Package config loads, defaults, and persists the fluestern settings file.
//
// The on-disk format is the line-oriented KEY="value" layout the
// transcription pipeline also reads: one assignment per line, blank lines
// and #-comments ignored. Values containing newlines (the system prompt)
// do not survive a round trip through this format: only the first line is
// read back. Known limitation of the shared file format.
package config

import "strings"

// Store holds the in-memory settings map backed by the settings file.
type Store struct {
	path   string
	values map[string]string
}

// Path returns the file this store loads from and saves to.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value for key, or fallback when the key is absent.
func (s *Store) Get(key, fallback string) string {
	if v, ok := s.values[key]; ok {
		return v
	}
	return fallback
}

// Set updates key in memory only. Call Save to persist.
func (s *Store) Set(key, value string) {
	s.values[key] = value
}

// overlay parses file content onto the current values, best effort.
// Malformed lines are skipped, never fatal. Unknown keys are kept in
// memory but will not be written back by Save.
func (s *Store) overlay(content string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"`)
		value = strings.Trim(value, `'`)
		s.values[key] = value
	}
}

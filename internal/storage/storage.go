// Package storage holds the flat-file primitives behind the food and
// debt repos. Every document is read and rewritten wholesale; a missing
// or unreadable file is the empty state, not an error.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
)

type Store struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Store {
	return &Store{log: log}
}

// ReadJSON decodes path into v. It reports found=false when the file is
// missing or does not decode (logged, state treated as empty), and
// returns an error only for unrecoverable I/O failures.
func (s *Store) ReadJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("corrupt JSON file, treating as empty")
		return false, nil
	}
	return true, nil
}

// WriteJSON rewrites path with the encoding of v, creating missing
// parent directories.
func (s *Store) WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Remove deletes path. Removing an absent file is not an error.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// ReadLines returns the non-blank, whitespace-trimmed lines of path.
// A missing file yields an empty result; read errors are logged and
// likewise yield an empty result.
func (s *Store) ReadLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error().Err(err).Str("path", path).Msg("read lines failed, treating as empty")
		}
		return nil
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// AppendLine appends one line to path, creating the file and its parent
// directories if needed.
func (s *Store) AppendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	return nil
}

// WriteLines rewrites path with the newline-joined lines.
func (s *Store) WriteLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Lock takes an advisory lock guarding a load-mutate-store cycle on
// path. Two bot processes pointed at the same data directory would
// otherwise silently drop overlapping writes.
func (s *Store) Lock(path string) (release func(), err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir for %s: %w", path, err)
	}
	fl := flock.New(path + ".lock")
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			s.log.Error().Err(err).Str("path", path).Msg("unlock failed")
		}
	}, nil
}

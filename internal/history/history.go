// Package history keeps the bounded, most-recent-first list of launched
// application ids in a flat text file, one id per line.
//
// The file is not locked. Two launchers recording at the same time can lose
// one of the updates (last writer wins).
package history

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load returns at most limit ids from the history file at path, in file
// order. A missing file, or limit <= 0, yields an empty history.
func Load(path string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	ids := make([]string, 0, min(limit, 64))
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() && len(ids) < limit {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Push returns history with id moved (or inserted) to the front, truncated
// to limit. history is not modified.
func Push(history []string, id string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}

	result := make([]string, 0, min(len(history)+1, limit))
	result = append(result, id)
	for _, h := range history {
		if len(result) >= limit {
			break
		}
		if h != id {
			result = append(result, h)
		}
	}
	return result
}

// Record moves id to the front of the history file at path, keeping at most
// limit ids. With limit <= 0 history is disabled and nothing is written.
func Record(path, id string, limit int) error {
	if limit <= 0 {
		return nil
	}

	current, err := Load(path, limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	return write(path, Push(current, id, limit))
}

// write replaces the file at path with ids, via a temp file and rename so a
// crash never leaves a half-written history behind.
func write(path string, ids []string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.WriteString(strings.Join(ids, "\n")); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close history: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to chmod history: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace history: %w", err)
	}

	success = true
	return nil
}

// Store binds a history file to its size limit.
type Store struct {
	Path  string
	Limit int
}

// Load returns the stored history. See Load.
func (s Store) Load() ([]string, error) {
	return Load(s.Path, s.Limit)
}

// Record moves id to the front of the stored history. See Record.
func (s Store) Record(id string) error {
	return Record(s.Path, id, s.Limit)
}

package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jiggak/waymenu/internal/errors"
)

// MenuItem is one element of the menu definitions JSON array.
type MenuItem struct {
	Label *string   `json:"label"`
	Icon  string    `json:"icon,omitempty"`
	Exec  *[]string `json:"exec,omitempty"`
}

// ParseMenu decodes a JSON array of menu definitions into entries, keeping
// input order. Items with an exec array become Exec entries, the rest Echo.
// A missing label or an exec array that is empty (or starts with an empty
// program) fails the whole menu.
func ParseMenu(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIO("failed to read menu definitions", err)
	}

	var items []MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.NewInvalidMenu(fmt.Sprintf("invalid menu JSON: %v", err))
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		entry, err := item.toEntry(i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (m MenuItem) toEntry(index int) (Entry, error) {
	if m.Label == nil || *m.Label == "" {
		return Entry{}, errors.NewInvalidMenuItem(index, "", "label is required")
	}
	label := *m.Label

	var action Action = Echo{}
	if m.Exec != nil {
		argv := *m.Exec
		if len(argv) == 0 || argv[0] == "" {
			return Entry{}, errors.NewInvalidMenuItem(index, label, "exec[0] required for command to execute")
		}
		action = Exec{Argv: append([]string(nil), argv...)}
	}

	var icon Icon
	if m.Icon != "" {
		icon = FileIcon{Path: m.Icon}
	}

	return Entry{
		ID:        label,
		Label:     label,
		MatchText: label,
		Icon:      icon,
		Action:    action,
	}, nil
}

// LoadMenu parses menu definitions from the file at path, or from stdin
// when path is empty. Only one of the two sources is read.
func LoadMenu(path string, stdin io.Reader) ([]Entry, error) {
	if path == "" {
		return ParseMenu(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO(fmt.Sprintf("failed to open menu file %s", path), err)
	}
	defer f.Close()

	return ParseMenu(f)
}

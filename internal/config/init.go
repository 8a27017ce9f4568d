package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteDefaults writes the built-in config and style files to configPath and
// stylePath. Existing files are never overwritten; a refusal is reported on
// stderr and the next file is still attempted. Only I/O failures are returned.
func WriteDefaults(configPath, stylePath string, stdout, stderr io.Writer) error {
	files := []struct {
		path    string
		content []byte
	}{
		{configPath, defaultConfig},
		{stylePath, defaultStyle},
	}

	for _, f := range files {
		created, err := writeFileIfNotExists(f.path, f.content)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(stdout, "Created %s\n", f.path)
		} else {
			fmt.Fprintf(stderr, "%s already exists, refusing to overwrite\n", f.path)
		}
	}
	return nil
}

// writeFileIfNotExists creates path with content unless it already exists.
func writeFileIfNotExists(path string, content []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create directory: %w", err)
	}

	// O_EXCL so a file appearing after the Stat is still not clobbered.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return false, err
	}
	return true, f.Close()
}

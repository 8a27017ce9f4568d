package catalog

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jiggak/waymenu/internal/logging"
)

// Registry indexes the desktop entries installed on the system by desktop id.
type Registry struct {
	apps  map[string]*Application
	order []string

	// Desktops is the list of current desktop environments used for
	// OnlyShowIn/NotShowIn.
	Desktops []string
	// LookPath resolves TryExec. Defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

// ApplicationDirs returns the XDG application directories in priority order:
// $XDG_DATA_HOME/applications then each $XDG_DATA_DIRS/applications.
func ApplicationDirs() []string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}

	dirs := []string{filepath.Join(dataHome, "applications")}
	for _, d := range filepath.SplitList(dataDirs) {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "applications"))
		}
	}
	return dirs
}

// CurrentDesktops returns $XDG_CURRENT_DESKTOP split on ':'.
func CurrentDesktops() []string {
	var out []string
	for _, d := range strings.Split(os.Getenv("XDG_CURRENT_DESKTOP"), ":") {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// LoadRegistry scans the XDG application directories.
func LoadRegistry() *Registry {
	reg := ScanRegistry(ApplicationDirs())
	reg.Desktops = CurrentDesktops()
	return reg
}

// ScanRegistry reads every *.desktop file below dirs. When two directories
// provide the same desktop id, the one listed first wins. Unreadable
// directories and files are skipped.
func ScanRegistry(dirs []string) *Registry {
	reg := &Registry{
		apps:     make(map[string]*Application),
		LookPath: exec.LookPath,
	}

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(path, ".desktop") {
				return nil
			}

			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return nil
			}
			id := strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
			if _, exists := reg.apps[id]; exists {
				return nil
			}

			app, err := readDesktopFile(path)
			if err != nil {
				logging.Debugf("Skipping %s: %v", path, err)
				return nil
			}
			app.ID = id
			app.Path = path

			reg.apps[id] = app
			reg.order = append(reg.order, id)
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logging.Debugf("Scanning %s: %v", dir, err)
		}
	}

	logging.Debugf("Loaded %d desktop entries", len(reg.order))
	return reg
}

func readDesktopFile(path string) (*Application, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDesktopEntry(f)
}

// Lookup resolves a desktop id to its application.
func (r *Registry) Lookup(id string) (*Application, bool) {
	app, ok := r.apps[id]
	return app, ok
}

// Len returns the number of indexed desktop entries, shown or not.
func (r *Registry) Len() int {
	return len(r.order)
}

// FromRegistry returns one DesktopApp entry per application that should be
// shown, in registry scan order.
func FromRegistry(r *Registry) []Entry {
	entries := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		app := r.apps[id]
		if !app.ShouldShow(r.Desktops, r.LookPath) {
			continue
		}
		entries = append(entries, Entry{
			ID:        app.ID,
			Label:     app.Name,
			MatchText: app.Executable(),
			Icon:      iconFor(app.Icon),
			Action:    DesktopApp{},
		})
	}
	return entries
}

func iconFor(icon string) Icon {
	switch {
	case icon == "":
		return nil
	case filepath.IsAbs(icon):
		return FileIcon{Path: icon}
	default:
		return SystemIcon{Name: icon}
	}
}

// Package launch dispatches the action bound to a chosen catalog entry.
package launch

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/jiggak/waymenu/internal/catalog"
	"github.com/jiggak/waymenu/internal/errors"
	"github.com/jiggak/waymenu/internal/logging"
)

// Resolver maps a desktop id back to its application descriptor.
type Resolver interface {
	Lookup(id string) (*catalog.Application, bool)
}

// Recorder persists a successful application launch.
type Recorder interface {
	Record(id string) error
}

// SpawnFunc starts argv detached in dir (empty for the current directory).
type SpawnFunc func(argv []string, dir string) error

// Dispatcher executes launch actions.
type Dispatcher struct {
	// Apps resolves DesktopApp entries. Required only for the launcher catalog.
	Apps Resolver
	// History records DesktopApp launches. Nil disables recording.
	History Recorder
	// Stdout receives Echo output.
	Stdout io.Writer
	// Spawn starts processes. Defaults to a detached spawn in a new session.
	Spawn SpawnFunc
	// Terminal wraps Terminal=true applications, e.g. ["foot", "-e"].
	Terminal []string
}

// Launch executes the action of entry. It returns a *errors.WaymenuError
// with code UNKNOWN_APPLICATION, SPAWN or IO on failure. A failure to record
// history is logged and never returned.
func (d *Dispatcher) Launch(entry catalog.Entry) error {
	switch action := entry.Action.(type) {
	case catalog.DesktopApp:
		return d.launchApp(entry.ID)
	case catalog.Echo:
		return d.echo(entry.ID)
	case catalog.Exec:
		return d.exec(action.Argv)
	default:
		return errors.NewInternal(fmt.Errorf("unsupported launch action %T", entry.Action))
	}
}

func (d *Dispatcher) launchApp(id string) error {
	if d.Apps == nil {
		return errors.NewUnknownApplication(id)
	}
	app, ok := d.Apps.Lookup(id)
	if !ok {
		return errors.NewUnknownApplication(id)
	}

	argv, err := app.CommandLine()
	if err != nil {
		return errors.NewSpawn(id, err)
	}
	if app.Terminal {
		argv = slices.Concat(d.terminal(), argv)
	}

	if err := d.spawn(argv, app.WorkDir); err != nil {
		return errors.NewSpawn(argv[0], err)
	}
	logging.Debugf("Launched %s (%v)", id, argv)

	if d.History != nil {
		if err := d.History.Record(id); err != nil {
			logging.Errorf("Error %v saving launch history", err)
		}
	}
	return nil
}

func (d *Dispatcher) echo(id string) error {
	out := d.Stdout
	if out == nil {
		out = os.Stdout
	}
	if _, err := fmt.Fprintln(out, id); err != nil {
		return errors.NewIO("failed to write selection", err)
	}
	return nil
}

func (d *Dispatcher) exec(argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return errors.NewInternal(fmt.Errorf("exec[0] required for command to execute"))
	}
	if err := d.spawn(argv, ""); err != nil {
		return errors.NewSpawn(argv[0], err)
	}
	logging.Debugf("Spawned %v", argv)
	return nil
}

func (d *Dispatcher) spawn(argv []string, dir string) error {
	if d.Spawn != nil {
		return d.Spawn(argv, dir)
	}
	return SpawnDetached(argv, dir)
}

func (d *Dispatcher) terminal() []string {
	if len(d.Terminal) > 0 {
		return d.Terminal
	}
	return DefaultTerminal()
}

// DefaultTerminal returns $TERMINAL -e, or xterm -e when unset.
func DefaultTerminal() []string {
	if t := os.Getenv("TERMINAL"); t != "" {
		return []string{t, "-e"}
	}
	return []string{"xterm", "-e"}
}

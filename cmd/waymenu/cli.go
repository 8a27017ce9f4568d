package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/jiggak/waymenu/internal/catalog"
	"github.com/jiggak/waymenu/internal/config"
	"github.com/jiggak/waymenu/internal/errors"
	"github.com/jiggak/waymenu/internal/history"
	"github.com/jiggak/waymenu/internal/launch"
	"github.com/jiggak/waymenu/internal/logging"
	"github.com/jiggak/waymenu/internal/ui"
)

// runUI shows an interactive session. Tests replace it.
var runUI = ui.Run

func init() {
	// -v belongs to --verbose.
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "print the version"}
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:      "waymenu",
		Usage:     "Application launcher and custom menus in the terminal",
		Version:   Version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags(),
		Before: func(c *cli.Context) error {
			logging.SetVerbose(c.Bool("verbose"))
			return nil
		},
		Commands: []*cli.Command{
			launcherCmd(),
			menuCmd(),
			initConfigCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to config.jsonc"},
		&cli.StringFlag{Name: "style", Aliases: []string{"s"}, Usage: "Path to style.jsonc"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, EnvVars: []string{"WAYMENU_DEBUG"}, Usage: "Log debug messages to stderr"},
		&cli.IntFlag{Name: "width", Usage: "Window width in cells"},
		&cli.IntFlag{Name: "height", Usage: "Window height in cells"},
		&cli.StringFlag{Name: "orientation", Usage: "List orientation: vertical|horizontal"},
		&cli.BoolFlag{Name: "hide-search", Usage: "Hide the search field"},
		&cli.IntFlag{Name: "history-size", Usage: "Number of recent launches to keep (0 disables history)"},
	}
}

// launcherCmd creates the launcher command.
func launcherCmd() *cli.Command {
	return &cli.Command{
		Name:  "launcher",
		Usage: "Search and launch installed applications",
		Action: func(c *cli.Context) error {
			settings, style, err := loadSettings(c)
			if err != nil {
				return outputError(err)
			}

			reg := catalog.LoadRegistry()
			logging.Debugf("Found %d applications", reg.Len())

			store := history.Store{Path: config.HistoryPath(), Limit: settings.HistorySize}
			recent, err := store.Load()
			if err != nil {
				logging.Errorf("Error %v loading launch history", err)
				recent = nil
			}

			dispatcher := &launch.Dispatcher{
				Apps:    reg,
				History: store,
			}
			opts := ui.Options{Settings: settings, Style: style}
			return runSession(c.App.Writer, catalog.FromRegistry(reg), recent, opts, dispatcher)
		},
	}
}

// menuCmd creates the menu command.
func menuCmd() *cli.Command {
	return &cli.Command{
		Name:      "menu",
		Usage:     "Show a custom menu (reads JSON from FILE or stdin)",
		ArgsUsage: "[FILE]",
		Action: func(c *cli.Context) error {
			settings, style, err := loadSettings(c)
			if err != nil {
				return outputError(err)
			}

			path := c.Args().First()
			if path == "" && isTerminal(c.App.Reader) {
				return outputError(errors.NewInvalidMenu("menu definitions must be given as FILE or piped via stdin"))
			}

			entries, err := catalog.LoadMenu(path, c.App.Reader)
			if err != nil {
				return outputError(err)
			}
			logging.Debugf("Loaded %d menu items", len(entries))

			opts := ui.Options{Settings: settings, Style: style, KeepOrder: true}
			return runSession(c.App.Writer, entries, nil, opts, &launch.Dispatcher{})
		},
	}
}

// initConfigCmd creates the init-config command.
func initConfigCmd() *cli.Command {
	return &cli.Command{
		Name:  "init-config",
		Usage: "Write the default config and style files",
		Action: func(c *cli.Context) error {
			err := config.WriteDefaults(
				config.ConfigPath(c.String("config")),
				config.StylePath(c.String("style")),
				c.App.Writer,
				c.App.ErrWriter,
			)
			if err != nil {
				return outputError(errors.NewIO("failed to write default config", err))
			}
			return nil
		},
	}
}

// loadSettings resolves settings and style from defaults, files and flags.
func loadSettings(c *cli.Context) (config.Settings, config.Style, error) {
	overrides, err := overridesFromFlags(c)
	if err != nil {
		return config.Settings{}, config.Style{}, err
	}

	base, err := config.Defaults()
	if err != nil {
		return config.Settings{}, config.Style{}, errors.NewInternal(err)
	}

	settings := config.Resolve(base, config.ConfigPath(c.String("config")), overrides)
	style := config.LoadStyle(config.StylePath(c.String("style")))
	return settings, style, nil
}

// overridesFromFlags collects the setting flags given on the command line.
func overridesFromFlags(c *cli.Context) (config.Overrides, error) {
	var o config.Overrides
	if c.IsSet("width") {
		w := c.Int("width")
		o.Width = &w
	}
	if c.IsSet("height") {
		h := c.Int("height")
		o.Height = &h
	}
	if c.IsSet("orientation") {
		orientation, err := config.ParseOrientation(c.String("orientation"))
		if err != nil {
			return o, err
		}
		o.Orientation = &orientation
	}
	if c.IsSet("hide-search") {
		hide := c.Bool("hide-search")
		o.HideSearch = &hide
	}
	if c.IsSet("history-size") {
		n := c.Int("history-size")
		o.HistorySize = &n
	}
	return o, o.Validate()
}

// runSession shows entries until the user launches one or closes the menu.
// Echo output is held back until the UI has released the terminal, then
// written to stdout.
func runSession(stdout io.Writer, entries []catalog.Entry, recent []string, opts ui.Options, d *launch.Dispatcher) error {
	var echoed bytes.Buffer
	d.Stdout = &echoed
	opts.Launcher = d

	if _, err := runUI(entries, recent, opts); err != nil {
		return outputError(errors.NewInternal(err))
	}

	if echoed.Len() > 0 {
		if _, err := stdout.Write(echoed.Bytes()); err != nil {
			return outputError(errors.NewIO("failed to write selection", err))
		}
	}
	return nil
}

// outputError converts err into a cli exit error with status 1.
func outputError(err error) error {
	if wmErr, ok := err.(*errors.WaymenuError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", wmErr.Code, wmErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// isTerminal returns true if r is an interactive terminal (not piped).
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

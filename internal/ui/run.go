package ui

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jiggak/waymenu/internal/catalog"
)

// Run shows the launcher on the controlling terminal until the user launches
// an entry or closes it. Keys are always read from the tty, so menu
// definitions can be piped on stdin. When stdout is not a terminal the UI
// is drawn on the tty too, leaving stdout for Echo output.
func Run(entries []catalog.Entry, history []string, opts Options) (Model, error) {
	var output io.Writer = os.Stdout
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			return Model{}, fmt.Errorf("no terminal to draw on: %w", err)
		}
		defer tty.Close()
		output = tty
	}

	if opts.Renderer == nil {
		opts.Renderer = lipgloss.NewRenderer(output)
	}

	program := tea.NewProgram(
		New(entries, history, opts),
		tea.WithInputTTY(),
		tea.WithOutput(output),
	)

	final, err := program.Run()
	if err != nil {
		return Model{}, err
	}
	return final.(Model), nil
}

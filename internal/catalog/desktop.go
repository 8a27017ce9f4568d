package catalog

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Application is the subset of a freedesktop desktop entry the launcher uses.
type Application struct {
	// ID is the desktop file id, e.g. "org.gnome.Nautilus.desktop".
	ID string
	// Path is the file the entry was read from.
	Path string

	Type       string
	Name       string
	Exec       string
	TryExec    string
	Icon       string
	WorkDir    string
	NoDisplay  bool
	Hidden     bool
	Terminal   bool
	OnlyShowIn []string
	NotShowIn  []string
}

// ParseDesktopEntry reads the [Desktop Entry] group of a desktop file.
// Localized keys such as Name[de] are ignored.
func ParseDesktopEntry(r io.Reader) (*Application, error) {
	app := &Application{}
	inDesktopEntry := false
	seenGroup := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		if len(line) > 2 && line[0] == '[' && line[len(line)-1] == ']' {
			inDesktopEntry = line == "[Desktop Entry]"
			seenGroup = seenGroup || inDesktopEntry
			continue
		}

		if !inDesktopEntry {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Type":
			app.Type = value
		case "Name":
			app.Name = unescapeValue(value)
		case "Exec":
			app.Exec = unescapeValue(value)
		case "TryExec":
			app.TryExec = unescapeValue(value)
		case "Icon":
			app.Icon = unescapeValue(value)
		case "Path":
			app.WorkDir = unescapeValue(value)
		case "NoDisplay":
			app.NoDisplay = value == "true"
		case "Hidden":
			app.Hidden = value == "true"
		case "Terminal":
			app.Terminal = value == "true"
		case "OnlyShowIn":
			app.OnlyShowIn = splitList(value)
		case "NotShowIn":
			app.NotShowIn = splitList(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !seenGroup {
		return nil, fmt.Errorf("missing [Desktop Entry] group")
	}
	return app, nil
}

// unescapeValue handles the \s \n \t \r \\ escapes allowed in string values.
func unescapeValue(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		if v[i] != '\\' || i == len(v)-1 {
			b.WriteByte(v[i])
			continue
		}
		i++
		switch v[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			// Exec keeps its own quoting escapes for the shell-style parser.
			b.WriteByte('\\')
			b.WriteByte(v[i])
		}
	}
	return b.String()
}

// splitList splits a ';' separated list value.
func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ShouldShow reports whether the application belongs in a launcher list for
// the given desktop environments ($XDG_CURRENT_DESKTOP). lookPath resolves
// TryExec; pass exec.LookPath.
func (a *Application) ShouldShow(desktops []string, lookPath func(string) (string, error)) bool {
	if a.Type != "Application" || a.NoDisplay || a.Hidden || a.Name == "" || a.Exec == "" {
		return false
	}

	if len(a.OnlyShowIn) > 0 && !containsAny(a.OnlyShowIn, desktops) {
		return false
	}
	if containsAny(a.NotShowIn, desktops) {
		return false
	}

	if a.TryExec != "" && lookPath != nil {
		if _, err := lookPath(a.TryExec); err != nil {
			return false
		}
	}
	return true
}

func containsAny(list, values []string) bool {
	for _, v := range values {
		if slices.ContainsFunc(list, func(s string) bool { return strings.EqualFold(s, v) }) {
			return true
		}
	}
	return false
}

// Executable returns the basename of the program in the Exec line.
func (a *Application) Executable() string {
	args, err := shellwords.Parse(a.Exec)
	if err != nil || len(args) == 0 {
		args = strings.Fields(a.Exec)
	}
	if len(args) == 0 {
		return ""
	}
	return filepath.Base(args[0])
}

// CommandLine expands the Exec field codes and returns the argv to spawn.
// No files or URLs are passed, so the file and URL codes expand to nothing.
func (a *Application) CommandLine() ([]string, error) {
	args, err := shellwords.Parse(a.Exec)
	if err != nil {
		return nil, fmt.Errorf("invalid Exec %q: %w", a.Exec, err)
	}

	argv := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case "%f", "%F", "%u", "%U", "%d", "%D", "%n", "%N", "%v", "%m":
			continue
		case "%i":
			if a.Icon != "" {
				argv = append(argv, "--icon", a.Icon)
			}
			continue
		}
		if expanded := a.expandFieldCodes(arg); expanded != "" {
			argv = append(argv, expanded)
		}
	}

	if len(argv) == 0 {
		return nil, fmt.Errorf("empty Exec in %s", a.ID)
	}
	return argv, nil
}

// expandFieldCodes replaces the field codes embedded inside one argument.
func (a *Application) expandFieldCodes(arg string) string {
	if !strings.Contains(arg, "%") {
		return arg
	}
	var b strings.Builder
	for i := 0; i < len(arg); i++ {
		if arg[i] != '%' || i == len(arg)-1 {
			b.WriteByte(arg[i])
			continue
		}
		i++
		switch arg[i] {
		case '%':
			b.WriteByte('%')
		case 'c':
			b.WriteString(a.Name)
		case 'k':
			b.WriteString(a.Path)
		}
		// Any other code, including deprecated ones, expands to nothing.
	}
	return b.String()
}

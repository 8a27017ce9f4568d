package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jiggak/waymenu/internal/errors"
)

func writeDesktopFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func desktopEntry(name, execLine string, extra ...string) string {
	lines := []string{
		"[Desktop Entry]",
		"Type=Application",
		"Name=" + name,
		"Exec=" + execLine,
	}
	lines = append(lines, extra...)
	return strings.Join(lines, "\n") + "\n"
}

func noLookPath(string) (string, error) { return "", fmt.Errorf("not found") }
func anyLookPath(s string) (string, error) {
	return "/usr/bin/" + s, nil
}

func TestParseDesktopEntry(t *testing.T) {
	content := `# comment
[Desktop Entry]
Type=Application
Name=Text\sEditor
Name[de]=Texteditor
Exec=gedit %U
Icon=accessories-text-editor
Terminal=false
OnlyShowIn=GNOME;Unity;

[Desktop Action new-window]
Name=New Window
Exec=gedit --new-window
`
	app, err := ParseDesktopEntry(strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, "Application", app.Type)
	require.Equal(t, "Text Editor", app.Name)
	require.Equal(t, "gedit %U", app.Exec)
	require.Equal(t, "accessories-text-editor", app.Icon)
	require.False(t, app.Terminal)
	require.Equal(t, []string{"GNOME", "Unity"}, app.OnlyShowIn)
}

func TestParseDesktopEntry_MissingGroup(t *testing.T) {
	_, err := ParseDesktopEntry(strings.NewReader("[Other]\nName=x\n"))
	require.Error(t, err)
}

func TestApplication_ShouldShow(t *testing.T) {
	base := func() *Application {
		return &Application{Type: "Application", Name: "App", Exec: "app"}
	}

	tests := []struct {
		name     string
		mutate   func(a *Application)
		desktops []string
		lookPath func(string) (string, error)
		want     bool
	}{
		{"plain", func(a *Application) {}, nil, noLookPath, true},
		{"no display", func(a *Application) { a.NoDisplay = true }, nil, noLookPath, false},
		{"hidden", func(a *Application) { a.Hidden = true }, nil, noLookPath, false},
		{"link type", func(a *Application) { a.Type = "Link" }, nil, noLookPath, false},
		{"only show in match", func(a *Application) { a.OnlyShowIn = []string{"sway"} }, []string{"SWAY"}, noLookPath, true},
		{"only show in miss", func(a *Application) { a.OnlyShowIn = []string{"KDE"} }, []string{"sway"}, noLookPath, false},
		{"not show in", func(a *Application) { a.NotShowIn = []string{"sway"} }, []string{"sway"}, noLookPath, false},
		{"try exec missing", func(a *Application) { a.TryExec = "nope" }, nil, noLookPath, false},
		{"try exec found", func(a *Application) { a.TryExec = "app" }, nil, anyLookPath, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base()
			tt.mutate(a)
			require.Equal(t, tt.want, a.ShouldShow(tt.desktops, tt.lookPath))
		})
	}
}

func TestApplication_Executable(t *testing.T) {
	tests := []struct {
		exec string
		want string
	}{
		{"/usr/bin/firefox %u", "firefox"},
		{`"/opt/My App/run" --flag`, "run"},
		{"env FOO=1 thing", "env"},
	}
	for _, tt := range tests {
		t.Run(tt.exec, func(t *testing.T) {
			a := &Application{Exec: tt.exec}
			require.Equal(t, tt.want, a.Executable())
		})
	}
}

func TestApplication_CommandLine(t *testing.T) {
	a := &Application{
		ID:   "viewer.desktop",
		Path: "/usr/share/applications/viewer.desktop",
		Name: "Viewer",
		Icon: "viewer-icon",
		Exec: `viewer %F --class=%c --desktop %k %i "two words" 100%%`,
	}

	argv, err := a.CommandLine()
	require.NoError(t, err)
	require.Equal(t, []string{
		"viewer",
		"--class=Viewer",
		"--desktop", "/usr/share/applications/viewer.desktop",
		"--icon", "viewer-icon",
		"two words",
		"100%",
	}, argv)
}

func TestApplication_CommandLineEmpty(t *testing.T) {
	a := &Application{ID: "x.desktop", Exec: "%U"}
	_, err := a.CommandLine()
	require.Error(t, err)
}

func TestScanRegistry_IDsAndPrecedence(t *testing.T) {
	userDir := t.TempDir()
	systemDir := t.TempDir()

	writeDesktopFile(t, userDir, "editor.desktop", desktopEntry("My Editor", "myedit"))
	writeDesktopFile(t, systemDir, "editor.desktop", desktopEntry("System Editor", "sysedit"))
	writeDesktopFile(t, systemDir, "kde/konsole.desktop", desktopEntry("Konsole", "/usr/bin/konsole"))
	writeDesktopFile(t, systemDir, "hidden.desktop", desktopEntry("Hidden", "hid", "NoDisplay=true"))
	writeDesktopFile(t, systemDir, "readme.txt", "not a desktop file")
	writeDesktopFile(t, systemDir, "broken.desktop", "garbage without group")

	reg := ScanRegistry([]string{userDir, systemDir, filepath.Join(t.TempDir(), "missing")})
	reg.LookPath = noLookPath

	require.Equal(t, 3, reg.Len())

	app, ok := reg.Lookup("editor.desktop")
	require.True(t, ok)
	require.Equal(t, "My Editor", app.Name)

	app, ok = reg.Lookup("kde-konsole.desktop")
	require.True(t, ok)
	require.Equal(t, "Konsole", app.Name)

	_, ok = reg.Lookup("hidden.desktop")
	require.True(t, ok, "hidden entries are still resolvable")

	_, ok = reg.Lookup("missing.desktop")
	require.False(t, ok)
}

func TestFromRegistry(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "firefox.desktop", desktopEntry("Firefox", "/usr/lib/firefox/firefox %u", "Icon=firefox"))
	writeDesktopFile(t, dir, "tool.desktop", desktopEntry("Tool", "tool", "Icon=/opt/tool/icon.png"))
	writeDesktopFile(t, dir, "settings.desktop", desktopEntry("Settings", "settings", "NoDisplay=true"))

	reg := ScanRegistry([]string{dir})
	reg.LookPath = noLookPath

	entries := FromRegistry(reg)
	require.Len(t, entries, 2)

	byID := map[string]Entry{}
	for _, e := range entries {
		byID[e.ID] = e
		require.Equal(t, DesktopApp{}, e.Action)
	}

	ff := byID["firefox.desktop"]
	require.Equal(t, "Firefox", ff.Label)
	require.Equal(t, "firefox", ff.MatchText)
	require.Equal(t, SystemIcon{Name: "firefox"}, ff.Icon)

	tool := byID["tool.desktop"]
	require.Equal(t, FileIcon{Path: "/opt/tool/icon.png"}, tool.Icon)

	_, shown := byID["settings.desktop"]
	require.False(t, shown)
}

func TestApplicationDirs(t *testing.T) {
	t.Setenv("HOME", "/home/u")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_DATA_DIRS", "")
	require.Equal(t, []string{
		"/home/u/.local/share/applications",
		"/usr/local/share/applications",
		"/usr/share/applications",
	}, ApplicationDirs())

	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_DATA_DIRS", "/a:/b")
	require.Equal(t, []string{
		"/data/applications",
		"/a/applications",
		"/b/applications",
	}, ApplicationDirs())
}

func TestParseMenu(t *testing.T) {
	input := `[
		{"label": "Lock", "icon": "/icons/lock.svg", "exec": ["swaylock", "-f"]},
		{"label": "Logout"},
		{"label": "Logout", "exec": null}
	]`

	entries, err := ParseMenu(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.Equal(t, Entry{
		ID:        "Lock",
		Label:     "Lock",
		MatchText: "Lock",
		Icon:      FileIcon{Path: "/icons/lock.svg"},
		Action:    Exec{Argv: []string{"swaylock", "-f"}},
	}, entries[0])

	require.Equal(t, "Logout", entries[1].ID)
	require.Equal(t, Echo{}, entries[1].Action)
	require.Nil(t, entries[1].Icon)

	// duplicate labels are independent entries
	require.Equal(t, "Logout", entries[2].ID)
	require.Equal(t, Echo{}, entries[2].Action)
}

func TestParseMenu_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty exec", `[{"label":"Lock","exec":[]}]`},
		{"empty program", `[{"label":"Lock","exec":[""]}]`},
		{"missing label", `[{"exec":["true"]}]`},
		{"empty label", `[{"label":""}]`},
		{"not an array", `{"label":"Lock"}`},
		{"malformed", `[{"label":`},
		{"exec wrong type", `[{"label":"Lock","exec":"swaylock"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseMenu(strings.NewReader(tt.input))
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrInvalidMenu), "got %v", err)
			require.Nil(t, entries)
		})
	}
}

func TestLoadMenu_FileOrStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"label":"From file"}]`), 0644))
	stdin := strings.NewReader(`[{"label":"From stdin"}]`)

	entries, err := LoadMenu(path, stdin)
	require.NoError(t, err)
	require.Equal(t, "From file", entries[0].Label)
	require.Equal(t, stdin.Size(), int64(stdin.Len()), "stdin must not be consumed when a file is given")

	entries, err = LoadMenu("", stdin)
	require.NoError(t, err)
	require.Equal(t, "From stdin", entries[0].Label)
}

func TestLoadMenu_MissingFile(t *testing.T) {
	_, err := LoadMenu(filepath.Join(t.TempDir(), "nope.json"), strings.NewReader("[]"))
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrIO))
}

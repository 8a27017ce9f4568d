// Package catalog builds the launchable entries shown by the launcher, either
// from the desktop application registry or from user supplied menu definitions.
package catalog

// Action is the launch behavior bound to an Entry. The set of actions is
// closed: DesktopApp, Echo and Exec are the only implementations.
type Action interface {
	isAction()
}

// DesktopApp launches the registry application whose id is the entry id.
type DesktopApp struct{}

// Echo prints the entry id on stdout.
type Echo struct{}

// Exec spawns Argv[0] with Argv[1:] as arguments. Argv is never empty.
type Exec struct {
	Argv []string
}

func (DesktopApp) isAction() {}
func (Echo) isAction()       {}
func (Exec) isAction()       {}

// Icon is an opaque icon reference passed through to the presentation layer.
// Implementations are SystemIcon and FileIcon; nil means no icon.
type Icon interface {
	isIcon()
}

// SystemIcon is a themed icon looked up by name.
type SystemIcon struct {
	Name string
}

// FileIcon is an icon loaded from a file path.
type FileIcon struct {
	Path string
}

func (SystemIcon) isIcon() {}
func (FileIcon) isIcon()   {}

// Entry is one selectable item. Entries are built once and never modified.
type Entry struct {
	// ID is the registry desktop id for applications, or the label for menu items.
	ID string
	// Label is shown to the user and matched against the search text.
	Label string
	// MatchText is matched against the search text as well: the executable
	// basename for applications, the label for menu items.
	MatchText string
	Icon      Icon
	Action    Action
}

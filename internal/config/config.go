package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/jiggak/waymenu/internal/logging"
)

//go:embed assets/config.jsonc
var defaultConfig []byte

// Orientation controls how the entry list is laid out.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// String returns the config/CLI spelling of the orientation.
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseOrientation parses "horizontal" or "vertical" (case-insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch {
	case strings.EqualFold(s, "horizontal"):
		return Horizontal, nil
	case strings.EqualFold(s, "vertical"):
		return Vertical, nil
	}
	return Vertical, fmt.Errorf("invalid orientation %q (want horizontal or vertical)", s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Orientation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseOrientation(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Settings is the effective run configuration. It is a plain value: once
// resolved it is passed around by copy and never mutated.
type Settings struct {
	Width       int
	Height      int
	Orientation Orientation
	HideSearch  bool
	HistorySize int
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", s.Width)
	}
	if s.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", s.Height)
	}
	if s.HistorySize < 0 {
		return fmt.Errorf("history size must be non-negative, got %d", s.HistorySize)
	}
	return nil
}

// fileSettings is the on-disk shape. Every key is optional and the two
// boolean/size keys accept both camelCase and snake_case spellings.
type fileSettings struct {
	Width            *int         `json:"width"`
	Height           *int         `json:"height"`
	Orientation      *Orientation `json:"orientation"`
	HideSearch       *bool        `json:"hideSearch"`
	HideSearchSnake  *bool        `json:"hide_search"`
	HistorySize      *int         `json:"historySize"`
	HistorySizeSnake *int         `json:"history_size"`
}

// DefaultConfigContent returns the embedded config.jsonc.
func DefaultConfigContent() []byte {
	return defaultConfig
}

// Defaults parses the embedded config.jsonc. Call it once at startup and
// pass the result to Resolve.
func Defaults() (Settings, error) {
	s, err := Parse(defaultConfig, Settings{})
	if err != nil {
		return Settings{}, fmt.Errorf("embedded config: %w", err)
	}
	return s, nil
}

// Parse reads JSON-with-comments config content on top of base. Keys absent
// from data keep the value from base. The result must pass Validate.
func Parse(data []byte, base Settings) (Settings, error) {
	// Standardize may rewrite its input in place.
	std, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return base, err
	}

	var fs fileSettings
	if err := json.Unmarshal(std, &fs); err != nil {
		return base, err
	}

	result := merge(base, fs)
	if err := result.Validate(); err != nil {
		return base, err
	}
	return result, nil
}

// merge applies the keys present in fs over base.
func merge(base Settings, fs fileSettings) Settings {
	result := base
	assign(fs.Width, &result.Width)
	assign(fs.Height, &result.Height)
	assign(fs.Orientation, &result.Orientation)
	assign(fs.HideSearchSnake, &result.HideSearch)
	assign(fs.HideSearch, &result.HideSearch)
	assign(fs.HistorySizeSnake, &result.HistorySize)
	assign(fs.HistorySize, &result.HistorySize)
	return result
}

// assign copies *src into dst when src is set.
func assign[T any](src *T, dst *T) {
	if src != nil {
		*dst = *src
	}
}

// Load reads the config file at path on top of base.
// A missing or invalid file is not an error: it is logged and base is returned.
func Load(path string, base Settings) Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Debugf("Unable to load %s, using default settings", path)
		return base
	}

	s, err := Parse(data, base)
	if err != nil {
		logging.Debugf("Invalid config %s (%v), using default settings", path, err)
		return base
	}
	return s
}

// Overrides holds per-field command line overrides. Nil fields leave the
// configured value untouched.
type Overrides struct {
	Width       *int
	Height      *int
	Orientation *Orientation
	HideSearch  *bool
	HistorySize *int
}

// Validate checks the override values that are set.
func (o Overrides) Validate() error {
	if o.Width != nil && *o.Width <= 0 {
		return fmt.Errorf("--width must be positive, got %d", *o.Width)
	}
	if o.Height != nil && *o.Height <= 0 {
		return fmt.Errorf("--height must be positive, got %d", *o.Height)
	}
	if o.HistorySize != nil && *o.HistorySize < 0 {
		return fmt.Errorf("--history-size must be non-negative, got %d", *o.HistorySize)
	}
	return nil
}

// Apply returns s with every set override applied.
func (o Overrides) Apply(s Settings) Settings {
	assign(o.Width, &s.Width)
	assign(o.Height, &s.Height)
	assign(o.Orientation, &s.Orientation)
	assign(o.HideSearch, &s.HideSearch)
	assign(o.HistorySize, &s.HistorySize)
	return s
}

// Resolve merges base, the config file at path and overrides, in that order.
// It never fails: configuration faults fall back to base.
func Resolve(base Settings, path string, overrides Overrides) Settings {
	return overrides.Apply(Load(path, base))
}

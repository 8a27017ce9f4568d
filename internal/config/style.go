package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"

	"github.com/tailscale/hujson"

	"github.com/jiggak/waymenu/internal/logging"
)

//go:embed assets/style.jsonc
var defaultStyle []byte

// Style holds the colors used by the terminal front end.
type Style struct {
	Text               string `json:"text"`
	Dim                string `json:"dim"`
	Prompt             string `json:"prompt"`
	SelectedForeground string `json:"selectedForeground"`
	SelectedBackground string `json:"selectedBackground"`
	Border             string `json:"border"`
	Error              string `json:"error"`
}

// DefaultStyleContent returns the embedded style.jsonc.
func DefaultStyleContent() []byte {
	return defaultStyle
}

// DefaultStyle parses the embedded style.jsonc.
func DefaultStyle() Style {
	s, err := ParseStyle(defaultStyle, Style{})
	if err != nil {
		// The embedded asset is covered by tests.
		panic("embedded style: " + err.Error())
	}
	return s
}

// ParseStyle reads JSON-with-comments style content on top of base.
func ParseStyle(data []byte, base Style) (Style, error) {
	std, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return base, err
	}
	s := base
	if err := json.Unmarshal(std, &s); err != nil {
		return base, err
	}
	return s, nil
}

// LoadStyle reads the style file at path, falling back to the built-in style.
func LoadStyle(path string) Style {
	base := DefaultStyle()

	data, err := os.ReadFile(path)
	if err != nil {
		logging.Debugf("Unable to load %s, using builtin style", path)
		return base
	}

	s, err := ParseStyle(data, base)
	if err != nil {
		logging.Debugf("Invalid style %s (%v), using builtin style", path, err)
		return base
	}
	return s
}

package config

import (
	"fmt"
	"strings"
)

// Config holds all selkit settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	Navigate NavigateConfig `toml:"navigate" yaml:"navigate"`
	Split    SplitConfig    `toml:"split" yaml:"split"`
	Display  DisplayConfig  `toml:"display" yaml:"display"`

	// Keymap adds or overrides terminal key bindings.
	Keymap []Binding `toml:"keymap" yaml:"keymap"`
}

// NavigateConfig configures selection.navigate.
type NavigateConfig struct {
	// Wrap is used when the command is invoked without a wrap argument.
	Wrap bool `toml:"wrap" yaml:"wrap"`
}

// SplitConfig configures selection.split.
type SplitConfig struct {
	// PromptTitle labels the separator input panel.
	PromptTitle string `toml:"prompt_title" yaml:"prompt_title"`
}

// DisplayConfig configures the terminal host.
type DisplayConfig struct {
	// Highlight enables syntax coloring when the file type is known.
	Highlight bool `toml:"highlight" yaml:"highlight"`
	// TabWidth is the number of columns per tab stop.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`
}

// Binding maps a key to an action with fixed arguments.
type Binding struct {
	// Key is a key description such as "ctrl+l" or "alt+shift+right".
	Key string `toml:"key" yaml:"key"`

	// Action is the command to run, e.g. "selection.expand".
	Action string `toml:"action" yaml:"action"`

	// Args are passed to the action.
	Args map[string]any `toml:"args" yaml:"args"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Navigate: NavigateConfig{Wrap: true},
		Split:    SplitConfig{PromptTitle: "Separator"},
		Display:  DisplayConfig{Highlight: true, TabWidth: 4},
	}
}

// Validate checks setting values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidValue, c.LogLevel)
	}

	if c.Display.TabWidth < 1 || c.Display.TabWidth > 16 {
		return fmt.Errorf("%w: tab_width %d (must be 1-16)", ErrInvalidValue, c.Display.TabWidth)
	}
	for i, b := range c.Keymap {
		if strings.TrimSpace(b.Key) == "" {
			return fmt.Errorf("%w: keymap[%d] has no key", ErrInvalidValue, i)
		}
		if strings.TrimSpace(b.Action) == "" {
			return fmt.Errorf("%w: keymap[%d] (%s) has no action", ErrInvalidValue, i, b.Key)
		}
	}
	return nil
}

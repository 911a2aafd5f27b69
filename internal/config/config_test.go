package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LogLevel != "info" || !cfg.Navigate.Wrap || cfg.Split.PromptTitle != "Separator" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should give defaults (-want +got):\n%s", diff)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selkit.toml")
	writeFile(t, path, `
log_level = "debug"

[navigate]
wrap = false

[[keymap]]
key = "ctrl+l"
action = "selection.expand"
args = { expand = true, right = true }
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := &Config{
		LogLevel: "debug",
		Navigate: NavigateConfig{Wrap: false},
		Split:    SplitConfig{PromptTitle: "Separator"},
		Display:  DisplayConfig{Highlight: true, TabWidth: 4},
		Keymap: []Binding{{
			Key:    "ctrl+l",
			Action: "selection.expand",
			Args:   map[string]any{"expand": true, "right": true},
		}},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selkit.yml")
	writeFile(t, path, `
split:
  prompt_title: "Split by"
keymap:
  - key: alt+s
    action: selection.split
    args:
      separator: ","
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Split.PromptTitle != "Split by" {
		t.Errorf("PromptTitle = %q", cfg.Split.PromptTitle)
	}
	if !cfg.Navigate.Wrap || cfg.LogLevel != "info" {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}
	if len(cfg.Keymap) != 1 || cfg.Keymap[0].Args["separator"] != "," {
		t.Errorf("keymap = %+v", cfg.Keymap)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(""), FormatYAML)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("empty input should give defaults (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		content string
		wantErr error
		parse   bool
	}{
		{"toml syntax", FormatTOML, "log_level = \n", nil, true},
		{"toml unknown key", FormatTOML, "colour = \"red\"\n", nil, true},
		{"yaml unknown key", FormatYAML, "colour: red\n", nil, true},
		{"bad level", FormatTOML, "log_level = \"loud\"\n", ErrInvalidValue, false},
		{"binding without action", FormatYAML, "keymap:\n  - key: ctrl+x\n", ErrInvalidValue, false},
		{"tab width", FormatYAML, "display:\n  tab_width: 0\n", ErrInvalidValue, false},
		{"unknown format", Format("ini"), "", ErrUnsupportedFormat, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromReader(strings.NewReader(tt.content), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.parse {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("expected ParseError, got %T: %v", err, err)
				}
				if pe.Path != "<reader>" {
					t.Errorf("Path = %q", pe.Path)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTOMLParseErrorPosition(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("log_level = \"info\"\ncolour = 1\n"), FormatTOML)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"a.toml":       FormatTOML,
		"dir/b.YAML":   FormatYAML,
		"/etc/c.yml":   FormatYAML,
		"settings.txt": "",
	}
	for path, want := range tests {
		got, err := FormatForPath(path)
		if got != want {
			t.Errorf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
		if want == "" && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatForPath(%q) error = %v", path, err)
		}
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Line: 3, Column: 4, Message: "bad"}, "parse error in a.toml at line 3, column 4: bad"},
		{&ParseError{Path: "a.toml", Line: 3, Message: "bad"}, "parse error in a.toml at line 3: bad"},
		{&ParseError{Path: "a.toml", Message: "bad"}, "parse error in a.toml: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selkit.toml")
	writeFile(t, path, "log_level = \"info\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	err := Watch(ctx, path, 10*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	writeFile(t, path, "log_level = \"debug\"\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.LogLevel == "debug" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestWatchUnsupportedFormat(t *testing.T) {
	err := Watch(context.Background(), "selkit.ini", 0, func(*Config, error) {})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

// Package main is the entry point for selkit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/selkit/internal/config"
	"github.com/dshills/selkit/internal/dispatcher"
	"github.com/dshills/selkit/internal/dispatcher/handlers/selection"
	"github.com/dshills/selkit/internal/engine/buffer"
	"github.com/dshills/selkit/internal/highlight"
	"github.com/dshills/selkit/internal/host/term"
	"github.com/dshills/selkit/internal/input/keymap"
	"github.com/dshills/selkit/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	ScriptPath string
	ListKeys   bool
	Files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	keys, err := buildKeymap(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.ListKeys {
		printKeymap(os.Stdout, keys)
		return 0
	}

	logger, closeLog, err := newLogger(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()
	logging.SetDefault(logger)

	name, text, err := readInput(opts.Files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := newDispatcher(cfg, logger)
	buf := buffer.New(text)

	if opts.ScriptPath != "" {
		if err := runScript(ctx, opts.ScriptPath, buf, d, logger, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := runTerminal(ctx, name, buf, d, keys, cfg, opts, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&opts.ScriptPath, "script", "", "Run a Lua script against the file and print the selections")
	flag.StringVar(&opts.ScriptPath, "s", "", "Run a Lua script (shorthand)")
	flag.BoolVar(&opts.ListKeys, "keys", false, "Print the key bindings and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "selkit - multi-selection text tool\n\n")
		fmt.Fprintf(os.Stderr, "Usage: selkit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  selkit notes.txt                 Edit selections interactively\n")
		fmt.Fprintf(os.Stderr, "  selkit -s split.lua data.csv     Run a script and print the result\n")
		fmt.Fprintf(os.Stderr, "  selkit -c selkit.toml -keys      Show the effective key bindings\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("selkit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.Files = flag.Args()
	if len(opts.Files) > 1 {
		fmt.Fprintf(os.Stderr, "Error: only one file can be opened\n")
		os.Exit(1)
	}
	return opts
}

// newLogger writes to the log file when one is given. Without one the
// terminal host discards logs and script mode logs to stderr.
func newLogger(cfg *config.Config, opts options) (*logging.Logger, func(), error) {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLogLevel(cfg.LogLevel)

	switch {
	case opts.LogFile != "":
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		lc.Output = f
		return logging.New(lc), func() { _ = f.Close() }, nil
	case opts.ScriptPath != "":
		lc.Console = true
		return logging.New(lc), func() {}, nil
	default:
		return logging.NullLogger, func() {}, nil
	}
}

func readInput(files []string) (string, string, error) {
	if len(files) == 0 {
		return "[scratch]", "", nil
	}
	data, err := os.ReadFile(files[0])
	if errors.Is(err, os.ErrNotExist) {
		return filepath.Base(files[0]), "", nil
	}
	if err != nil {
		return "", "", err
	}
	return filepath.Base(files[0]), string(data), nil
}

func newDispatcher(cfg *config.Config, logger *logging.Logger) *dispatcher.Dispatcher {
	dc := dispatcher.DefaultConfig().WithLogger(logger)
	if cfg.LogLevel == "debug" {
		dc = dc.WithMetrics()
	}
	d := dispatcher.New(dc)
	d.RegisterNamespace(selection.NewHandlerWithOptions(selection.Options{
		PromptTitle: cfg.Split.PromptTitle,
		Wrap:        cfg.Navigate.Wrap,
	}))
	return d
}

// buildKeymap layers the configured bindings over the defaults.
func buildKeymap(cfg *config.Config) (*keymap.Keymap, error) {
	km := keymap.Default()
	for _, b := range cfg.Keymap {
		if err := km.Add(b.Key, b.Action, b.Args); err != nil {
			return nil, fmt.Errorf("keymap %q: %w", b.Key, err)
		}
	}
	return km, nil
}

func printKeymap(w io.Writer, km *keymap.Keymap) {
	for _, b := range km.Bindings() {
		if len(b.Args) == 0 {
			fmt.Fprintf(w, "%-18s %s\n", b.Key, b.Action)
			continue
		}
		fmt.Fprintf(w, "%-18s %s %v\n", b.Key, b.Action, b.Args)
	}
}

func runTerminal(ctx context.Context, name string, buf *buffer.Buffer, d *dispatcher.Dispatcher,
	keys *keymap.Keymap, cfg *config.Config, opts options, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	var lang string
	if cfg.Display.Highlight {
		lang = highlight.Language(name)
	}
	h := term.New(screen, buf, d, term.Options{
		Name:     name,
		Keymap:   keys,
		Logger:   logger,
		TabWidth: cfg.Display.TabWidth,
		Language: lang,
	})

	if opts.ConfigPath != "" {
		err := config.Watch(ctx, opts.ConfigPath, config.DefaultDebounce, func(next *config.Config, err error) {
			if err == nil {
				err = next.Validate()
			}
			if err != nil {
				logger.Warn("config reload: %v", err)
				h.Notify("config error: " + err.Error())
				return
			}
			km, err := buildKeymap(next)
			if err != nil {
				h.Notify(err.Error())
				return
			}
			h.SetKeymap(km)
			h.Notify("config reloaded")
		})
		if err != nil {
			logger.Warn("config watch disabled: %v", err)
		}
	}

	if metrics := d.Metrics(); metrics != nil {
		defer func() {
			for _, s := range metrics.TopActions(5) {
				logger.Debug("%s: %d dispatches, max %v", s.Name, s.DispatchCount, s.MaxDuration)
			}
		}()
	}

	err = h.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

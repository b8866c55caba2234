package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	bubble_adapter "github.com/ionut-t/leetshell/adapter-bubbletea"
	"github.com/ionut-t/leetshell/config"
	"github.com/ionut-t/leetshell/leetcode"
	"github.com/ionut-t/leetshell/logging"
	"github.com/ionut-t/leetshell/tui"
	"golang.org/x/term"
)

var (
	homeDir = flag.String("home", config.DefaultHome(), "Directory for config, cache and saved solutions")
	debug   = flag.Bool("debug", false, "Write debug output to the log file (same as -log-level debug)")
	level   = flag.String("log-level", "info", "Minimum log level: debug, info, warn or error")
	lang    = flag.String("lang", "", "Preferred language slug, e.g. python3 or golang")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	minLevel, err := logging.ParseLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leetshell: %v\n", err)
		return 2
	}
	if *debug || os.Getenv("LEETSHELL_DEBUG") == "1" {
		minLevel = logging.LevelDebug
	}
	logging.SetLevel(minLevel)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "leetshell needs an interactive terminal")
		return 1
	}

	if err := os.MkdirAll(*homeDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", *homeDir, err)
		return 1
	}
	// The terminal belongs to the UI; everything logged goes to a file.
	logFile, err := tea.LogToFile(filepath.Join(*homeDir, "debug.log"), "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		return 1
	}
	defer logFile.Close()

	store := config.NewStore(*homeDir)
	cfg := store.Load()
	if *lang != "" {
		if _, ok := config.LookupLanguage(*lang); !ok {
			fmt.Fprintf(os.Stderr, "unknown language %q\n", *lang)
			return 2
		}
		cfg.Preferences.Language = *lang
	}

	client := leetcode.NewClient(cfg.Credentials)
	defer client.Close()

	services := tui.Services{
		Problems:  leetcode.NewProblemService(client, leetcode.NewCache(store.CacheDir())),
		Judge:     leetcode.NewSubmissionService(client),
		Sessions:  leetcode.NewSessions(client),
		Store:     store,
		Clipboard: bubble_adapter.NewClipboard(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	terminal := bubble_adapter.New()
	app := tui.NewApp(terminal, services, cfg)
	if err := app.Start(ctx); err != nil {
		logging.Error("start: %v", err)
		fmt.Fprintf(os.Stderr, "leetshell: %v\n", err)
		return 1
	}

	logging.Info("leetshell starting (home %s)", store.Home())
	terminal.Start()
	runErr := app.Run(ctx)
	if err := terminal.Close(); err != nil {
		logging.Error("terminal: %v", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "leetshell: %v\n", runErr)
		return 1
	}
	logging.Info("leetshell stopped")
	return 0
}

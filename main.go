package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-feed/app"
	"github.com/miosa/osa-feed/client"
	"github.com/miosa/osa-feed/config"
	"github.com/miosa/osa-feed/snapshot"
	"github.com/miosa/osa-feed/style"
)

var version = "dev"

const defaultBackendURL = "http://localhost:8089"

func main() {
	profileFlag := flag.String("profile", "", "Named profile for state isolation (~/.osa/profiles/<name>)")
	devFlag := flag.Bool("dev", false, "Dev mode (alias for --profile dev, port 19001)")
	feedFlag := flag.String("feed", "", "Feed to open: creators, calls or transactions")
	debugFlag := flag.Bool("debug", false, "Write a debug log to <profile>/feed.log")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("osa-feed %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		os.Setenv("NO_COLOR", "1")
	}

	profile := *profileFlag
	if *devFlag {
		profile = "dev"
	}
	home, _ := os.UserHomeDir()
	app.ProfileDir = filepath.Join(home, ".osa")
	if profile != "" {
		app.ProfileDir = filepath.Join(home, ".osa", "profiles", profile)
	}
	os.MkdirAll(app.ProfileDir, 0o755)
	app.Version = version

	cfg := config.Load(app.ProfileDir)
	if *feedFlag != "" {
		cfg.DefaultFeed = *feedFlag
	}

	baseURL := os.Getenv("OSA_URL")
	if baseURL == "" {
		baseURL = cfg.BackendURL
	}
	if baseURL == "" {
		baseURL = defaultBackendURL
		if *devFlag {
			baseURL = "http://localhost:19001"
		}
	}
	token := os.Getenv("OSA_TOKEN")
	if token == "" {
		if data, err := os.ReadFile(filepath.Join(app.ProfileDir, "token")); err == nil {
			token = strings.TrimSpace(string(data))
		}
	}

	logger, closeLog, err := openDebugLog(app.ProfileDir, *debugFlag || os.Getenv("OSA_DEBUG") != "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "osa-feed: %v\n", err)
		os.Exit(1)
	}

	// Auto-detect terminal background unless the config pins a theme.
	switch {
	case cfg.Theme != "" && cfg.Theme != "auto":
		style.SetTheme(cfg.Theme)
	case lipgloss.HasDarkBackground(os.Stdin, os.Stdout):
		style.SetTheme("dark")
	default:
		style.SetTheme("light")
	}

	snaps, err := snapshot.Open(filepath.Join(app.ProfileDir, "snapshots.db"))
	if err != nil {
		// Another instance may hold the lock; run without the cache.
		logger.Printf("snapshot store: %v", err)
		snaps = nil
	}

	c := client.New(baseURL)
	c.PerPage = cfg.List.PageSize
	if token != "" {
		c.SetToken(token)
	}

	m := app.New(c, snaps, cfg, logger)

	// In bubbletea v2, alt screen and mouse mode are configured on the View
	// returned by the model, not as program options.
	p := tea.NewProgram(m)
	_, runErr := p.Run()

	if snaps != nil {
		if err := snaps.Close(); err != nil {
			logger.Printf("close snapshot store: %v", err)
		}
	}
	// os.Exit skips deferred calls, so the log is closed by hand.
	if err := closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "osa-feed: close log: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "osa-feed: %v\n", runErr)
		os.Exit(1)
	}
}

// openDebugLog routes the standard logger to <dir>/feed.log when enabled and
// returns the logger to hand to the app. The returned close func is always
// safe to call.
func openDebugLog(dir string, enabled bool) (*log.Logger, func() error, error) {
	if !enabled {
		return log.New(io.Discard, "", 0), func() error { return nil }, nil
	}
	f, err := tea.LogToFile(filepath.Join(dir, "feed.log"), "feed")
	if err != nil {
		return nil, nil, err
	}
	return log.Default(), f.Close, nil
}

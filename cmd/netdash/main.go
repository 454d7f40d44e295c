package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/netdash/netdash/internal/api"
	"github.com/netdash/netdash/internal/config"
	"github.com/netdash/netdash/internal/devices"
	"github.com/netdash/netdash/internal/session"
	"github.com/netdash/netdash/internal/storage"
	"github.com/netdash/netdash/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logger, logFile, err := initLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.Info("Starting NetDash",
		"version", "1.0.0",
		"api_url", cfg.API.BaseURL,
	)

	cache, err := storage.Open(cfg.Cache.Path)
	if err != nil {
		log.Fatalf("Failed to open credential cache: %v", err)
	}
	defer cache.Close()

	client := api.NewClient(cfg.API.BaseURL, cfg.API.GetTimeout(), logger)

	sessions, err := session.New(client, cache)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	client.SetTokenSource(sessions.Token)

	deviceStore := devices.New(client)

	app := ui.NewApp(sessions, deviceStore, client, logger, cfg.API.GetTimeout())
	program := tea.NewProgram(app, tea.WithAltScreen())

	// A 401 on any authenticated call ends the session; the UI reacts
	// by returning to the login page.
	client.SetUnauthorizedHook(func() {
		program.Send(ui.SessionExpiredMsg{})
	})

	if _, err := program.Run(); err != nil {
		logger.Error("UI terminated", "error", err)
		fmt.Fprintf(os.Stderr, "netdash: %v\n", err)
		os.Exit(1)
	}

	logger.Info("NetDash stopped")
}

func initLogger(cfg config.LoggingConfig) (*slog.Logger, *os.File, error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.FilePath == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(f, opts)
	} else {
		handler = slog.NewTextHandler(f, opts)
	}

	return slog.New(handler), f, nil
}

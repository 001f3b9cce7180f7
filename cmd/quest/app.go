package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-quest/internal/audio"
	"github.com/vovakirdan/tui-quest/internal/engine"
	"github.com/vovakirdan/tui-quest/internal/game"
	"github.com/vovakirdan/tui-quest/internal/level"
	"github.com/vovakirdan/tui-quest/internal/storage"
)

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// fileLogger opens the play log. The alt screen owns the terminal during
// play, so nothing may be logged to it. An empty path discards the log.
func fileLogger(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "quest",
		Level:           settings.LogLevel(),
	})
	return logger, f, nil
}

// newContext builds the engine context from the settings.
func newContext(logger *log.Logger, bank audio.Bank) *engine.Context {
	return engine.New(
		engine.WithDisplay(settings.WorldDisplay()),
		engine.WithAudio(bank),
		engine.WithLogger(logger),
		engine.WithSeed(settings.Seed),
		engine.WithTuning(settings.Tuning()),
	)
}

// loadLevels reads the campaign. A broken campaign is fatal.
func loadLevels(logger *log.Logger) ([]*level.Definition, error) {
	defs, source, err := level.Load(settings.Levels)
	if err != nil {
		return nil, err
	}
	logger.Info("campaign loaded", "source", source, "levels", len(defs), "settings", settingsFile)
	return defs, nil
}

// openStore opens the save database. Without one the game still runs,
// but nothing is saved.
func openStore(logger *log.Logger) (*storage.Store, game.Store) {
	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		logger.Warn("could not open save database", "path", settings.Storage.Path, "error", err)
		return nil, nil
	}
	return store, store
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

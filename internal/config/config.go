// Package config provides Viper-based settings loading for the quest
// binaries: display size, frame rate, gameplay tuning, logging, the save
// store and the SSH server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/engine"
)

// DisplayConfig is the world size in pixels. Level data is authored at
// 512x512 and scaled to it.
type DisplayConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// GameplayConfig tunes movement and battle pacing.
type GameplayConfig struct {
	// Pace is a battle pacing preset: "slow", "normal" or "fast".
	// An explicit ImpactHold wins over the preset.
	Pace       Pace    `mapstructure:"pace"`
	WalkSpeed  float64 `mapstructure:"walk_speed"`
	ImpactHold int     `mapstructure:"impact_hold"`
	FogRadius  int     `mapstructure:"fog_radius"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// File receives the log during interactive play. Empty discards it.
	File string `mapstructure:"file"`
}

// StorageConfig locates the save database.
type StorageConfig struct {
	Path string `mapstructure:"path"`
	Slot string `mapstructure:"slot"`
}

// SSHConfig holds settings for quest serve.
type SSHConfig struct {
	Address     string        `mapstructure:"address"`
	HostKey     string        `mapstructure:"host_key"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// AudioConfig controls the terminal sound bank.
type AudioConfig struct {
	// Bell rings the terminal bell for these sound keys.
	Bell []string `mapstructure:"bell"`
}

// Settings is the top-level configuration.
type Settings struct {
	Display  DisplayConfig  `mapstructure:"display"`
	FPS      int            `mapstructure:"fps"`
	Seed     int64          `mapstructure:"seed"`
	Levels   string         `mapstructure:"levels"`
	Gameplay GameplayConfig `mapstructure:"gameplay"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Storage  StorageConfig  `mapstructure:"storage"`
	SSH      SSHConfig      `mapstructure:"ssh"`
	Audio    AudioConfig    `mapstructure:"audio"`
}

// Validate checks all settings and reports every violation at once.
func (s Settings) Validate() error {
	var errs []error

	if s.Display.Width < 64 || s.Display.Height < 64 {
		errs = append(errs, fmt.Errorf("display must be at least 64x64, got %dx%d", s.Display.Width, s.Display.Height))
	}
	if s.FPS < 1 || s.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps must be 1-240, got %d", s.FPS))
	}
	if err := validateGameplay(s.Gameplay); err != nil {
		errs = append(errs, err)
	}
	if _, err := log.ParseLevel(s.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", s.Logging.Level))
	}
	if s.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path must not be empty"))
	}
	if s.Storage.Slot == "" {
		errs = append(errs, errors.New("storage.slot must not be empty"))
	}
	if s.SSH.Address == "" {
		errs = append(errs, errors.New("ssh.address must not be empty"))
	}
	if s.SSH.IdleTimeout < 0 {
		errs = append(errs, errors.New("ssh.idle_timeout must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}

func validateGameplay(g GameplayConfig) error {
	var errs []string
	if !g.Pace.Valid() {
		errs = append(errs, fmt.Sprintf("gameplay.pace must be one of [slow, normal, fast], got %q", g.Pace))
	}
	if g.WalkSpeed <= 0 {
		errs = append(errs, fmt.Sprintf("gameplay.walk_speed must be positive, got %g", g.WalkSpeed))
	}
	if g.ImpactHold < 0 {
		errs = append(errs, fmt.Sprintf("gameplay.impact_hold must be >= 0, got %d", g.ImpactHold))
	}
	if g.FogRadius < 0 {
		errs = append(errs, fmt.Sprintf("gameplay.fog_radius must be >= 0, got %d", g.FogRadius))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// WorldDisplay returns the display ratios for the configured world size.
func (s Settings) WorldDisplay() core.Display {
	return core.NewDisplay(s.Display.Width, s.Display.Height)
}

// Tuning returns the engine tuning, with the pace preset applied.
func (s Settings) Tuning() engine.Tuning {
	hold := s.Gameplay.ImpactHold
	if hold == 0 {
		hold = s.Gameplay.Pace.ImpactHold(s.FPS)
	}
	return engine.Tuning{
		WalkSpeed:  s.Gameplay.WalkSpeed,
		ImpactHold: hold,
		FogRadius:  s.Gameplay.FogRadius,
	}
}

// LogLevel returns the parsed logging level, defaulting to info.
func (s Settings) LogLevel() log.Level {
	lvl, err := log.ParseLevel(s.Logging.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

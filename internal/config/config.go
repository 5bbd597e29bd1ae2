// Package config reads the user's settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// TestConfigPath is used for testing to override the settings path
var TestConfigPath string

// Environment overrides.
const (
	EnvHome    = "DESKPET_HOME"
	EnvBackend = "DESKPET_BACKEND"
	EnvAddr    = "DESKPET_ADDR"
)

// Modes.
const (
	ModeQuiet    = "quiet"
	ModeRoam     = "roam"
	ModeMischief = "mischief"
)

// QuietHours is a local-time window in which the pet is kept quiet.
type QuietHours struct {
	Enabled bool `yaml:"enabled"`
	Start   int  `yaml:"start"`
	End     int  `yaml:"end"`
}

// Settings are the user's preferences.
type Settings struct {
	PetName    string        `yaml:"pet_name"`
	Backend    string        `yaml:"backend"`
	SaveDir    string        `yaml:"save_dir"`
	AutoSave   time.Duration `yaml:"autosave"`
	Mode       string        `yaml:"mode"`
	QuietHours QuietHours    `yaml:"quiet_hours"`
	APIAddr    string        `yaml:"api_addr"`
	ContentDir string        `yaml:"content_dir"`
	LogFile    string        `yaml:"log_file"`
}

// Home returns the settings directory, ~/.config/deskpet unless
// DESKPET_HOME says otherwise.
func Home() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(home, ".config", "deskpet"), nil
}

// Path returns the settings file path.
func Path() (string, error) {
	if TestConfigPath != "" {
		return TestConfigPath, nil
	}
	dir, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.yaml"), nil
}

// Defaults returns the settings used when no file exists. Relative
// directories are resolved against home.
func Defaults(home string) Settings {
	return Settings{
		PetName:    "Qbit",
		Backend:    "json",
		SaveDir:    home,
		AutoSave:   time.Minute,
		Mode:       ModeRoam,
		QuietHours: QuietHours{Enabled: false, Start: 22, End: 7},
		APIAddr:    "127.0.0.1:7878",
		ContentDir: filepath.Join(home, "content"),
		LogFile:    filepath.Join(home, "deskpet.log"),
	}
}

// Load reads the settings file over the defaults and applies environment
// overrides. A missing file is not an error.
func Load() (Settings, error) {
	home, err := Home()
	if err != nil {
		return Settings{}, err
	}
	s := Defaults(home)

	path, err := Path()
	if err != nil {
		return Settings{}, err
	}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("No settings at %s, using defaults", path)
	case err != nil:
		return Settings{}, fmt.Errorf("read settings: %w", err)
	default:
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvBackend); v != "" {
		s.Backend = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		s.APIAddr = v
	}
	s.resolve(home)
	return s, s.Validate()
}

func (s *Settings) resolve(home string) {
	for _, p := range []*string{&s.SaveDir, &s.ContentDir, &s.LogFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(home, *p)
		}
	}
}

// Validate rejects settings the game cannot run with.
func (s Settings) Validate() error {
	switch s.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("settings: unknown backend %q", s.Backend)
	}
	switch s.Mode {
	case ModeQuiet, ModeRoam, ModeMischief:
	default:
		return fmt.Errorf("settings: unknown mode %q", s.Mode)
	}
	if s.QuietHours.Start < 0 || s.QuietHours.Start > 23 || s.QuietHours.End < 0 || s.QuietHours.End > 23 {
		return fmt.Errorf("settings: quiet hours must be between 0 and 23")
	}
	if s.AutoSave < 0 {
		return fmt.Errorf("settings: negative autosave interval")
	}
	return nil
}

// Save writes s to the settings file.
func Save(s Settings) error {
	path, err := Path()
	if err != nil {
		return err
	}
	raw, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

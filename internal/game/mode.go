package game

import (
	"time"

	"deskpet/internal/player"
)

// Mode sets how lively the pet is: how often the simulation ticks and how
// often it tries to talk.
type Mode struct {
	Name           string        `json:"name"`
	TickInterval   time.Duration `json:"tick_interval"`
	DialogInterval time.Duration `json:"dialog_interval"`
	DialogEnabled  bool          `json:"dialog_enabled"`
}

var modes = map[string]Mode{
	"quiet":    {Name: "quiet", TickInterval: 10 * time.Second, DialogInterval: time.Minute, DialogEnabled: false},
	"roam":     {Name: "roam", TickInterval: time.Second, DialogInterval: 30 * time.Second, DialogEnabled: true},
	"mischief": {Name: "mischief", TickInterval: 800 * time.Millisecond, DialogInterval: 20 * time.Second, DialogEnabled: true},
}

// LookupMode returns the named mode, falling back to roam.
func LookupMode(name string) Mode {
	if m, ok := modes[name]; ok {
		return m
	}
	return modes["roam"]
}

// EffectiveMode is the configured mode, forced to quiet inside quiet hours.
func EffectiveMode(settings player.Settings, now time.Time) Mode {
	if settings.QuietHours.Contains(now.Local().Hour()) {
		return modes["quiet"]
	}
	return LookupMode(settings.Mode)
}

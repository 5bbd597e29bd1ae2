// Package store persists the pet and player between runs.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"deskpet/internal/pet"
	"deskpet/internal/player"
)

// Version is written into every save.
const Version = "1.0.0"

// ErrNoSave is returned by Load when nothing has been saved yet.
var ErrNoSave = errors.New("store: no save")

// SaveData is the persisted envelope.
type SaveData struct {
	Version   string        `json:"version"`
	Pet       pet.Pet       `json:"pet"`
	Player    player.Player `json:"player"`
	LastSaved time.Time     `json:"last_saved"`
}

// Store loads and saves the game.
type Store interface {
	Load() (SaveData, error)
	Save(data SaveData) error
	Close() error
}

// Backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DefaultKeep is how many snapshots the sqlite backend retains.
const DefaultKeep = 50

// Open returns the store for backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	switch backend {
	case BackendJSON, "":
		return NewFile(filepath.Join(dir, "save.json")), nil
	case BackendSQLite:
		s, err := OpenSQLite(filepath.Join(dir, "saves.sqlite"), DefaultKeep)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown save backend %q", backend)
}

func stamp(data *SaveData) {
	if data.Version == "" {
		data.Version = Version
	}
	if data.LastSaved.IsZero() {
		data.LastSaved = pet.TimeNow()
	}
}

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// File keeps the save as one indented JSON document.
type File struct {
	path string
}

// NewFile returns a File store writing to path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the save file location.
func (f *File) Path() string { return f.path }

// Load reads the save file.
func (f *File) Load() (SaveData, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return SaveData{}, ErrNoSave
	}
	if err != nil {
		return SaveData{}, fmt.Errorf("read save: %w", err)
	}

	var data SaveData
	if err := json.Unmarshal(raw, &data); err != nil {
		return SaveData{}, fmt.Errorf("decode save: %w", err)
	}
	return data, nil
}

// Save writes the save file through a temporary file so a crash never
// leaves a truncated save behind.
func (f *File) Save(data SaveData) error {
	stamp(&data)
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}
	log.Printf("Saved %s at %s", data.Pet.Name, data.LastSaved.Format("15:04:05"))
	return nil
}

// Close is a no-op.
func (f *File) Close() error { return nil }

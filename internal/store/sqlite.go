package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

// SQLite keeps a rolling history of zstd-compressed snapshots. The newest
// row is the current save.
type SQLite struct {
	db   *sql.DB
	keep int
	enc  *zstd.Encoder
	dec  *zstd.Decoder
}

// Entry describes one stored snapshot.
type Entry struct {
	ID      int64
	SavedAt time.Time
	PetID   string
	Level   int
	Coins   int
	Size    int
}

// OpenSQLite opens or creates the database at path and keeps at most keep
// snapshots. keep <= 0 keeps everything.
func OpenSQLite(path string, keep int) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db, keep: keep, enc: enc, dec: dec}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			saved_at TEXT NOT NULL,
			version TEXT NOT NULL,
			pet_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			coins INTEGER NOT NULL,
			payload BLOB NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS saves_saved_at ON saves(saved_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Save appends a snapshot and trims the history.
func (s *SQLite) Save(data SaveData) error {
	stamp(&data)
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	payload := s.enc.EncodeAll(raw, nil)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO saves(saved_at, version, pet_id, level, coins, payload) VALUES(?, ?, ?, ?, ?, ?)`,
		data.LastSaved.UTC().Format(time.RFC3339Nano), data.Version, data.Pet.ID,
		data.Pet.Level, data.Player.Coins, payload,
	)
	if err != nil {
		return fmt.Errorf("insert save: %w", err)
	}
	if s.keep > 0 {
		_, err = tx.Exec(
			`DELETE FROM saves WHERE id NOT IN (SELECT id FROM saves ORDER BY id DESC LIMIT ?)`,
			s.keep,
		)
		if err != nil {
			return fmt.Errorf("trim saves: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load returns the newest snapshot.
func (s *SQLite) Load() (SaveData, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM saves ORDER BY id DESC LIMIT 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return SaveData{}, ErrNoSave
	}
	if err != nil {
		return SaveData{}, fmt.Errorf("query save: %w", err)
	}
	return s.decode(payload)
}

// LoadID returns the snapshot with the given id.
func (s *SQLite) LoadID(id int64) (SaveData, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM saves WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return SaveData{}, ErrNoSave
	}
	if err != nil {
		return SaveData{}, fmt.Errorf("query save %d: %w", id, err)
	}
	return s.decode(payload)
}

func (s *SQLite) decode(payload []byte) (SaveData, error) {
	raw, err := s.dec.DecodeAll(payload, nil)
	if err != nil {
		return SaveData{}, fmt.Errorf("decompress save: %w", err)
	}
	var data SaveData
	if err := json.Unmarshal(raw, &data); err != nil {
		return SaveData{}, fmt.Errorf("decode save: %w", err)
	}
	return data, nil
}

// History lists up to limit snapshots, newest first.
func (s *SQLite) History(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.keep
	}
	if limit <= 0 {
		limit = DefaultKeep
	}
	rows, err := s.db.Query(
		`SELECT id, saved_at, pet_id, level, coins, length(payload) FROM saves ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			savedAt string
		)
		if err := rows.Scan(&e.ID, &savedAt, &e.PetID, &e.Level, &e.Coins, &e.Size); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.SavedAt, _ = time.Parse(time.RFC3339Nano, savedAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database and codecs.
func (s *SQLite) Close() error {
	s.dec.Close()
	_ = s.enc.Close()
	return s.db.Close()
}

package workspace

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/extend/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one key/value record in the catalog.
type Entry struct {
	ID        string    `json:"entry_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Catalog is the workspace's sqlite-backed key/value store. It is only
// available once Init has created the database file.
type Catalog struct {
	db   *sql.DB
	path string
}

// Create opens the existing catalog database in the workspace data
// directory. It never creates the file, so building or computing a Catalog
// leaves the disk untouched. It refuses when the data directory or the
// database is missing or cannot be opened; a later request retries.
func (*Catalog) Create(ws *Workspace) (*Catalog, bool) {
	dataDir, err := ws.dataDir()
	if err != nil {
		ws.logger.Warn("resolve data dir", zap.Error(err))
		return nil, false
	}
	if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
		ws.logger.Debug("catalog unavailable: data dir missing", zap.String("dir", dataDir))
		return nil, false
	}

	path := filepath.Join(dataDir, CatalogFileName)
	if _, err := os.Stat(path); err != nil {
		ws.logger.Debug("catalog unavailable: database missing", zap.String("path", path))
		return nil, false
	}
	c, err := openCatalog(path)
	if err != nil {
		ws.logger.Warn("open catalog", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	ws.logger.Debug("catalog opened", zap.String("path", path))
	return c, true
}

// createCatalogIfMissing creates the database file at path with the catalog
// schema. An existing file is left untouched.
func createCatalogIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	c, err := openCatalog(path)
	if err != nil {
		return err
	}
	return c.Close()
}

func openCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Catalog{db: db, path: path}, nil
}

// Path returns the database file path.
func (c *Catalog) Path() string {
	return c.path
}

// Put creates or updates the entry for key and returns its ID. A new entry
// gets a UUID v7; an existing entry keeps its ID.
func (c *Catalog) Put(key, value string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", types.ErrInvalidKey
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := c.db.Exec(`
		INSERT INTO entries (entry_id, entry_key, entry_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at`,
		newUUID(), key, value, now, now)
	if err != nil {
		return "", fmt.Errorf("put %q: %w", key, err)
	}

	var id string
	if err := c.db.QueryRow(`SELECT entry_id FROM entries WHERE entry_key = ?`, key).Scan(&id); err != nil {
		return "", fmt.Errorf("read id for %q: %w", key, err)
	}
	return id, nil
}

// Get returns the entry for key, or ErrEntryNotFound.
func (c *Catalog) Get(key string) (Entry, error) {
	row := c.db.QueryRow(`
		SELECT entry_id, entry_key, entry_value, created_at, updated_at
		FROM entries WHERE entry_key = ?`, strings.TrimSpace(key))
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, types.ErrEntryNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get %q: %w", key, err)
	}
	return e, nil
}

// Delete removes the entry for key, or returns ErrEntryNotFound.
func (c *Catalog) Delete(key string) error {
	res, err := c.db.Exec(`DELETE FROM entries WHERE entry_key = ?`, strings.TrimSpace(key))
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	if n == 0 {
		return types.ErrEntryNotFound
	}
	return nil
}

// List returns every entry ordered by key.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query(`
		SELECT entry_id, entry_key, entry_value, created_at, updated_at
		FROM entries ORDER BY entry_key`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e                    Entry
		createdAt, updatedAt string
	)
	if err := s.Scan(&e.ID, &e.Key, &e.Value, &createdAt, &updatedAt); err != nil {
		return Entry{}, err
	}
	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Entry{}, fmt.Errorf("parse created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return Entry{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return e, nil
}

// newUUID generates a UUID v7 string, falling back to v4.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

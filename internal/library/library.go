// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library keeps a local SQLite ledger of generated decks so past
// runs can be listed and searched. It records metadata only; the .pptx files
// and generated assets live on disk and are never reused between runs.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/deck-engine/pkg/types"
)

const dbFile = "decks.db"

// Store manages the deck library SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the library database at libraryDir/decks.db,
// creating the schema if it does not exist.
func NewStore(cfg types.LibraryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.LibraryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	dbPath := filepath.Join(cfg.LibraryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS decks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			topic TEXT NOT NULL,
			title TEXT NOT NULL,
			slides INTEGER NOT NULL,
			images INTEGER NOT NULL,
			path TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decks_created_at ON decks(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over topic and title, with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='decks_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE decks_fts USING fts5(topic, title, content=decks, content_rowid=rowid)`,
			`CREATE TRIGGER decks_ai AFTER INSERT ON decks BEGIN
				INSERT INTO decks_fts(rowid, topic, title) VALUES (new.rowid, new.topic, new.title);
			END`,
			`CREATE TRIGGER decks_ad AFTER DELETE ON decks BEGIN
				INSERT INTO decks_fts(decks_fts, rowid, topic, title) VALUES('delete', old.rowid, old.topic, old.title);
			END`,
			`CREATE TRIGGER decks_au AFTER UPDATE ON decks BEGIN
				INSERT INTO decks_fts(decks_fts, rowid, topic, title) VALUES('delete', old.rowid, old.topic, old.title);
				INSERT INTO decks_fts(rowid, topic, title) VALUES (new.rowid, new.topic, new.title);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Record inserts or replaces the deck's library row. Re-generating a deck
// for the same topic updates the existing record.
func (s *Store) Record(ctx context.Context, rec *types.DeckRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decks (id, topic, title, slides, images, path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			topic = excluded.topic,
			title = excluded.title,
			slides = excluded.slides,
			images = excluded.images,
			path = excluded.path,
			created_at = excluded.created_at`,
		rec.ID, rec.Topic, rec.Title, rec.Slides, rec.Images, rec.Path,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording deck %s: %w", rec.ID, err)
	}
	return nil
}

// List returns the most recently created decks, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]types.DeckRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, title, slides, images, path, created_at
		FROM decks ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing decks: %w", err)
	}
	defer rows.Close()

	return scanDecks(rows)
}

// Search runs an FTS5 match over deck topics and titles, ranked by relevance.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.DeckRecord, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.topic, d.title, d.slides, d.images, d.path, d.created_at
		FROM decks_fts
		JOIN decks d ON d.rowid = decks_fts.rowid
		WHERE decks_fts MATCH ?
		ORDER BY decks_fts.rank
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching decks: %w", err)
	}
	defer rows.Close()

	return scanDecks(rows)
}

// Get returns a single deck record by ID.
func (s *Store) Get(ctx context.Context, id string) (*types.DeckRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, topic, title, slides, images, path, created_at
		FROM decks WHERE id = ?`, id)

	rec, err := scanDeck(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("deck %s not found", id)
		}
		return nil, fmt.Errorf("looking up deck %s: %w", id, err)
	}
	return rec, nil
}

func scanDecks(rows *sql.Rows) ([]types.DeckRecord, error) {
	var decks []types.DeckRecord
	for rows.Next() {
		rec, err := scanDeck(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		decks = append(decks, *rec)
	}
	return decks, rows.Err()
}

func scanDeck(scan func(...any) error) (*types.DeckRecord, error) {
	var rec types.DeckRecord
	var createdAt string

	if err := scan(&rec.ID, &rec.Topic, &rec.Title, &rec.Slides, &rec.Images, &rec.Path, &createdAt); err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at for %s: %w", rec.ID, err)
	}
	rec.CreatedAt = t
	return &rec, nil
}

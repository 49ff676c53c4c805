// Package index materializes a catalog tree into a SQLite database so
// downstream tools can query collections and items without walking JSON
// files. The database path is an OS path; the catalog tree itself is read
// through the same filesystem seam the rest of the tool uses.
package index

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// Writer persists catalog contents into a SQLite database.
type Writer struct {
	db             *sql.DB
	tx             *sql.Tx
	stmtCollection *sql.Stmt
	stmtItem       *sql.Stmt
	batchSize      int
	count          int
	mu             sync.Mutex
}

// NewWriter creates (or overwrites the tables of) the database at dbPath.
func NewWriter(dbPath string) (*Writer, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Performance tuning for bulk insert
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		id TEXT PRIMARY KEY,
		title TEXT,
		license TEXT,
		href TEXT NOT NULL,
		record JSON NOT NULL
	);

	CREATE TABLE IF NOT EXISTS items (
		collection_id TEXT NOT NULL,
		id TEXT NOT NULL,
		href TEXT NOT NULL,
		datetime TEXT,
		minx REAL, miny REAL, maxx REAL, maxy REAL,
		record JSON NOT NULL,
		PRIMARY KEY (collection_id, id)
	);
	CREATE INDEX IF NOT EXISTS idx_items_datetime ON items(datetime);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	for _, stmt := range []string{"DELETE FROM items", "DELETE FROM collections"} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("reset tables: %w", err)
		}
	}

	w := &Writer{db: db, batchSize: 1000}
	if err := w.beginTx(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) beginTx() error {
	var err error
	w.tx, err = w.db.Begin()
	if err != nil {
		return err
	}
	w.stmtCollection, err = w.tx.Prepare(
		`INSERT OR REPLACE INTO collections (id, title, license, href, record) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	w.stmtItem, err = w.tx.Prepare(
		`INSERT OR REPLACE INTO items (collection_id, id, href, datetime, minx, miny, maxx, maxy, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	return err
}

// CollectionRow is one collection record headed for the database.
type CollectionRow struct {
	ID      string
	Title   string
	License string
	Href    string
	Record  []byte
}

// ItemRow is one item record headed for the database. Datetime and Bbox are
// nil when the source document does not carry them.
type ItemRow struct {
	CollectionID string
	ID           string
	Href         string
	Datetime     *string
	Bbox         []float64 // [minx, miny, maxx, maxy] when len >= 4
	Record       []byte
}

// AddCollection queues one collection row.
func (w *Writer) AddCollection(row CollectionRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.stmtCollection.Exec(row.ID, row.Title, row.License, row.Href, string(row.Record)); err != nil {
		return fmt.Errorf("insert collection %s: %w", row.ID, err)
	}
	return w.maybeFlushLocked()
}

// AddItem queues one item row.
func (w *Writer) AddItem(row ItemRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var dt any
	if row.Datetime != nil {
		dt = *row.Datetime
	}
	var minx, miny, maxx, maxy any
	if len(row.Bbox) >= 4 {
		minx, miny, maxx, maxy = row.Bbox[0], row.Bbox[1], row.Bbox[2], row.Bbox[3]
	}
	if _, err := w.stmtItem.Exec(row.CollectionID, row.ID, row.Href, dt, minx, miny, maxx, maxy, string(row.Record)); err != nil {
		return fmt.Errorf("insert item %s/%s: %w", row.CollectionID, row.ID, err)
	}
	return w.maybeFlushLocked()
}

func (w *Writer) maybeFlushLocked() error {
	w.count++
	if w.count%w.batchSize != 0 {
		return nil
	}
	return w.flushLocked()
}

func (w *Writer) flushLocked() error {
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return w.beginTx()
}

// Flush commits the pending batch.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

// Close commits pending rows and closes the database.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tx != nil {
		if err := w.tx.Commit(); err != nil {
			_ = w.db.Close()
			return fmt.Errorf("commit: %w", err)
		}
		w.tx = nil
	}
	return w.db.Close()
}

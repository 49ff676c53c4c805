package index

import (
	"database/sql"
	"fmt"

	"github.com/go-git/go-billy/v5"

	"github.com/agentic-research/stacsmith/internal/stac"
)

// Stats counts what one indexing run wrote.
type Stats struct {
	Collections int
	Items       int
}

// Build walks the catalog tree rooted at rootPath and streams every
// collection and item into the SQLite database at dbPath.
func Build(fs billy.Filesystem, rootPath, dbPath string) (Stats, error) {
	w, err := NewWriter(dbPath)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	walkErr := stac.Walk(fs, rootPath, func(doc *stac.Document) error {
		switch doc.Type() {
		case stac.TypeCollection:
			stats.Collections++
			title, _ := stringField(doc, "title")
			return w.AddCollection(CollectionRow{
				ID:      doc.ID(),
				Title:   title,
				License: doc.License(),
				Href:    doc.Href,
				Record:  record(doc),
			})
		case stac.TypeFeature:
			stats.Items++
			return w.AddItem(itemRow(doc))
		default:
			// Root and intermediate catalogs carry no queryable payload.
			return nil
		}
	})
	if walkErr != nil {
		_ = w.Close()
		return stats, walkErr
	}
	if err := w.Close(); err != nil {
		return stats, err
	}
	return stats, nil
}

func itemRow(doc *stac.Document) ItemRow {
	row := ItemRow{
		ID:     doc.ID(),
		Href:   doc.Href,
		Record: record(doc),
	}
	row.CollectionID, _ = stringField(doc, "collection")

	if props, ok := doc.Get("properties"); ok {
		if m, ok := props.(map[string]any); ok {
			if dt, ok := m["datetime"].(string); ok {
				row.Datetime = &dt
			}
		}
	}
	if raw, ok := doc.Get("bbox"); ok {
		if arr, ok := raw.([]any); ok {
			bbox := make([]float64, 0, len(arr))
			for _, v := range arr {
				f, ok := toFloat(v)
				if !ok {
					return row // malformed bbox, index without spatial columns
				}
				bbox = append(bbox, f)
			}
			row.Bbox = bbox
		}
	}
	return row
}

func record(doc *stac.Document) []byte {
	if raw := doc.Raw(); raw != nil {
		return raw
	}
	return doc.Encode()
}

func stringField(doc *stac.Document, key string) (string, bool) {
	v, ok := doc.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// toFloat widens the numeric types the JSON parser produces.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// StreamItems iterates over all indexed items, calling fn for each row.
// Only one record is alive at a time, keeping memory usage constant.
func StreamItems(dbPath string, fn func(collectionID, id string, record []byte) error) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.Query("SELECT collection_id, id, record FROM items ORDER BY collection_id, id")
	if err != nil {
		return fmt.Errorf("query items: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		var collectionID, id, record string
		if err := rows.Scan(&collectionID, &id, &record); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		if err := fn(collectionID, id, []byte(record)); err != nil {
			return err
		}
	}
	return rows.Err()
}

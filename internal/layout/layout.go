// Package layout decides where documents live when they are attached to a
// catalog tree. Strategies are pure: given a parent directory href and an
// identifier they return the href the document should be written at, using
// URL segment joining when the parent is a URL and filesystem joining
// otherwise.
package layout

import "github.com/agentic-research/stacsmith/internal/stac"

// Strategy computes placement hrefs for documents being attached to a parent.
type Strategy interface {
	// CollectionHref returns the href for a collection document attached
	// under parentDir.
	CollectionHref(parentDir, collectionID string) string
	// ItemHref returns the href for an item document attached under
	// parentDir (normally the directory holding the owning collection).
	ItemHref(parentDir, itemID string) string
}

// BestPractices places documents the way the STAC best-practices layout does:
// each collection in its own directory named by id, each item in its own
// directory beside the collection document.
type BestPractices struct{}

func (BestPractices) CollectionHref(parentDir, collectionID string) string {
	return stac.Join(parentDir, collectionID, "collection.json")
}

func (BestPractices) ItemHref(parentDir, itemID string) string {
	return stac.Join(parentDir, itemID, itemID+".json")
}

// ItemsSubdir keeps the best-practices collection placement but gathers every
// item file into a single "items" subdirectory of the collection, producing
// <collection-dir>/items/<item-id>.json.
type ItemsSubdir struct {
	BestPractices
}

func (ItemsSubdir) ItemHref(parentDir, itemID string) string {
	return stac.Join(parentDir, "items", itemID+".json")
}

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemsSubdir_ItemHref(t *testing.T) {
	s := ItemsSubdir{}
	assert.Equal(t, "foo/items/bar.json", s.ItemHref("foo", "bar"))
}

func TestItemsSubdir_ItemHrefURL(t *testing.T) {
	s := ItemsSubdir{}
	got := s.ItemHref("https://example.org/cat", "x")
	assert.Equal(t, "https://example.org/cat/items/x.json", got)
}

func TestItemsSubdir_CollectionHrefKeepsBestPractices(t *testing.T) {
	s := ItemsSubdir{}
	assert.Equal(t, "release/v1/gcts/collection.json", s.CollectionHref("release/v1", "gcts"))
}

func TestBestPractices_ItemHref(t *testing.T) {
	s := BestPractices{}
	assert.Equal(t, "foo/bar/bar.json", s.ItemHref("foo", "bar"))
}

func TestBestPractices_CollectionHrefURL(t *testing.T) {
	s := BestPractices{}
	got := s.CollectionHref("https://example.org/stac", "coastal-grid")
	assert.Equal(t, "https://example.org/stac/coastal-grid/collection.json", got)
}

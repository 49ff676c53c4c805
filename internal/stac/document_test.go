package stac

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const collectionFixture = `{
  "type": "Collection",
  "stac_version": "1.0.0",
  "id": "gcts",
  "description": "Global coastal transect system",
  "license": "CC-BY-4.0",
  "extent": {
    "spatial": {"bbox": [[-180, -90, 180, 90]]},
    "temporal": {"interval": [["2023-01-01T00:00:00Z", null]]}
  },
  "custom:field": {"nested": [1, 2, 3]},
  "links": [
    {"rel": "self", "href": "https://old.example.org/gcts/collection.json"},
    {"rel": "item", "href": "./items/t-1.json"}
  ]
}`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(collectionFixture), "gcts/collection.json")
	require.NoError(t, err)

	assert.Equal(t, "gcts", doc.ID())
	assert.Equal(t, TypeCollection, doc.Type())
	assert.Equal(t, "1.0.0", doc.StacVersion())
	assert.Equal(t, "CC-BY-4.0", doc.License())
	assert.Equal(t, "gcts/collection.json", doc.Href)
}

func TestParseDocument_NotAnObject(t *testing.T) {
	_, err := ParseDocument([]byte(`[1, 2, 3]`), "x.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want object")
}

func TestParseDocument_Malformed(t *testing.T) {
	_, err := ParseDocument([]byte(`{"id": `), "x.json")
	assert.Error(t, err)
}

func TestLinksAccessors(t *testing.T) {
	doc, err := ParseDocument([]byte(collectionFixture), "gcts/collection.json")
	require.NoError(t, err)

	links := doc.Links()
	require.Len(t, links, 2)
	assert.Equal(t, RelSelf, links[0].Rel)
	assert.Equal(t, "https://old.example.org/gcts/collection.json", doc.SelfHref())

	items := doc.LinksByRel(RelItem)
	require.Len(t, items, 1)
	assert.Equal(t, "./items/t-1.json", items[0].Href)
}

func TestSetLink_ReplacesInPlace(t *testing.T) {
	doc, err := ParseDocument([]byte(collectionFixture), "gcts/collection.json")
	require.NoError(t, err)

	doc.SetLink(Link{Rel: RelSelf, Href: "new-self.json", Type: MediaTypeJSON})
	links := doc.Links()
	require.Len(t, links, 2)
	// Replacement keeps the original position, item link stays last.
	assert.Equal(t, "new-self.json", links[0].Href)
	assert.Equal(t, RelItem, links[1].Rel)
}

func TestSetLink_AppendsWhenAbsent(t *testing.T) {
	doc := NewCatalog("c", "d", "")
	doc.SetLink(Link{Rel: RelRoot, Href: "./catalog.json"})
	require.Len(t, doc.Links(), 1)
}

func TestRemoveLinks(t *testing.T) {
	doc, err := ParseDocument([]byte(collectionFixture), "gcts/collection.json")
	require.NoError(t, err)

	doc.RemoveLinks(RelSelf)
	assert.Empty(t, doc.SelfHref())
	assert.Len(t, doc.Links(), 1)
}

func TestEncode_Deterministic(t *testing.T) {
	doc, err := ParseDocument([]byte(collectionFixture), "gcts/collection.json")
	require.NoError(t, err)

	first := doc.Encode()
	second := doc.Encode()
	assert.Equal(t, first, second)
	assert.Equal(t, byte('\n'), first[len(first)-1])
}

func TestEncode_PreservesUnknownFields(t *testing.T) {
	doc, err := ParseDocument([]byte(collectionFixture), "gcts/collection.json")
	require.NoError(t, err)

	doc.SetLink(Link{Rel: RelRoot, Href: "../catalog.json"})
	out := string(doc.Encode())
	assert.Contains(t, out, `"custom:field"`)
	assert.Contains(t, out, `"nested"`)
}

func TestWriteReadRoundTrip(t *testing.T) {
	fs := memfs.New()
	doc, err := ParseDocument([]byte(collectionFixture), "release/v1/gcts/collection.json")
	require.NoError(t, err)
	require.NoError(t, doc.Write(fs))

	got, err := ReadDocument(fs, "release/v1/gcts/collection.json")
	require.NoError(t, err)
	assert.Equal(t, doc.ID(), got.ID())
	assert.Equal(t, doc.Encode(), got.Encode())
}

func TestNewCatalog(t *testing.T) {
	doc := NewCatalog("my-cat", "a catalog", "My Catalog")
	assert.Equal(t, TypeCatalog, doc.Type())
	assert.Equal(t, Version, doc.StacVersion())
	assert.Empty(t, doc.Links())

	title, ok := doc.Get("title")
	require.True(t, ok)
	assert.Equal(t, "My Catalog", title)
}

func TestWalk_VisitsChildrenAndItems(t *testing.T) {
	fs := memfs.New()
	writeDoc := func(p, body string) {
		doc, err := ParseDocument([]byte(body), p)
		require.NoError(t, err)
		require.NoError(t, doc.Write(fs))
	}

	writeDoc("v1/catalog.json", `{
		"type": "Catalog", "id": "root",
		"links": [{"rel": "child", "href": "./gcts/collection.json"}]
	}`)
	writeDoc("v1/gcts/collection.json", `{
		"type": "Collection", "id": "gcts",
		"links": [
			{"rel": "root", "href": "../catalog.json"},
			{"rel": "item", "href": "./items/t-1.json"}
		]
	}`)
	writeDoc("v1/gcts/items/t-1.json", `{
		"type": "Feature", "id": "t-1",
		"links": [{"rel": "parent", "href": "../collection.json"}]
	}`)

	var visited []string
	err := Walk(fs, "v1/catalog.json", func(doc *Document) error {
		visited = append(visited, doc.ID())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "gcts", "t-1"}, visited)
}

func TestWalk_MissingChildFails(t *testing.T) {
	fs := memfs.New()
	doc, err := ParseDocument([]byte(`{
		"type": "Catalog", "id": "root",
		"links": [{"rel": "child", "href": "./nope/collection.json"}]
	}`), "v1/catalog.json")
	require.NoError(t, err)
	require.NoError(t, doc.Write(fs))

	err = Walk(fs, "v1/catalog.json", func(*Document) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope/collection.json")
}

func TestWalk_CycleTerminates(t *testing.T) {
	fs := memfs.New()
	doc, err := ParseDocument([]byte(`{
		"type": "Catalog", "id": "root",
		"links": [{"rel": "child", "href": "./catalog.json"}]
	}`), "v1/catalog.json")
	require.NoError(t, err)
	require.NoError(t, doc.Write(fs))

	count := 0
	err = Walk(fs, "v1/catalog.json", func(*Document) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

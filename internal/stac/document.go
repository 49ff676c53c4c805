// Package stac holds the in-memory representation of STAC JSON documents.
//
// Documents are kept as parsed JSON maps rather than rigid structs: collection
// and item files are read verbatim from disk and must round-trip with every
// field intact, including ones this tool knows nothing about. Typed accessors
// cover the handful of fields the builder and validator actually touch.
package stac

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
)

// Version is the STAC version stamped on documents this tool creates.
const Version = "1.0.0"

// Document type discriminators, as carried in the top-level "type" field.
const (
	TypeCatalog    = "Catalog"
	TypeCollection = "Collection"
	TypeFeature    = "Feature"
)

// Document is one STAC JSON document plus the location it was read from (or
// will be written to). A zero Href means the document only exists in memory.
type Document struct {
	Href string

	raw    []byte
	fields map[string]any
}

// ParseDocument parses raw JSON bytes into a Document anchored at href.
func ParseDocument(data []byte, href string) (*Document, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", href, err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parse %s: top-level JSON value is %T, want object", href, v)
	}
	return &Document{Href: href, raw: data, fields: m}, nil
}

// NewCatalog constructs a fresh in-memory catalog document with no links.
func NewCatalog(id, description, title string) *Document {
	fields := map[string]any{
		"type":         TypeCatalog,
		"stac_version": Version,
		"id":           id,
		"description":  description,
		"links":        []any{},
	}
	if title != "" {
		fields["title"] = title
	}
	return &Document{fields: fields}
}

// Raw returns the bytes the document was parsed from, nil for documents
// constructed in memory.
func (d *Document) Raw() []byte { return d.raw }

// ID returns the document id, or "" when absent or not a string.
func (d *Document) ID() string {
	s, _ := d.fields["id"].(string)
	return s
}

// Type returns the top-level "type" field (Catalog, Collection or Feature).
func (d *Document) Type() string {
	s, _ := d.fields["type"].(string)
	return s
}

// StacVersion returns the declared stac_version, or "" when absent.
func (d *Document) StacVersion() string {
	s, _ := d.fields["stac_version"].(string)
	return s
}

// License returns the declared license identifier, or "" when absent.
func (d *Document) License() string {
	s, _ := d.fields["license"].(string)
	return s
}

// Get exposes an arbitrary top-level field.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.fields[key]
	return v, ok
}

// Set writes an arbitrary top-level field.
func (d *Document) Set(key string, v any) {
	d.fields[key] = v
}

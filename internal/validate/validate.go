// Package validate checks STAC catalog trees against the core document
// schemas. The schemas are compiled once from embedded copies so validation
// runs never depend on the network; extension schemas declared by documents
// are deliberately not fetched.
package validate

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/agentic-research/stacsmith/internal/stac"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBase = "stacsmith://schemas/"

// placeholderLicenses are license values strict mode rejects: they tell a
// machine consumer nothing about terms of use.
var placeholderLicenses = map[string]bool{
	"various":     true,
	"proprietary": true,
}

// Validator validates individual documents and whole trees.
type Validator struct {
	// Strict additionally rejects placeholder license values on catalogs
	// and collections unless the document carries a license link.
	Strict bool

	catalog    *jsonschema.Schema
	collection *jsonschema.Schema
	item       *jsonschema.Schema
}

// New compiles the embedded core schemas.
func New() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7

	for _, name := range []string{"common.json", "catalog.json", "collection.json", "item.json"} {
		data, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("embedded schema %s: %w", name, err)
		}
		if err := c.AddResource(schemaBase+name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	v := &Validator{}
	var err error
	if v.catalog, err = c.Compile(schemaBase + "catalog.json"); err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if v.collection, err = c.Compile(schemaBase + "collection.json"); err != nil {
		return nil, fmt.Errorf("compile collection schema: %w", err)
	}
	if v.item, err = c.Compile(schemaBase + "item.json"); err != nil {
		return nil, fmt.Errorf("compile item schema: %w", err)
	}
	return v, nil
}

// ValidateDocument checks one document against the schema its "type" field
// selects.
func (v *Validator) ValidateDocument(doc *stac.Document) error {
	var schema *jsonschema.Schema
	switch doc.Type() {
	case stac.TypeCatalog:
		schema = v.catalog
	case stac.TypeCollection:
		schema = v.collection
	case stac.TypeFeature:
		schema = v.item
	default:
		return fmt.Errorf("%s: unknown document type %q", v.label(doc), doc.Type())
	}

	// The schema engine wants encoding/json decoded values, so documents
	// are validated from their serialized bytes, not the in-memory map.
	data := doc.Raw()
	if data == nil {
		data = doc.Encode()
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("%s: %w", v.label(doc), err)
	}
	if err := schema.Validate(decoded); err != nil {
		return fmt.Errorf("%s: %w", v.label(doc), err)
	}

	if v.Strict && doc.Type() != stac.TypeFeature {
		if err := v.checkLicense(doc); err != nil {
			return fmt.Errorf("%s: %w", v.label(doc), err)
		}
	}
	return nil
}

func (v *Validator) checkLicense(doc *stac.Document) error {
	license := doc.License()
	if !placeholderLicenses[license] {
		return nil
	}
	if len(doc.LinksByRel("license")) > 0 {
		return nil
	}
	return fmt.Errorf("placeholder license %q without a license link", license)
}

func (v *Validator) label(doc *stac.Document) string {
	if doc.Href != "" {
		return doc.Href
	}
	if id := doc.ID(); id != "" {
		return id
	}
	return "document"
}

// Stats counts the documents a tree validation visited.
type Stats struct {
	Catalogs    int
	Collections int
	Items       int
}

// DocumentError is one document's validation failure inside a tree run.
type DocumentError struct {
	Href string
	Err  error
}

func (e DocumentError) Error() string { return e.Err.Error() }

func (e DocumentError) Unwrap() error { return e.Err }

// TreeError aggregates every validation failure found in one tree run.
type TreeError struct {
	Errors []DocumentError
}

func (e *TreeError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d documents failed validation:", len(e.Errors))
	for _, de := range e.Errors {
		b.WriteString("\n  ")
		b.WriteString(de.Error())
	}
	return b.String()
}

// ValidateTree loads the document at rootPath, materializes the whole tree
// by following child and item links, and validates every node. Load failures
// abort immediately; schema failures are aggregated into a TreeError so one
// run reports everything that is wrong.
func (v *Validator) ValidateTree(fs billy.Filesystem, rootPath string) (Stats, error) {
	var stats Stats
	var failures []DocumentError

	err := stac.Walk(fs, rootPath, func(doc *stac.Document) error {
		switch doc.Type() {
		case stac.TypeCollection:
			stats.Collections++
		case stac.TypeFeature:
			stats.Items++
		default:
			stats.Catalogs++
		}
		if verr := v.ValidateDocument(doc); verr != nil {
			failures = append(failures, DocumentError{Href: doc.Href, Err: verr})
		}
		return nil
	})
	if err != nil {
		return stats, err
	}
	if len(failures) > 0 {
		return stats, &TreeError{Errors: failures}
	}
	return stats, nil
}

// Package builder assembles a root catalog document over a set of
// pre-existing collection documents and persists the tree in two phases:
// first fully self-contained (every inter-document link relative, so the
// tree can be moved as a unit), then re-anchored (the root alone claims its
// public absolute URL as identity).
package builder

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"

	"github.com/agentic-research/stacsmith/internal/config"
	"github.com/agentic-research/stacsmith/internal/layout"
	"github.com/agentic-research/stacsmith/internal/stac"
)

// CatalogFile is the file name of the root document inside the release dir.
const CatalogFile = "catalog.json"

// Outcome tags how a build run terminated.
type Outcome int

const (
	// OutcomeSaved means the tree was written and the root re-anchored.
	OutcomeSaved Outcome = iota
	// OutcomeValidationFailed means the pre-save check rejected the
	// assembled tree and nothing was written.
	OutcomeValidationFailed
	// OutcomeIOError means a read or write outside the per-collection
	// skip boundary failed.
	OutcomeIOError
)

// SkippedCollection records one configured collection that could not be
// attached. Skips are warnings, never fatal.
type SkippedCollection struct {
	ID     string
	Path   string
	Reason string
}

// Result reports what a build run did.
type Result struct {
	Outcome     Outcome
	CatalogPath string
	Attached    []string
	Skipped     []SkippedCollection
}

// Validator checks one assembled document before the tree is written.
type Validator interface {
	ValidateDocument(doc *stac.Document) error
}

// Builder assembles and saves one catalog per call to Build.
type Builder struct {
	FS     billy.Filesystem
	Config config.Catalog
	Layout layout.Strategy

	// Validator, when non-nil, is run over the assembled documents before
	// anything is written; a failure aborts the save. Nil skips the check.
	Validator Validator

	// Logf receives human-readable progress lines. Never nil after New.
	Logf func(format string, args ...any)
}

// New returns a Builder over fs with the items-in-subdirectory layout.
func New(fs billy.Filesystem, cfg config.Catalog) *Builder {
	return &Builder{
		FS:     fs,
		Config: cfg,
		Layout: layout.ItemsSubdir{},
		Logf:   func(string, ...any) {},
	}
}

// Build assembles the catalog under outputDir and persists it. The returned
// error is non-nil exactly when the Outcome is not OutcomeSaved.
func (b *Builder) Build(outputDir string) (Result, error) {
	catalogPath := stac.Join(outputDir, CatalogFile)
	res := Result{Outcome: OutcomeSaved, CatalogPath: catalogPath}

	b.Logf("Creating catalog %q at %s", b.Config.ID, catalogPath)

	// Construct the root in memory and anchor it at its on-disk path. The
	// anchor is what every relative href below is computed against.
	root := b.rootDocument()
	root.Href = catalogPath
	root.SetLink(stac.Link{Rel: stac.RelRoot, Href: stac.Relativize(catalogPath, catalogPath), Type: stac.MediaTypeJSON})

	// Attach children in lexicographic order. A collection that cannot be
	// read is skipped so one bad directory never sinks the whole release.
	ids := append([]string(nil), b.Config.Collections...)
	sort.Strings(ids)

	var collections []*stac.Document
	for _, id := range ids {
		collPath := b.Layout.CollectionHref(outputDir, id)
		coll, err := stac.ReadDocument(b.FS, collPath)
		if err != nil {
			reason := "unreadable"
			if errors.Is(err, os.ErrNotExist) {
				reason = "not found"
				b.Logf("  - Warning: could not find %s, skipping", collPath)
			} else {
				b.Logf("  - Warning: could not process %s: %v, skipping", collPath, err)
			}
			res.Skipped = append(res.Skipped, SkippedCollection{ID: id, Path: collPath, Reason: reason})
			continue
		}
		b.attach(root, coll)
		collections = append(collections, coll)
		res.Attached = append(res.Attached, id)
		b.Logf("  + Read collection %q", id)
	}

	if b.Validator != nil {
		if err := b.validateAll(root, collections); err != nil {
			res.Outcome = OutcomeValidationFailed
			return res, fmt.Errorf("catalog validation failed: %w", err)
		}
	}

	// Phase one: self-contained save. Self links are dropped everywhere.
	// A self link is absolute by definition and would pin the tree to one
	// location; without them the directory is relocatable as a unit. Items
	// referenced by the attached collections are part of the tree and get
	// the same treatment.
	root.RemoveLinks(stac.RelSelf)
	for _, coll := range collections {
		coll.RemoveLinks(stac.RelSelf)
		if err := b.saveItems(root, coll); err != nil {
			res.Outcome = OutcomeIOError
			return res, err
		}
		if err := coll.Write(b.FS); err != nil {
			res.Outcome = OutcomeIOError
			return res, err
		}
	}
	if err := root.Write(b.FS); err != nil {
		res.Outcome = OutcomeIOError
		return res, err
	}

	// Phase two: re-anchor. Reopen the root fresh from disk, overwrite only
	// its self identity with the published URL and save that one file back.
	// Children keep their relative links untouched.
	reopened, err := stac.ReadDocument(b.FS, catalogPath)
	if err != nil {
		res.Outcome = OutcomeIOError
		return res, fmt.Errorf("reopen root for anchoring: %w", err)
	}
	reopened.SetSelfHref(b.Config.PublishedURL)
	if err := reopened.WriteTo(b.FS, catalogPath); err != nil {
		res.Outcome = OutcomeIOError
		return res, fmt.Errorf("anchor root: %w", err)
	}
	b.Logf("Anchored catalog with absolute self link: %s", b.Config.PublishedURL)

	return res, nil
}

// attach wires a loaded collection into the tree: the root gains a child
// link, the collection's root and parent links are rewritten to point back
// at the root's location, all relative.
func (b *Builder) attach(root, coll *stac.Document) {
	root.AddLink(stac.Link{
		Rel:  stac.RelChild,
		Href: stac.Relativize(root.Href, coll.Href),
		Type: stac.MediaTypeJSON,
	})
	up := stac.Relativize(coll.Href, root.Href)
	coll.SetLink(stac.Link{Rel: stac.RelRoot, Href: up, Type: stac.MediaTypeJSON})
	coll.SetLink(stac.Link{Rel: stac.RelParent, Href: up, Type: stac.MediaTypeJSON})
}

// saveItems rewrites and persists every item document a collection links to:
// self links stripped, hierarchy links (root, parent, collection) made
// relative to the item's own location. A referenced item that cannot be read
// aborts the save.
func (b *Builder) saveItems(root, coll *stac.Document) error {
	for _, l := range coll.LinksByRel(stac.RelItem) {
		target := stac.Resolve(coll.Href, l.Href)
		if stac.IsURL(target) {
			// A remote item cannot be rewritten in place.
			continue
		}
		item, err := stac.ReadDocument(b.FS, target)
		if err != nil {
			return fmt.Errorf("resolve item of collection %q: %w", coll.ID(), err)
		}
		item.RemoveLinks(stac.RelSelf)
		item.SetLink(stac.Link{Rel: stac.RelRoot, Href: stac.Relativize(item.Href, root.Href), Type: stac.MediaTypeJSON})
		item.SetLink(stac.Link{Rel: stac.RelParent, Href: stac.Relativize(item.Href, coll.Href), Type: stac.MediaTypeJSON})
		if len(item.LinksByRel(stac.RelCollection)) > 0 {
			item.SetLink(stac.Link{Rel: stac.RelCollection, Href: stac.Relativize(item.Href, coll.Href), Type: stac.MediaTypeJSON})
		}
		if err := item.Write(b.FS); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) validateAll(root *stac.Document, collections []*stac.Document) error {
	if err := b.Validator.ValidateDocument(root); err != nil {
		return err
	}
	for _, coll := range collections {
		if err := b.Validator.ValidateDocument(coll); err != nil {
			return err
		}
	}
	return nil
}

// rootDocument constructs the root catalog from the configured identity:
// global (or configured) spatial extent, open-ended temporal extent,
// keyword summaries, license and providers.
func (b *Builder) rootDocument() *stac.Document {
	cfg := b.Config
	doc := stac.NewCatalog(cfg.ID, cfg.Description, cfg.Title)

	bbox := make([]any, len(cfg.Bbox))
	for i, v := range cfg.Bbox {
		bbox[i] = v
	}
	doc.Set("extent", map[string]any{
		"spatial":  map[string]any{"bbox": []any{bbox}},
		"temporal": map[string]any{"interval": []any{[]any{cfg.TemporalStart, nil}}},
	})

	keywords := make([]any, len(cfg.Keywords))
	for i, k := range cfg.Keywords {
		keywords[i] = k
	}
	doc.Set("summaries", map[string]any{"keywords": keywords})
	doc.Set("license", cfg.License)

	if len(cfg.Providers) > 0 {
		providers := make([]any, 0, len(cfg.Providers))
		for _, p := range cfg.Providers {
			roles := make([]any, len(p.Roles))
			for i, r := range p.Roles {
				roles[i] = r
			}
			entry := map[string]any{"name": p.Name, "roles": roles}
			if p.URL != "" {
				entry["url"] = p.URL
			}
			providers = append(providers, entry)
		}
		doc.Set("providers", providers)
	}
	return doc
}

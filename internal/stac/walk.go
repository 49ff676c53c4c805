package stac

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// Walk traverses a catalog tree depth-first, following child and item links
// outward from the root document. fn is called once per document, root first.
// Documents reachable through more than one link are visited once.
func Walk(fs billy.Filesystem, rootPath string, fn func(doc *Document) error) error {
	seen := make(map[string]bool)
	return walk(fs, filepath.Clean(rootPath), seen, fn)
}

func walk(fs billy.Filesystem, p string, seen map[string]bool, fn func(*Document) error) error {
	if seen[p] {
		return nil
	}
	seen[p] = true

	doc, err := ReadDocument(fs, p)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	for _, l := range doc.Links() {
		if l.Rel != RelChild && l.Rel != RelItem {
			continue
		}
		target := Resolve(doc.Href, l.Href)
		if IsURL(target) {
			return fmt.Errorf("%s: %s link resolves to remote href %s, only local trees are supported", p, l.Rel, target)
		}
		if err := walk(fs, filepath.Clean(target), seen, fn); err != nil {
			return err
		}
	}
	return nil
}

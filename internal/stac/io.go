package stac

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

// writeOptions pins the serialized form: sorted keys, two-space indent.
// Deterministic bytes are what make repeated saves of an unchanged tree
// byte-identical.
var writeOptions = ojg.Options{Indent: 2, Sort: true}

// ReadDocument loads and parses one JSON document from the filesystem.
func ReadDocument(fs billy.Filesystem, p string) (*Document, error) {
	data, err := util.ReadFile(fs, p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return ParseDocument(data, p)
}

// Encode renders the document in the canonical serialized form, with a
// trailing newline.
func (d *Document) Encode() []byte {
	return append([]byte(oj.JSON(d.fields, &writeOptions)), '\n')
}

// WriteTo persists the document at p, creating parent directories as needed.
func (d *Document) WriteTo(fs billy.Filesystem, p string) error {
	if dir := filepath.Dir(p); dir != "." && dir != "/" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(fs, p, d.Encode(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

// Write persists the document at its own Href.
func (d *Document) Write(fs billy.Filesystem) error {
	if d.Href == "" {
		return errors.New("document has no href")
	}
	return d.WriteTo(fs, d.Href)
}

// Package config defines the catalog definition consumed by the builder.
// The definition can be decoded from an HCL file; every field is optional
// and overlays the compiled-in default catalog.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Provider identifies an organization or person involved in producing or
// hosting the cataloged datasets.
type Provider struct {
	Name  string   `hcl:"name,label"`
	Roles []string `hcl:"roles"`
	URL   string   `hcl:"url,optional"`
}

// Catalog is the full definition of the root catalog to assemble.
type Catalog struct {
	ID          string `hcl:"id,optional"`
	Title       string `hcl:"title,optional"`
	Description string `hcl:"description,optional"`

	// PublishedURL is the absolute URL the root document claims as its
	// identity after the re-anchor pass.
	PublishedURL string `hcl:"published_url,optional"`

	License  string   `hcl:"license,optional"`
	Keywords []string `hcl:"keywords,optional"`

	// Collections lists the collection directory names expected under the
	// release directory. Missing ones are skipped, not fatal.
	Collections []string `hcl:"collections,optional"`

	// Bbox is the spatial extent as [west, south, east, north].
	Bbox []float64 `hcl:"bbox,optional"`

	// TemporalStart is the RFC3339 start of the open-ended temporal extent.
	TemporalStart string `hcl:"temporal_start,optional"`

	Providers []Provider `hcl:"provider,block"`
}

// Default returns the built-in catalog definition.
func Default() Catalog {
	return Catalog{
		ID:    "calkoen-phd-stac",
		Title: "Living by the Coast as Sea-level Rise is Accelerating",
		Description: "This SpatioTemporal Asset Catalog (STAC) contains coastal datasets produced or cataloged " +
			"during the PhD research of F.R. Calkoen (TU Delft / Deltares). The catalog includes data on " +
			"coastal classification, coastal exposure, and other related characteristics. " +
			"Following the conclusion of the CoCliCo project in September 2025, accessing the datasets " +
			"now requires an SAS token, which is available from Deltares upon reasonable request. Alternatively, " +
			"the datasets can be downloaded from Zenodo repositories. Please see associated publications for details.",
		PublishedURL: "https://coclico.blob.core.windows.net/stac/v1/catalog.json",
		License:      "various",
		Keywords: []string{
			"coastal analytics",
			"coastal science",
			"coastal hazards",
			"coastal erosion",
			"coastal classification",
			"coastal typology",
			"slippy-map-tiles",
			"quadkeys",
			"climate change",
			"climate adaptation",
			"sea level rise",
			"sentinel",
			"transects",
			"satellite-derived-shorelines",
			"overture",
			"deltares",
			"coclico",
		},
		Collections: []string{
			"gcts",
			"gctr",
			"global-coastal-typology",
			"shoreline-projections",
			"s2-l2a-composite",
			"coastal-grid",
			"shoreline-projections-edito",
			"coastal-zone",
			"shorelinemonitor-series",
			"shorelinemonitor-shorelines",
			"overture-buildings",
			"deltares-delta-dtm",
		},
		Bbox:          []float64{-180, -90, 180, 90},
		TemporalStart: "1984-01-01T00:00:00Z",
		Providers: []Provider{
			{
				Name:  "F.R. Calkoen",
				Roles: []string{"producer"},
				URL:   "https://github.com/floriscalkoen",
			},
			{
				Name:  "Deltares",
				Roles: []string{"processor", "host", "licensor"},
				URL:   "https://www.deltares.nl/en/",
			},
		},
	}
}

// Load reads an HCL catalog definition and overlays it on the defaults.
func Load(path string) (Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source and overlays it on the defaults. filename is used
// only for diagnostics.
func Parse(src []byte, filename string) (Catalog, error) {
	var loaded Catalog
	if err := hclsimple.Decode(filename, src, nil, &loaded); err != nil {
		return Catalog{}, fmt.Errorf("decode config %s: %w", filename, err)
	}
	cfg := overlay(Default(), loaded)
	if err := cfg.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

func overlay(base, loaded Catalog) Catalog {
	if loaded.ID != "" {
		base.ID = loaded.ID
	}
	if loaded.Title != "" {
		base.Title = loaded.Title
	}
	if loaded.Description != "" {
		base.Description = loaded.Description
	}
	if loaded.PublishedURL != "" {
		base.PublishedURL = loaded.PublishedURL
	}
	if loaded.License != "" {
		base.License = loaded.License
	}
	if loaded.Keywords != nil {
		base.Keywords = loaded.Keywords
	}
	if loaded.Collections != nil {
		base.Collections = loaded.Collections
	}
	if loaded.Bbox != nil {
		base.Bbox = loaded.Bbox
	}
	if loaded.TemporalStart != "" {
		base.TemporalStart = loaded.TemporalStart
	}
	if loaded.Providers != nil {
		base.Providers = loaded.Providers
	}
	return base
}

// Validate checks the definition for values the builder cannot work with.
func (c Catalog) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("catalog id must not be empty")
	}
	if c.Description == "" {
		return fmt.Errorf("catalog description must not be empty")
	}
	u, err := url.Parse(c.PublishedURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("published_url %q is not an absolute URL", c.PublishedURL)
	}
	if len(c.Bbox) != 4 {
		return fmt.Errorf("bbox must have exactly 4 values, got %d", len(c.Bbox))
	}
	if _, err := time.Parse(time.RFC3339, c.TemporalStart); err != nil {
		return fmt.Errorf("temporal_start: %w", err)
	}
	return nil
}

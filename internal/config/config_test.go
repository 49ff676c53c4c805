package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "calkoen-phd-stac", cfg.ID)
	assert.Len(t, cfg.Collections, 12)
	assert.Equal(t, []float64{-180, -90, 180, 90}, cfg.Bbox)
	assert.Equal(t, "various", cfg.License)
	require.Len(t, cfg.Providers, 2)
	assert.Equal(t, "Deltares", cfg.Providers[1].Name)
}

func TestParse_OverlaysDefaults(t *testing.T) {
	src := `
id            = "test-catalog"
published_url = "https://stac.example.org/v2/catalog.json"
collections   = ["a", "b"]

provider "ACME" {
  roles = ["host"]
  url   = "https://acme.example.org"
}
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, "test-catalog", cfg.ID)
	assert.Equal(t, "https://stac.example.org/v2/catalog.json", cfg.PublishedURL)
	assert.Equal(t, []string{"a", "b"}, cfg.Collections)
	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, "ACME", cfg.Providers[0].Name)

	// Unset fields keep their defaults.
	assert.Equal(t, Default().Description, cfg.Description)
	assert.Equal(t, Default().TemporalStart, cfg.TemporalStart)
}

func TestParse_RejectsBadHCL(t *testing.T) {
	_, err := Parse([]byte(`id = `), "broken.hcl")
	assert.Error(t, err)
}

func TestParse_RejectsRelativePublishedURL(t *testing.T) {
	_, err := Parse([]byte(`published_url = "v1/catalog.json"`), "test.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "published_url")
}

func TestValidate_Rejects(t *testing.T) {
	for name, mutate := range map[string]func(*Catalog){
		"empty id":          func(c *Catalog) { c.ID = "" },
		"empty description": func(c *Catalog) { c.Description = "" },
		"short bbox":        func(c *Catalog) { c.Bbox = []float64{-180, -90} },
		"bad temporal":      func(c *Catalog) { c.TemporalStart = "1984" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

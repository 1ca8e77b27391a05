package skillgraph

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// document is the on-disk catalog layout.
type document struct {
	Version string  `yaml:"version"`
	Skills  []Skill `yaml:"skills"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. The embedded document is validated
// by tests; an invalid embedded catalog is a programming error.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := LoadBytes(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("skillgraph: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse decodes a YAML catalog document without validating it.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.Version, doc.Skills), nil
}

// LoadBytes decodes and validates a YAML catalog document.
func LoadBytes(data []byte) (*Catalog, error) {
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and validates the catalog at path. An empty path selects the
// built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

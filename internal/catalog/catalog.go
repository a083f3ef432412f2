// Package catalog is the restaurant's information source: general info,
// menu prices, business hours and menu sections.
//
// Prices are never compiled into the binary. A price is nil until the
// catalog file being served publishes one.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// MenuPrice describes one menu offering.
type MenuPrice struct {
	Description  string   `yaml:"description" json:"description"`
	Availability string   `yaml:"availability,omitempty" json:"availability,omitempty"`
	Requirement  string   `yaml:"requirement,omitempty" json:"requirement,omitempty"`
	Price        *float64 `yaml:"price" json:"price"`
}

// MenuItem is one dish or drink in a menu section.
type MenuItem struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Price       *float64 `yaml:"price" json:"price"`
}

// Catalog is the decoded catalog document.
type Catalog struct {
	Info   map[string]string     `yaml:"info"`
	Prices map[string]MenuPrice  `yaml:"prices"`
	Hours  map[string]string     `yaml:"hours"`
	Menu   map[string][]MenuItem `yaml:"menu"`
}

// Source is the information collaborator consulted by the info tools.
type Source interface {
	BusinessInfo(ctx context.Context) (map[string]string, error)
	MenuPrices(ctx context.Context) (map[string]MenuPrice, error)
	BusinessHours(ctx context.Context) (map[string]string, error)
	MenuDetails(ctx context.Context) (map[string][]MenuItem, error)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return &c, nil
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err) // embedded file is validated by tests
	}
	return c
}

// BusinessInfo implements Source.
func (c *Catalog) BusinessInfo(context.Context) (map[string]string, error) { return c.Info, nil }

// MenuPrices implements Source.
func (c *Catalog) MenuPrices(context.Context) (map[string]MenuPrice, error) { return c.Prices, nil }

// BusinessHours implements Source.
func (c *Catalog) BusinessHours(context.Context) (map[string]string, error) { return c.Hours, nil }

// MenuDetails implements Source.
func (c *Catalog) MenuDetails(context.Context) (map[string][]MenuItem, error) { return c.Menu, nil }

// FileSource reads the catalog file on every call, so edits to prices or
// hours are served without a restart. An empty path serves the embedded
// default catalog.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", f.path, err)
	}
	return Parse(data)
}

// BusinessInfo implements Source.
func (f *FileSource) BusinessInfo(ctx context.Context) (map[string]string, error) {
	c, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Info, nil
}

// MenuPrices implements Source.
func (f *FileSource) MenuPrices(ctx context.Context) (map[string]MenuPrice, error) {
	c, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Prices, nil
}

// BusinessHours implements Source.
func (f *FileSource) BusinessHours(ctx context.Context) (map[string]string, error) {
	c, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Hours, nil
}

// MenuDetails implements Source.
func (f *FileSource) MenuDetails(ctx context.Context) (map[string][]MenuItem, error) {
	c, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Menu, nil
}

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pricedCatalog = `
info:
  general: "Grill house"
  parking: "Valet parking at the hotel"
prices:
  ejecutivo:
    description: "Executive"
    price: 18500
  manso:
    description: "Manso"
  carta:
    description: "Full menu"
hours:
  lunes: "12:30 - 16:30"
menu:
  postres:
    - name: "Flan"
      price: 4200
  bebidas: []
`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_HasNoHardcodedPrices(t *testing.T) {
	c := Default()
	require.NotEmpty(t, c.Prices)
	for name, p := range c.Prices {
		assert.Nil(t, p.Price, "default catalog must not publish a price for %s", name)
	}
	assert.Contains(t, c.Info, GeneralCategory)
	assert.Len(t, c.Menu, 4)
}

func TestFileSource_EmptyPathServesDefault(t *testing.T) {
	hours, err := NewFileSource("").BusinessHours(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12:30 - 16:30 and 20:00 - 23:30", hours["lunes_jueves"])
}

func TestFileSource_ReloadsOnEveryCall(t *testing.T) {
	path := writeCatalog(t, pricedCatalog)
	src := NewFileSource(path)

	_, p, ok, err := PriceFor(context.Background(), src, "ejecutivo")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, p.Price)
	assert.Equal(t, 18500.0, *p.Price)

	require.NoError(t, os.WriteFile(path, []byte(`prices: {ejecutivo: {description: "Executive", price: 19900}}`), 0o644))

	_, p, ok, err = PriceFor(context.Background(), src, "ejecutivo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 19900.0, *p.Price)
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.yaml")).BusinessInfo(context.Background())
	assert.Error(t, err)
}

func TestFileSource_BadYAML(t *testing.T) {
	_, err := NewFileSource(writeCatalog(t, "info: [unclosed")).BusinessInfo(context.Background())
	assert.ErrorContains(t, err, "catalog: decode")
}

func TestInfoFor(t *testing.T) {
	src := NewFileSource(writeCatalog(t, pricedCatalog))
	ctx := context.Background()

	text, ok, err := InfoFor(ctx, src, "parking")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Valet parking at the hotel", text)

	text, ok, err = InfoFor(ctx, src, "wifi")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Grill house", text, "unknown category falls back to general")

	empty := &Catalog{Info: map[string]string{}}
	_, ok, err = InfoFor(ctx, empty, "wifi")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPriceFor(t *testing.T) {
	src := NewFileSource(writeCatalog(t, pricedCatalog))
	ctx := context.Background()

	tests := []struct {
		in      string
		wantKey string
		wantOK  bool
	}{
		{"ejecutivo", "ejecutivo", true},
		{"EJECUTIVO", "ejecutivo", true},
		{"menu manso", "manso", true},
		{"cart", "carta", true},
		{"vegano", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		key, _, ok, err := PriceFor(ctx, src, tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.wantOK, ok, "PriceFor(%q)", tt.in)
		assert.Equal(t, tt.wantKey, key, "PriceFor(%q)", tt.in)
	}

	_, manso, _, _ := PriceFor(ctx, src, "manso")
	assert.Nil(t, manso.Price, "unpublished price stays nil")
}

func TestSections(t *testing.T) {
	src := NewFileSource(writeCatalog(t, pricedCatalog))
	ctx := context.Background()

	one, err := Sections(ctx, src, "postres")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Flan", one["postres"][0].Name)

	all, err := Sections(ctx, src, "unknown")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	all, err = Sections(ctx, src, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

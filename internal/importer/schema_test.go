package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `version: 1
changed_by: pricing-desk
products:
  - code: WOOD-A
    name: Rubber wood A
    prices:
      - start: 2026-01-01
        end: 2026-01-15
        unit_price: 12.5
      - start: 2026-01-16
        unit_price: 13
`

func TestLoadSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	s, err := LoadSchedule(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Version)
	assert.Equal(t, "pricing-desk", s.ChangedBy)
	require.Len(t, s.Products, 1)
	require.Len(t, s.Products[0].Prices, 2)

	first := s.Products[0].Prices[0]
	assert.Equal(t, "2026-01-01", first.Start)
	require.NotNil(t, first.End)
	assert.Equal(t, "2026-01-15", *first.End)
	assert.Equal(t, 12.5, *first.UnitPrice)
	assert.Nil(t, s.Products[0].Prices[1].End)
}

func TestLoadSchedule_MissingFile(t *testing.T) {
	_, err := LoadSchedule(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseSchedule_UnknownFieldRejected(t *testing.T) {
	_, err := ParseSchedule([]byte("products:\n  - code: WOOD-A\n    prices:\n      - start: 2026-01-01\n        unitprice: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unitprice")
}

func TestParseSchedule_DefaultsVersion(t *testing.T) {
	s, err := ParseSchedule([]byte("products: []\n"))
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, s.Version)
}

func TestParseSchedule_Empty(t *testing.T) {
	_, err := ParseSchedule(nil)
	assert.Error(t, err)
}

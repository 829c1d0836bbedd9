package peers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		sector  string
		first   string
		matched bool
	}{
		{"Technology", "TCS.NS", true},
		{"technology", "TCS.NS", true},
		{"Information Technology", "TCS.NS", true}, // entry name inside sector
		{"Financial", "HDFCBANK.NS", true},         // sector inside entry name
		{"Basic Materials Metals & Mining", "TATASTEEL.NS", true},
		{"Utilities", "TCS.NS", false}, // falls back to the first entry
	}
	for _, tt := range tests {
		got, matched := DefaultTable.Match(tt.sector)
		require.NotEmpty(t, got, tt.sector)
		assert.Equal(t, tt.first, got[0], tt.sector)
		assert.Equal(t, tt.matched, matched, tt.sector)
	}
}

func TestMatch_EmptySector(t *testing.T) {
	got, matched := DefaultTable.Match("  ")
	assert.Empty(t, got)
	assert.False(t, matched)
}

func TestMatch_FirstEntryWins(t *testing.T) {
	table := Table{
		{Name: "Consumer Goods", Symbols: []string{"A"}},
		{Name: "Goods", Symbols: []string{"B"}},
	}
	got, _ := table.Match("goods")
	assert.Equal(t, []string{"A"}, got)
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sectors:
  - name: Banking
    symbols: [HDFCBANK.NS, ICICIBANK.NS]
  - name: IT Services
    symbols: [TCS.NS]
`), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "Banking", table[0].Name)
	assert.Equal(t, []string{"TCS.NS"}, table[1].Symbols)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("sectors: []\n"), 0o644))
	_, err = LoadTable(empty)
	assert.Error(t, err)

	_, err = LoadTable(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

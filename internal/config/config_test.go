package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TABLENS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, ",", c.CSV.Delimiter)
	require.True(t, c.Cache.Enabled)
	require.Equal(t, 50, c.Cache.Keep)
	require.Equal(t, 20, c.UI.NumRows)
	require.NotEmpty(t, c.Cache.Path)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[csv]
delimiter = ";"

[cache]
enabled = false
keep = 5

[ui]
num_rows = 40
`), 0o644))
	t.Setenv("TABLENS_CONFIG", path)

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, ";", c.CSV.Delimiter)
	require.False(t, c.Cache.Enabled)
	require.Equal(t, 5, c.Cache.Keep)
	require.Equal(t, 40, c.UI.NumRows)
}

func TestDelimiterRune(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want rune
	}{
		{",", ','},
		{";", ';'},
		{"|", '|'},
		{`\t`, '\t'},
		{"tab", '\t'},
		{"", ','},
		{"toolong", ','},
	}
	for _, tc := range cases {
		c := Config{CSV: CSVConfig{Delimiter: tc.in}}
		require.Equal(t, tc.want, c.Delimiter(), "delimiter %q", tc.in)
	}
}

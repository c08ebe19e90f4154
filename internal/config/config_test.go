package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"value-exporter/value"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.Optimize)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestParse_Full(t *testing.T) {
	cfg, err := Parse([]byte(`
optimize = false
log_level = "debug"

[[shapes]]
name = "geo.Point"
fields = ["X", "Y"]

[[shapes]]
name = "stdClass"
`))
	require.NoError(t, err)

	assert.False(t, cfg.Optimize)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	require.Len(t, cfg.Shapes, 2)
	assert.Equal(t, Shape{Name: "geo.Point", Fields: []string{"X", "Y"}}, cfg.Shapes[0])

	reg, err := cfg.Registry()
	require.NoError(t, err)

	s, ok := reg.Lookup("geo.Point")
	require.True(t, ok)
	assert.Equal(t, []string{"X", "Y"}, s.Fields)
	assert.Equal(t, 2, reg.Count())

	xc := cfg.Exporter(nil)
	assert.False(t, xc.Optimize)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{"unknown key", "optimise = true", "unknown config keys: optimise"},
		{"unknown shape key", "[[shapes]]\nname = \"a\"\ntype = \"b\"", "shapes.type"},
		{"bad level", `log_level = "loud"`, "log_level"},
		{"missing name", "[[shapes]]\nfields = [\"a\"]", "name is required"},
		{"twice", "[[shapes]]\nname = \"a\"\n[[shapes]]\nname = \"a\"", "declared twice"},
		{"field twice", "[[shapes]]\nname = \"a\"\nfields = [\"x\", \"x\"]", "listed twice"},
		{"syntax", "optimize = ", "failed to parse config TOML"},
		{"wrong type", `optimize = "yes"`, "failed to parse config TOML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exporter.toml")
	require.NoError(t, os.WriteFile(path, []byte("optimize = false\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.Optimize)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestWriteShapes_RoundTrip(t *testing.T) {
	var buf bytes.Buffer

	shapes := []*value.Shape{
		value.NewShape("geo.Point", "X", "Y"),
		value.NewShape("list.Node", "Value", "next"),
	}
	require.NoError(t, WriteShapes(&buf, shapes))
	assert.Contains(t, buf.String(), "[[shapes]]")

	cfg, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []Shape{
		{Name: "geo.Point", Fields: []string{"X", "Y"}},
		{Name: "list.Node", Fields: []string{"Value", "next"}},
	}, cfg.Shapes)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PixelBoard/internal/state"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 32, cfg.Canvas.Width)
	assert.Equal(t, state.White, cfg.Canvas.Background)
	assert.Equal(t, state.Limits{Min: 1, Max: 256}, cfg.Limits())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixelboard.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[canvas]
width = 64
height = 16
background = "#000000"

[history]
depth = 5

[log]
level = "debug"

[share]
port = 9000
advertise = false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Canvas.Width)
	assert.Equal(t, 16, cfg.Canvas.Height)
	assert.Equal(t, state.Black, cfg.Canvas.Background)
	assert.Equal(t, state.Black, cfg.Canvas.Foreground)
	assert.Equal(t, 256, cfg.Canvas.MaxSize)
	assert.Equal(t, 5, cfg.History.Depth)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9000, cfg.Share.Port)
	assert.False(t, cfg.Share.Advertise)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "[canvas]\ncolour = 1\n",
		"bad colour":     "[canvas]\nbackground = \"white\"\n",
		"too wide":       "[canvas]\nwidth = 1000\n",
		"zero depth":     "[history]\ndepth = 0\n",
		"bad level":      "[log]\nlevel = \"chatty\"\n",
		"bad scale":      "[export]\nscale = 0\n",
		"broken syntax":  "[canvas\n",
		"max too large":  "[canvas]\nmax_size = 4096\n",
		"inverted range": "[canvas]\nmin_size = 10\nmax_size = 5\nwidth = 6\nheight = 6\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestDecode(t *testing.T) {
	cfg, err := Decode("[export]\nscale = 8\n")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Export.Scale)

	_, err = Decode("[export]\nscale = 8\nquality = 3\n")
	assert.ErrorContains(t, err, "export.quality")

	_, err = Decode("[export]\nscale = 0\n")
	assert.Error(t, err)
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"

	"PixelBoard/internal/logging"
	"PixelBoard/internal/state"
)

// DefaultPath is looked up in the working directory when no -config flag is given.
const DefaultPath = "pixelboard.toml"

type Config struct {
	Canvas  Canvas  `toml:"canvas"`
	History History `toml:"history"`
	Log     Log     `toml:"log"`
	Share   Share   `toml:"share"`
	Export  Export  `toml:"export"`
}

type Canvas struct {
	Width      int         `toml:"width"`
	Height     int         `toml:"height"`
	MinSize    int         `toml:"min_size"`
	MaxSize    int         `toml:"max_size"`
	Background state.Color `toml:"background"`
	Foreground state.Color `toml:"foreground"`
}

type History struct {
	Depth int `toml:"depth"`
}

type Log struct {
	Level string `toml:"level"`
}

type Share struct {
	Enabled   bool   `toml:"enabled"`
	Port      int    `toml:"port"`
	Advertise bool   `toml:"advertise"`
	Name      string `toml:"name"`
}

type Export struct {
	Scale int `toml:"scale"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: Canvas{
			Width:      state.DefaultWidth,
			Height:     state.DefaultHeight,
			MinSize:    state.MinCanvasSize,
			MaxSize:    state.MaxCanvasSize,
			Background: state.White,
			Foreground: state.Black,
		},
		History: History{Depth: state.DefaultHistoryDepth},
		Log:     Log{Level: "info"},
		Share:   Share{Port: 8888, Advertise: true, Name: "PixelBoard"},
		Export:  Export{Scale: 1},
	}
}

// Load reads a TOML file over the defaults. A missing file yields the
// defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Named("config").Debug("no config file, using defaults")
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := finish(cfg, meta); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML text over the defaults with the same checks as Load.
func Decode(text string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, err
	}
	if err := finish(cfg, meta); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// finish rejects keys that matched no field, then validates.
func finish(cfg Config, meta toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Limits returns the canvas size bounds.
func (c Config) Limits() state.Limits {
	return state.Limits{Min: c.Canvas.MinSize, Max: c.Canvas.MaxSize}
}

func (c Config) Validate() error {
	if err := c.Limits().Valid(); err != nil {
		return err
	}
	if c.Canvas.MaxSize > state.MaxCanvasSize {
		return fmt.Errorf("canvas max_size %d exceeds %d", c.Canvas.MaxSize, state.MaxCanvasSize)
	}
	if err := c.Limits().Check(c.Canvas.Width, c.Canvas.Height); err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	if c.History.Depth < 1 {
		return fmt.Errorf("history depth must be positive, got %d", c.History.Depth)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Share.Port < 0 || c.Share.Port > 65535 {
		return fmt.Errorf("share port %d out of range", c.Share.Port)
	}
	if c.Export.Scale < 1 || c.Export.Scale > 64 {
		return fmt.Errorf("export scale must be within 1..64, got %d", c.Export.Scale)
	}
	return nil
}

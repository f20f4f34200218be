package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// projectFile is the persisted project layout. Pixels maps "x,y" keys to
// canonical colour strings; absent keys are background.
type projectFile struct {
	Width      *int               `json:"width"`
	Height     *int               `json:"height"`
	Background string             `json:"background,omitempty"`
	Pixels     *map[string]string `json:"pixels"`
}

// Serialize encodes the document in the persisted project format.
func (d *Document) Serialize() ([]byte, error) {
	pixels := make(map[string]string, len(d.pixels))
	for p, c := range d.pixels {
		pixels[p.String()] = c.String()
	}
	w, h := d.width, d.height
	pf := projectFile{
		Width:      &w,
		Height:     &h,
		Background: d.background.String(),
		Pixels:     &pixels,
	}
	return json.MarshalIndent(pf, "", "  ")
}

// MarshalJSON makes a Document embeddable in other JSON payloads.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.Serialize()
}

// Deserialize replaces the document content with data. All validation
// happens before anything is written, so on error the document is unchanged.
func (d *Document) Deserialize(data []byte) error {
	width, height, background, pixels, err := decodeProject(data, d.limits)
	if err != nil {
		return err
	}
	d.replace(width, height, background, pixels)
	return nil
}

// Parse builds a new document from persisted data.
func Parse(data []byte, opts ...Option) (*Document, error) {
	d, err := New(DefaultWidth, DefaultHeight, White, opts...)
	if err != nil {
		return nil, err
	}
	if err := d.Deserialize(data); err != nil {
		return nil, err
	}
	return d, nil
}

func decodeProject(data []byte, limits Limits) (int, int, Color, map[Point]Color, error) {
	var pf projectFile
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&pf); err != nil {
		return 0, 0, Color{}, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if dec.More() {
		return 0, 0, Color{}, nil, fmt.Errorf("%w: trailing data after document", ErrInvalidFormat)
	}

	switch {
	case pf.Width == nil:
		return 0, 0, Color{}, nil, fmt.Errorf("%w: missing field width", ErrInvalidFormat)
	case pf.Height == nil:
		return 0, 0, Color{}, nil, fmt.Errorf("%w: missing field height", ErrInvalidFormat)
	case pf.Pixels == nil:
		return 0, 0, Color{}, nil, fmt.Errorf("%w: missing field pixels", ErrInvalidFormat)
	}
	width, height := *pf.Width, *pf.Height
	if err := limits.Check(width, height); err != nil {
		return 0, 0, Color{}, nil, err
	}

	background := White
	if pf.Background != "" {
		bg, err := ParseColor(pf.Background)
		if err != nil {
			return 0, 0, Color{}, nil, fmt.Errorf("background: %w", err)
		}
		background = bg
	}

	pixels := make(map[Point]Color, len(*pf.Pixels))
	for key, value := range *pf.Pixels {
		p, err := parseCoord(key)
		if err != nil {
			return 0, 0, Color{}, nil, err
		}
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			return 0, 0, Color{}, nil, fmt.Errorf("%w: pixel %q outside %dx%d", ErrOutOfBounds, key, width, height)
		}
		c, err := ParseColor(value)
		if err != nil {
			return 0, 0, Color{}, nil, fmt.Errorf("pixel %q: %w", key, err)
		}
		if c != background {
			pixels[p] = c
		}
	}
	return width, height, background, pixels, nil
}

func parseCoord(key string) (Point, error) {
	xs, ys, ok := strings.Cut(key, ",")
	if !ok {
		return Point{}, fmt.Errorf("%w: coordinate key %q is not \"x,y\"", ErrInvalidFormat, key)
	}
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil {
		return Point{}, fmt.Errorf("%w: coordinate key %q is not \"x,y\"", ErrInvalidFormat, key)
	}
	p := Point{X: x, Y: y}
	// "01,1" and "+1,1" would alias "1,1" and race it in map order
	if p.String() != key {
		return Point{}, fmt.Errorf("%w: coordinate key %q is not canonical, want %q", ErrInvalidFormat, key, p.String())
	}
	return p, nil
}

package state

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
)

// Color is a flat cell colour with 8-bit channels.
// Opaque colours (A == 255) print as #RRGGBB, all others as #RRGGBBAA.
type Color struct {
	R, G, B, A uint8
}

var (
	White       = Color{R: 255, G: 255, B: 255, A: 255}
	Black       = Color{A: 255}
	Transparent = Color{}
)

// NewColor validates integer channel values and builds a Color.
func NewColor(r, g, b, a int) (Color, error) {
	for _, v := range [...]int{r, g, b, a} {
		if v < 0 || v > 255 {
			return Color{}, fmt.Errorf("%w: channel value %d outside [0,255]", ErrInvalidColor, v)
		}
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// RGB builds an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA" in either hex case.
func ParseColor(s string) (Color, error) {
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("%w: %q must start with '#'", ErrInvalidColor, s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: %q must have 6 or 8 hex digits", ErrInvalidColor, s)
	}

	var ch [4]uint8
	ch[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		hi, ok1 := hexNibble(hex[2*i])
		lo, ok2 := hexNibble(hex[2*i+1])
		if !ok1 || !ok2 {
			return Color{}, fmt.Errorf("%w: %q contains a non-hex digit", ErrInvalidColor, s)
		}
		ch[i] = hi<<4 | lo
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// MustParseColor is ParseColor for literals; it panics on bad input.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// String returns the canonical uppercase form.
func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Opaque reports whether the alpha channel is fully set.
func (c Color) Opaque() bool {
	return c.A == 255
}

// RGBA implements color.Color with alpha-premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA converts to the standard library's non-premultiplied colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts any color.Color to a Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

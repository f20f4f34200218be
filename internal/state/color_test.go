package state

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ color.Color = Color{}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#000000", Black},
		{"#FFFFFF", White},
		{"#ff0000", RGB(255, 0, 0)},
		{"#12aBcD", RGB(0x12, 0xAB, 0xCD)},
		{"#11223344", Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{"#00000000", Transparent},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "#", "000000", "#12345", "#1234567", "#GG0000", "red", "#FFFFFF ", "#123456789"} {
		_, err := ParseColor(in)
		assert.ErrorIs(t, err, ErrInvalidColor, "input %q", in)
	}
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "#FFFFFF", White.String())
	assert.Equal(t, "#AB00CD", RGB(0xab, 0, 0xcd).String())
	assert.Equal(t, "#01020304", Color{R: 1, G: 2, B: 3, A: 4}.String())
	assert.Equal(t, "#00000000", Transparent.String())
}

func TestColorEqualityIgnoresTextCase(t *testing.T) {
	a := MustParseColor("#abcdef")
	b := MustParseColor("#ABCDEF")
	assert.Equal(t, a, b)
	assert.True(t, a == b)
}

func TestNewColorValidatesChannels(t *testing.T) {
	c, err := NewColor(1, 2, 3, 255)
	require.NoError(t, err)
	assert.Equal(t, RGB(1, 2, 3), c)

	for _, ch := range [][4]int{{-1, 0, 0, 0}, {0, 256, 0, 0}, {0, 0, 300, 0}, {0, 0, 0, -5}} {
		_, err := NewColor(ch[0], ch[1], ch[2], ch[3])
		assert.ErrorIs(t, err, ErrInvalidColor)
	}
}

func TestFromColorRoundTrip(t *testing.T) {
	c := Color{R: 200, G: 100, B: 50, A: 255}
	assert.Equal(t, c, FromColor(c))
	assert.Equal(t, RGB(255, 0, 0), FromColor(color.RGBA{R: 255, A: 255}))
	assert.Equal(t, Color{R: 10, G: 20, B: 30, A: 128}, FromColor(color.NRGBA{R: 10, G: 20, B: 30, A: 128}))
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(RGB(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, `"#010203"`, string(data))

	var c Color
	require.NoError(t, json.Unmarshal([]byte(`"#0a0b0c80"`), &c))
	assert.Equal(t, Color{R: 10, G: 11, B: 12, A: 128}, c)

	assert.ErrorIs(t, json.Unmarshal([]byte(`"blue"`), &c), ErrInvalidColor)
	assert.ErrorIs(t, json.Unmarshal([]byte(`12`), &c), ErrInvalidColor)
}

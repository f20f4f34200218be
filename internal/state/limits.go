package state

import "fmt"

const (
	DefaultWidth  = 32
	DefaultHeight = 32

	MinCanvasSize = 1
	MaxCanvasSize = 256

	// DefaultHistoryDepth is the number of undo steps kept by a History.
	DefaultHistoryDepth = 50
)

// Limits bounds the width and height a document may take.
type Limits struct {
	Min int `toml:"min_size"`
	Max int `toml:"max_size"`
}

// DefaultLimits allows 1..256 cells on each axis.
var DefaultLimits = Limits{Min: MinCanvasSize, Max: MaxCanvasSize}

// Check validates a width/height pair.
func (l Limits) Check(width, height int) error {
	lo := max(l.Min, 1)
	if width < lo || height < lo {
		return fmt.Errorf("%w: %dx%d is below the minimum %dx%d", ErrInvalidDimensions, width, height, lo, lo)
	}
	if width > l.Max || height > l.Max {
		return fmt.Errorf("%w: %dx%d exceeds the maximum %dx%d", ErrInvalidDimensions, width, height, l.Max, l.Max)
	}
	return nil
}

// Valid reports whether the limits themselves are usable.
func (l Limits) Valid() error {
	if l.Min < 1 || l.Max < l.Min {
		return fmt.Errorf("%w: limits %d..%d", ErrInvalidDimensions, l.Min, l.Max)
	}
	return nil
}

package state

import "errors"

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the current grid
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrInvalidColor is returned for malformed colour text or channel values
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidDimensions is returned when a width or height is outside the configured limits
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrInvalidFormat is returned when persisted document data is structurally malformed
	ErrInvalidFormat = errors.New("invalid document format")

	// ErrNothingToUndo is returned by Undo on an empty undo stack
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by Redo on an empty redo stack
	ErrNothingToRedo = errors.New("nothing to redo")
)

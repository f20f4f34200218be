package ui

import (
	"errors"

	"PixelBoard/internal/editor"
	"PixelBoard/internal/export"
	"PixelBoard/internal/project"
	"PixelBoard/internal/state"
)

// userMessage turns an error from the core into dialog text.
func userMessage(err error) string {
	switch {
	case errors.Is(err, state.ErrInvalidDimensions):
		return "The canvas size must be between 1 and 256 cells on each side."
	case errors.Is(err, state.ErrOutOfBounds):
		return "The file refers to cells outside the canvas."
	case errors.Is(err, state.ErrInvalidColor):
		return "The file contains a colour that is not #RRGGBB or #RRGGBBAA."
	case errors.Is(err, state.ErrInvalidFormat):
		return "The file is not a PixelBoard project."
	case errors.Is(err, export.ErrUnsupportedFormat):
		return "Export as .png, .bmp or .pdf."
	case errors.Is(err, project.ErrFileOperation):
		return "The file could not be read or written."
	case errors.Is(err, editor.ErrNoPath):
		return "Choose where to save the project first."
	case errors.Is(err, state.ErrNothingToUndo):
		return "Nothing to undo."
	case errors.Is(err, state.ErrNothingToRedo):
		return "Nothing to redo."
	}
	return "Something went wrong: " + err.Error()
}

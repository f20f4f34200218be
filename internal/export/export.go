package export

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"PixelBoard/internal/state"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
	PDF Format = "pdf"
)

// Formats lists the supported formats for file dialogs.
func Formats() []Format {
	return []Format{PNG, BMP, PDF}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, f := range Formats() {
		if string(f) == ext {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Encode writes doc to w. Raster formats use scale pixels per cell, PDF
// uses scale points per cell.
func Encode(w io.Writer, doc *state.Document, f Format, scale int) error {
	switch f {
	case PNG:
		return png.Encode(w, Scale(Rasterize(doc), scale))
	case BMP:
		return bmp.Encode(w, Scale(Rasterize(doc), scale))
	case PDF:
		return WritePDF(w, doc, scale)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// File exports doc to path in the format named by its extension.
func File(path string, doc *state.Document, scale int) (err error) {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export %s: %w", path, cerr)
		}
	}()
	if err := Encode(out, doc, f, scale); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

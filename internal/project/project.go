package project

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"PixelBoard/internal/logging"
	"PixelBoard/internal/state"
)

// Extension is appended to save paths that have none.
const Extension = ".json"

var ErrFileOperation = errors.New("file operation failed")

func fileError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrFileOperation, op, path, err)
}

// WithExtension adds Extension when path has no extension of its own.
func WithExtension(path string) string {
	if filepath.Ext(path) == "" {
		return path + Extension
	}
	return path
}

// Write streams doc in the project format.
func Write(w io.Writer, doc *state.Document) error {
	data, err := doc.Serialize()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read replaces doc's content with the project read from r. Nothing is
// changed if the data is invalid.
func Read(r io.Reader, doc *state.Document) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return doc.Deserialize(data)
}

// Save writes doc to path through a temporary file and rename, so an
// interrupted save never leaves a truncated project behind. It returns the
// path actually written.
func Save(path string, doc *state.Document) (string, error) {
	path = WithExtension(path)
	log := logging.Named("project")

	data, err := doc.Serialize()
	if err != nil {
		return path, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+"-*.tmp")
	if err != nil {
		return path, fileError("save", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return path, fileError("save", path, err)
	}
	if err := tmp.Close(); err != nil {
		return path, fileError("save", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return path, fileError("save", path, err)
	}

	doc.MarkSaved()
	log.Info("project saved", zap.String("path", path), zap.Int("cells", doc.Len()))
	return path, nil
}

// Load replaces doc's content with the project at path.
func Load(path string, doc *state.Document) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileError("load", path, err)
	}
	if err := doc.Deserialize(data); err != nil {
		logging.Named("project").Warn("rejected project file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("load %s: %w", path, err)
	}
	logging.Named("project").Info("project loaded",
		zap.String("path", path),
		zap.Int("width", doc.Width()),
		zap.Int("height", doc.Height()),
		zap.Int("cells", doc.Len()),
	)
	return nil
}

package stacio

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/stacgo/stac-go"
)

// Writer writes STAC documents to a filesystem.
type Writer struct {
	fs     afero.Fs
	logger *zap.Logger
}

// NewWriter returns a Writer. WithHTTP has no effect: network writes are not
// supported.
func NewWriter(opts ...Option) *Writer {
	o := newOptions(opts)
	return &Writer{fs: o.fs, logger: o.logger}
}

// Write encodes v as indented JSON at location (a path or file:// URL),
// creating parent directories, and sets v's href to the absolute path.
func (w *Writer) Write(location string, v stac.Value) error {
	if scheme, ok := urlScheme(location); ok && scheme != "file" {
		return &stac.UnsupportedLocationError{Location: location, Scheme: scheme}
	}
	path, err := localPath(location)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("stacio: encode %s: %w", path, err)
	}
	if err := w.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("stacio: create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(w.fs, path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("stacio: write %s: %w", path, err)
	}
	v.SetHref(path)
	w.logger.Debug("wrote document", zap.String("href", path), zap.Stringer("kind", v.Kind()))
	return nil
}

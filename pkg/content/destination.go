package content

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alde/photoedit/pkg/pyramid"
	"github.com/google/uuid"
)

// FileDestination commits an encoded image to a file. The bytes go to a
// temporary file next to the target, which is renamed into place only
// after a successful encode and sync.
type FileDestination struct {
	path   string
	final  string
	format string
}

// NewFileDestination targets path. When the format actually written does
// not match the extension of path, the extension is replaced.
func NewFileDestination(path string) *FileDestination {
	return &FileDestination{path: path}
}

func (d *FileDestination) Write(format string, encode func(w io.Writer) error) error {
	target := pathForFormat(d.path, format)
	tmp := filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	commit := false
	defer func() {
		if !commit {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if err := encode(f); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		commit = true
		return fmt.Errorf("failed to move image into place: %w", err)
	}

	commit = true
	d.final = target
	d.format = format
	return nil
}

// Path returns the committed file, or the requested path before a commit.
func (d *FileDestination) Path() string {
	if d.final != "" {
		return d.final
	}
	return d.path
}

// Format returns the committed format, empty before a commit.
func (d *FileDestination) Format() string {
	return d.format
}

func pathForFormat(path, format string) string {
	ext := filepath.Ext(path)
	if pyramid.NormalizeFormat(ext) == pyramid.NormalizeFormat(format) {
		return path
	}
	return strings.TrimSuffix(path, ext) + extensionFor(format)
}

func extensionFor(format string) string {
	switch f := pyramid.NormalizeFormat(format); f {
	case "jpeg":
		return ".jpg"
	default:
		return "." + f
	}
}

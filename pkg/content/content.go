// Package content provides the sources images are loaded from and the
// destinations edited images are committed to.
package content

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alde/photoedit/pkg/pyramid"
	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrNotImage is returned when a file is neither an image nor a PDF.
	ErrNotImage = errors.New("content: not an image")

	// ErrPageRange is returned for a PDF page that does not exist.
	ErrPageRange = errors.New("content: page out of range")
)

// Source is a pyramid.Source holding resources that must be released.
type Source interface {
	pyramid.Source
	io.Closer
}

// Options controls how Open interprets a file.
type Options struct {
	Page int // 1-based PDF page
	DPI  int // PDF render resolution
}

// DefaultDPI is the PDF render resolution when none is given.
const DefaultDPI = 150

// Open returns a source for path, rendering PDFs and decoding everything
// else as an image.
func Open(path string, opts Options) (Source, error) {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect content type of %s: %w", path, err)
	}

	switch {
	case mime.Is("application/pdf"):
		if opts.Page <= 0 {
			opts.Page = 1
		}
		if opts.DPI <= 0 {
			opts.DPI = DefaultDPI
		}
		src, err := NewPDFSource(path, opts.Page, opts.DPI)
		if err != nil {
			return nil, err
		}
		return src, nil
	case strings.HasPrefix(mime.String(), "image/"):
		return &FileSource{path: path, mime: mime.String()}, nil
	default:
		return nil, fmt.Errorf("%w: %s has type %s", ErrNotImage, path, mime.String())
	}
}

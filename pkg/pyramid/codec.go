package pyramid

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned when no encoder exists for a format.
var ErrUnsupportedFormat = errors.New("pyramid: unsupported save format")

const (
	jpegQuality = 92
	webpQuality = 90
)

// imagingFormats maps format names to the encoders imaging provides.
var imagingFormats = map[string]imaging.Format{
	"jpeg": imaging.JPEG,
	"png":  imaging.PNG,
	"gif":  imaging.GIF,
	"bmp":  imaging.BMP,
	"tiff": imaging.TIFF,
}

// NormalizeFormat lower-cases a format name and folds common aliases.
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	switch f {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return f
}

// CanEncode reports whether Encode supports format.
func CanEncode(format string) bool {
	f := NormalizeFormat(format)
	if f == "webp" {
		return true
	}
	_, ok := imagingFormats[f]
	return ok
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, img image.Image, format string) error {
	f := NormalizeFormat(format)
	if f == "webp" {
		return webp.Encode(w, img, &webp.Options{Quality: webpQuality})
	}

	imgFormat, ok := imagingFormats[f]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return imaging.Encode(w, img, imgFormat,
		imaging.JPEGQuality(jpegQuality),
		imaging.PNGCompressionLevel(png.BestCompression))
}

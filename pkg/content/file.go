package content

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// FileSource decodes an image file with the registered decoders.
type FileSource struct {
	path string
	mime string
}

// NewFileSource checks that path holds an image and wraps it.
func NewFileSource(path string) (*FileSource, error) {
	src, err := Open(path, Options{})
	if err != nil {
		return nil, err
	}
	fs, ok := src.(*FileSource)
	if !ok {
		src.Close()
		return nil, fmt.Errorf("%w: %s is not a raster image", ErrNotImage, path)
	}
	return fs, nil
}

func (f *FileSource) Name() string { return f.path }

// MIME returns the detected content type.
func (f *FileSource) MIME() string { return f.mime }

func (f *FileSource) ByteSize() (int64, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", f.path, err)
	}
	return info.Size(), nil
}

// ReadOnly reports whether the owner write bit is missing.
func (f *FileSource) ReadOnly() bool {
	info, err := os.Stat(f.path)
	if err != nil {
		return true
	}
	return info.Mode().Perm()&0o200 == 0
}

// Dimensions reads the image header only.
func (f *FileSource) Dimensions() (image.Point, bool) {
	file, err := os.Open(f.path)
	if err != nil {
		return image.Point{}, false
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(bufio.NewReader(file))
	if err != nil {
		return image.Point{}, false
	}
	return image.Pt(cfg.Width, cfg.Height), true
}

func (f *FileSource) Decode() (image.Image, string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(bufio.NewReader(file))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", f.path, err)
	}
	return img, format, nil
}

// DecodeScaled decodes the whole file and fits it into size. None of the
// registered decoders can skip detail while decoding.
func (f *FileSource) DecodeScaled(size image.Point) (image.Image, string, error) {
	img, format, err := f.Decode()
	if err != nil {
		return nil, "", err
	}
	return imaging.Fit(img, size.X, size.Y, imaging.Box), format, nil
}

func (f *FileSource) Close() error { return nil }

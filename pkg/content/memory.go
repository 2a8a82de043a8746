package content

import "image"

// ImageSource serves an image that is already in memory, such as one
// handed over by another application.
type ImageSource struct {
	name   string
	img    image.Image
	format string
}

// NewImageSource wraps img. format may be empty when the origin is unknown.
func NewImageSource(name string, img image.Image, format string) *ImageSource {
	return &ImageSource{name: name, img: img, format: format}
}

func (s *ImageSource) Name() string { return s.name }

// ByteSize is the size of the image as 32-bit pixels.
func (s *ImageSource) ByteSize() (int64, error) {
	if s.img == nil {
		return 0, nil
	}
	b := s.img.Bounds()
	return int64(b.Dx()) * int64(b.Dy()) * 4, nil
}

func (s *ImageSource) Dimensions() (image.Point, bool) {
	if s.img == nil {
		return image.Point{}, false
	}
	return s.img.Bounds().Size(), true
}

func (s *ImageSource) Decode() (image.Image, string, error) {
	return s.img, s.format, nil
}

// ReadOnly is always true: there is no file to write back to.
func (s *ImageSource) ReadOnly() bool { return true }

func (s *ImageSource) Close() error { return nil }

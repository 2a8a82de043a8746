package pyramid

import (
	"image"
	"io"
)

// Source is where a Store reads an encoded image from.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// ByteSize returns the size of the encoded data.
	ByteSize() (int64, error)
	// Decode returns the full image and the name of its format.
	Decode() (image.Image, string, error)
	// ReadOnly reports whether the source may be overwritten on save.
	ReadOnly() bool
}

// DimensionReporter is implemented by sources that can report their pixel
// dimensions without a full decode.
type DimensionReporter interface {
	Dimensions() (image.Point, bool)
}

// ScaledDecoder is implemented by sources that can decode directly to a
// smaller size.
type ScaledDecoder interface {
	DecodeScaled(size image.Point) (image.Image, string, error)
}

// Destination receives an encoded image. Write calls encode with a writer
// and makes the bytes durable only if encode returns nil; on error nothing
// is left behind.
type Destination interface {
	Write(format string, encode func(w io.Writer) error) error
}

package pyramid

import (
	"image"
	"log/slog"
)

const (
	// DefaultLevels is the number of levels built per load, the original included.
	DefaultLevels = 4
	// DefaultMaxByteSize caps the encoded size of sources whose dimensions
	// cannot be read up front.
	DefaultMaxByteSize = 2 << 20
	// DefaultFallbackFormat is written when the source format cannot be encoded.
	DefaultFallbackFormat = "png"
)

// DefaultMaxSize bounds the pixel area of an editable image.
var DefaultMaxSize = image.Pt(1600, 1200)

// Config holds the limits and collaborators of a Store.
type Config struct {
	Levels         int
	MaxSize        image.Point // pixel-area cap is MaxSize.X*MaxSize.Y
	MaxByteSize    int64
	FallbackFormat string
	Resampler      Resampler

	// ReduceOversized substitutes a scaled copy for sources over the
	// pixel-area cap when the source can decode at a smaller size.
	ReduceOversized bool

	Logger *slog.Logger
}

// DefaultConfig returns the stock limits.
func DefaultConfig() Config {
	return Config{
		Levels:         DefaultLevels,
		MaxSize:        DefaultMaxSize,
		MaxByteSize:    DefaultMaxByteSize,
		FallbackFormat: DefaultFallbackFormat,
		Resampler:      BoxResampler,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Levels <= 0 {
		c.Levels = d.Levels
	}
	if c.MaxSize.X <= 0 || c.MaxSize.Y <= 0 {
		c.MaxSize = d.MaxSize
	}
	if c.MaxByteSize <= 0 {
		c.MaxByteSize = d.MaxByteSize
	}
	if c.FallbackFormat == "" {
		c.FallbackFormat = d.FallbackFormat
	}
	if c.Resampler == nil {
		c.Resampler = d.Resampler
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// maxArea is the pixel-area cap.
func (c Config) maxArea() int {
	return c.MaxSize.X * c.MaxSize.Y
}

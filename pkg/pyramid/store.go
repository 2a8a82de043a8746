// Package pyramid keeps a decoded image together with progressively halved
// copies of it, so previews at low zoom never touch full-resolution pixels.
package pyramid

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"

	"github.com/alde/photoedit/internal/notify"
	"github.com/disintegration/imaging"
)

// ErrNoImage is returned by Save when there is nothing to encode.
var ErrNoImage = errors.New("pyramid: no image")

// Store owns the levels of one image. Level 0 is the decoded original and
// level i is level i-1 halved in both directions. A Store is not safe for
// concurrent use.
type Store struct {
	cfg      Config
	levels   []*image.NRGBA
	size     image.Point
	format   string
	status   Status
	readOnly bool
	changed  notify.Signal
}

// NewStore creates an empty store. Zero fields in cfg take their defaults.
func NewStore(cfg Config) *Store {
	return &Store{
		cfg:    cfg.withDefaults(),
		status: LoadError,
	}
}

// OnChange registers fn to be called after every load attempt.
func (s *Store) OnChange(fn func()) (disconnect func()) {
	return s.changed.Connect(fn)
}

// Load reads src and rebuilds the pyramid with the given number of levels
// (Config.Levels when levels <= 0). Oversized sources are rejected before
// decoding whenever their dimensions can be read cheaply.
func (s *Store) Load(src Source, levels int) Status {
	s.clear()
	s.readOnly = src.ReadOnly()

	log := s.cfg.Logger.With("source", src.Name())
	s.status = s.load(src, levels, log)
	log.Debug("image loaded", "status", s.status, "size", s.size, "format", s.format)

	s.changed.Emit()
	return s.status
}

// LoadImage rebuilds the pyramid from an already decoded image. format is
// the name used when saving; it may be empty.
func (s *Store) LoadImage(img image.Image, format string, levels int) Status {
	s.clear()
	s.status = s.build(img, format, levels)
	s.cfg.Logger.Debug("image loaded", "status", s.status, "size", s.size)

	s.changed.Emit()
	return s.status
}

func (s *Store) clear() {
	s.levels = nil
	s.size = image.Point{}
	s.format = ""
	s.readOnly = false
}

func (s *Store) load(src Source, levels int, log *slog.Logger) Status {
	var size image.Point
	var known bool
	if dr, ok := src.(DimensionReporter); ok {
		size, known = dr.Dimensions()
	}

	if known {
		s.size = size
		if size.X*size.Y > s.cfg.maxArea() {
			return s.loadOversized(src, size, levels, log)
		}
	} else {
		n, err := src.ByteSize()
		if err != nil {
			log.Warn("cannot determine source size", "error", err)
			return LoadError
		}
		if n > s.cfg.MaxByteSize {
			log.Info("source exceeds byte size limit", "bytes", n, "limit", s.cfg.MaxByteSize)
			return SizeError
		}
	}

	img, format, err := src.Decode()
	if err != nil {
		log.Warn("decode failed", "error", err)
		return LoadError
	}
	if img != nil {
		if b := img.Bounds(); b.Dx()*b.Dy() > s.cfg.maxArea() {
			s.size = b.Size()
			log.Info("decoded image exceeds size limit", "size", s.size, "limit", s.cfg.MaxSize)
			return SizeError
		}
	}

	return s.build(img, format, levels)
}

func (s *Store) loadOversized(src Source, size image.Point, levels int, log *slog.Logger) Status {
	sd, ok := src.(ScaledDecoder)
	if !s.cfg.ReduceOversized || !ok {
		log.Info("source exceeds size limit", "size", size, "limit", s.cfg.MaxSize)
		return SizeError
	}

	target := fitArea(size, s.cfg.maxArea())
	img, format, err := sd.DecodeScaled(target)
	if err != nil {
		log.Warn("scaled decode failed", "target", target, "error", err)
		return LoadError
	}
	if img == nil {
		log.Warn("scaled decode returned no image", "target", target)
		return LoadError
	}

	// Decoders that scale in coarse steps may overshoot the target.
	if b := img.Bounds(); b.Dx()*b.Dy() > s.cfg.maxArea() {
		img = imaging.Resize(img, target.X, target.Y, imaging.Box)
	}

	status := s.build(img, format, levels)
	if status != Normal {
		return status
	}
	log.Info("loaded scaled copy of oversized source", "original", size, "loaded", s.size)
	return ReducedSize
}

// fitArea scales size down, keeping its aspect ratio, until its area is at
// most maxArea.
func fitArea(size image.Point, maxArea int) image.Point {
	scale := math.Sqrt(float64(maxArea) / float64(size.X*size.Y))
	return image.Point{
		X: max(1, int(float64(size.X)*scale)),
		Y: max(1, int(float64(size.Y)*scale)),
	}
}

func (s *Store) build(img image.Image, format string, levels int) Status {
	if img == nil || img.Bounds().Empty() {
		return LoadError
	}
	if !convertible(img) {
		return DepthError
	}
	if levels <= 0 {
		levels = s.cfg.Levels
	}

	pyramid := make([]*image.NRGBA, levels)
	pyramid[0] = imaging.Clone(img)
	for i := 1; i < levels; i++ {
		prev := pyramid[i-1]
		w := max(1, prev.Rect.Dx()/2)
		h := max(1, prev.Rect.Dy()/2)
		pyramid[i] = s.cfg.Resampler(prev, w, h)
	}

	s.levels = pyramid
	s.size = pyramid[0].Rect.Size()
	s.format = NormalizeFormat(format)
	return Normal
}

// convertible reports whether imaging can turn img into NRGBA without
// guessing at its color model.
func convertible(img image.Image) bool {
	m := img.ColorModel()
	if p, ok := m.(color.Palette); ok {
		return len(p) > 0
	}
	switch m {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model,
		color.AlphaModel, color.Alpha16Model, color.GrayModel, color.Gray16Model,
		color.YCbCrModel, color.NYCbCrAModel, color.CMYKModel:
		return true
	}
	return false
}

// Levels returns the number of levels of the loaded image, or the
// configured count when nothing is loaded.
func (s *Store) Levels() int {
	if len(s.levels) > 0 {
		return len(s.levels)
	}
	return s.cfg.Levels
}

// Level picks the coarsest level that still has at least the detail needed
// to display the original at scale x: floor(log2(1/x)), clamped.
func (s *Store) Level(x float64) int {
	last := s.Levels() - 1
	switch {
	case x >= 1 || math.IsNaN(x):
		return 0
	case x <= 0:
		return last
	}

	n := int(math.Floor(-math.Log2(x)))
	return min(max(n, 0), last)
}

// Factor returns the scale of a level relative to the original, 1/2^level.
func (s *Store) Factor(level int) float64 {
	return math.Ldexp(1, -level)
}

// Image returns the whole buffer of a level, or nil if there is none.
// Callers must not modify it.
func (s *Store) Image(level int) *image.NRGBA {
	if level < 0 || level >= len(s.levels) {
		return nil
	}
	return s.levels[level]
}

// Region returns a copy of the part of a level covering r, which is given
// in original image coordinates. r is clipped to the level; nil is
// returned when nothing is left.
func (s *Store) Region(r image.Rectangle, level int) *image.NRGBA {
	img := s.Image(level)
	if img == nil {
		return nil
	}

	f := s.Factor(level)
	scaled := image.Rect(
		int(math.Floor(float64(r.Min.X)*f)),
		int(math.Floor(float64(r.Min.Y)*f)),
		int(math.Ceil(float64(r.Max.X)*f)),
		int(math.Ceil(float64(r.Max.Y)*f)),
	)

	clip := scaled.Intersect(img.Rect)
	if clip.Empty() {
		return nil
	}
	return imaging.Crop(img, clip)
}

// Save encodes img into dst, in the source format when it can be written
// and in the fallback format otherwise.
func (s *Store) Save(img image.Image, dst Destination) error {
	if img == nil || img.Bounds().Empty() {
		return ErrNoImage
	}

	format := s.SaveFormat()
	err := dst.Write(format, func(w io.Writer) error {
		return Encode(w, img, format)
	})
	if err != nil {
		return fmt.Errorf("failed to save %s image: %w", format, err)
	}
	return nil
}

// SaveFormat is the format Save will write.
func (s *Store) SaveFormat() string {
	if s.IsSaveSupported() {
		return s.format
	}
	return NormalizeFormat(s.cfg.FallbackFormat)
}

// IsSaveSupported reports whether the source format can be written back.
func (s *Store) IsSaveSupported() bool {
	return s.format != "" && CanEncode(s.format)
}

// IsReadOnly reports whether the source refuses to be overwritten.
func (s *Store) IsReadOnly() bool {
	return s.readOnly
}

// Format returns the format of the loaded source.
func (s *Store) Format() string {
	return s.format
}

// Size returns the dimensions of level 0. After a SizeError it holds the
// dimensions of the rejected source when they were known.
func (s *Store) Size() image.Point {
	return s.size
}

// Status returns the outcome of the last load.
func (s *Store) Status() Status {
	return s.status
}

// MaxSize returns the configured size limit.
func (s *Store) MaxSize() image.Point {
	return s.cfg.MaxSize
}

// MaxByteSize returns the configured encoded size limit.
func (s *Store) MaxByteSize() int64 {
	return s.cfg.MaxByteSize
}

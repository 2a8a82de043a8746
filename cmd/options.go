package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alde/photoedit/pkg/content"
	"github.com/alde/photoedit/pkg/pyramid"
	"github.com/alde/photoedit/pkg/transform"
	"github.com/dustin/go-humanize"
)

// parseSize parses "WIDTHxHEIGHT", e.g. "1600x1200".
func parseSize(s string) (image.Point, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("invalid size format: %s (want WIDTHxHEIGHT)", s)
	}

	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid width: %s", parts[0])
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid height: %s", parts[1])
	}
	if w <= 0 || h <= 0 {
		return image.Point{}, fmt.Errorf("size must be positive: %s", s)
	}
	return image.Pt(w, h), nil
}

// parseRect parses "X,Y,WIDTHxHEIGHT", e.g. "10,20,300x200".
func parseRect(s string) (image.Rectangle, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return image.Rectangle{}, fmt.Errorf("invalid rectangle format: %s (want X,Y,WIDTHxHEIGHT)", s)
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("invalid x: %s", parts[0])
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("invalid y: %s", parts[1])
	}
	size, err := parseSize(parts[2])
	if err != nil {
		return image.Rectangle{}, err
	}

	origin := image.Pt(x, y)
	return image.Rectangle{Min: origin, Max: origin.Add(size)}, nil
}

func storeConfig() (pyramid.Config, error) {
	cfg := pyramid.DefaultConfig()
	cfg.Levels = levels
	cfg.ReduceOversized = reduce
	cfg.Logger = slog.Default()

	size, err := parseSize(maxSize)
	if err != nil {
		return cfg, fmt.Errorf("invalid --max-size: %w", err)
	}
	cfg.MaxSize = size

	n, err := humanize.ParseBytes(maxBytes)
	if err != nil {
		return cfg, fmt.Errorf("invalid --max-bytes: %w", err)
	}
	cfg.MaxByteSize = int64(n)

	cfg.Resampler, err = pyramid.ResamplerByName(strings.ToLower(filter))
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// session is one opened image with the engine editing it.
type session struct {
	src    content.Source
	store  *pyramid.Store
	engine *transform.Engine
}

// openSession loads path with the global store flags. A ReducedSize load
// is logged and treated as success.
func openSession(ctx context.Context, path string) (*session, error) {
	cfg, err := storeConfig()
	if err != nil {
		return nil, err
	}

	src, err := content.Open(path, content.Options{Page: page, DPI: dpi})
	if err != nil {
		return nil, err
	}

	store := pyramid.NewStore(cfg)
	engine := transform.New(store)
	s := &session{src: src, store: store, engine: engine}

	if err := loadError(store.Load(src, 0), store, path); err != nil {
		s.Close()
		return nil, err
	}

	if store.Status() == pyramid.ReducedSize {
		slog.WarnContext(ctx, "unable to load complete image, a scaled copy has been opened instead",
			"path", path, "size", store.Size())
	}
	return s, nil
}

func (s *session) Close() {
	s.engine.Close()
	s.src.Close()
}

var errLoad = errors.New("cannot open image")

func loadError(status pyramid.Status, store *pyramid.Store, path string) error {
	switch status {
	case pyramid.Normal, pyramid.ReducedSize:
		return nil
	case pyramid.SizeError:
		limit := store.MaxSize()
		if size := store.Size(); size != (image.Point{}) {
			return fmt.Errorf("%w %s: %dx%d exceeds the %dx%d limit", errLoad, path, size.X, size.Y, limit.X, limit.Y)
		}
		return fmt.Errorf("%w %s: file exceeds the %s limit", errLoad, path, humanize.IBytes(uint64(store.MaxByteSize())))
	case pyramid.DepthError:
		return fmt.Errorf("%w %s: unsupported color depth", errLoad, path)
	default:
		return fmt.Errorf("%w %s: %s", errLoad, path, status)
	}
}

// edits are the content changes shared by edit, preview and batch.
type edits struct {
	rotate     int
	crop       string
	brightness float64
}

// apply rotates first and then crops, so the crop rectangle is given in
// the rotated picture, as the user sees it.
func (ed edits) apply(e *transform.Engine) error {
	for i := 0; i < ((ed.rotate%4)+4)%4; i++ {
		e.Rotate()
	}

	if ed.crop != "" {
		r, err := parseRect(ed.crop)
		if err != nil {
			return fmt.Errorf("invalid --crop: %w", err)
		}
		if !e.Crop(r) {
			return fmt.Errorf("crop %v is outside the %v image", r, e.Size())
		}
	}

	if ed.brightness != 0 {
		e.SetBrightness(ed.brightness)
	}
	return nil
}

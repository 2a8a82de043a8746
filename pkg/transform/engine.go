// Package transform keeps the edits applied to an image (crop, quarter
// turn rotation, zoom and brightness) apart from its pixels, and renders
// what the user sees on demand from the levels of a pyramid.Store.
package transform

import (
	"image"
	"math"

	"github.com/alde/photoedit/internal/notify"
	"github.com/alde/photoedit/pkg/matrix"
	"github.com/alde/photoedit/pkg/pyramid"
)

const (
	// MinZoom and MaxZoom bound SetZoom.
	MinZoom = 0.01
	MaxZoom = 10.0

	// MinBrightness and MaxBrightness bound SetBrightness. The offset is
	// scaled by 255 when applied to a channel.
	MinBrightness = -1.0
	MaxBrightness = 1.0
)

// state is the part of an Engine that counts as an edit.
type state struct {
	viewport   image.Rectangle
	matrix     matrix.Matrix
	brightness float64
}

// Engine holds the view of one Store. It resets itself whenever the store
// loads a new image. Like the store, an Engine is not safe for concurrent
// use; callers confine both to one goroutine.
type Engine struct {
	store      *pyramid.Store
	disconnect func()

	state
	zoom       float64
	checkpoint state

	changed notify.Signal
}

// New creates an engine for store and resets it to the current image.
func New(store *pyramid.Store) *Engine {
	e := &Engine{store: store}
	e.disconnect = store.OnChange(e.Reset)
	e.reset()
	return e
}

// Close stops following the store.
func (e *Engine) Close() {
	if e.disconnect != nil {
		e.disconnect()
		e.disconnect = nil
	}
}

// OnChange registers fn to be called after every mutation.
func (e *Engine) OnChange(fn func()) (disconnect func()) {
	return e.changed.Connect(fn)
}

func (e *Engine) hasImage() bool {
	return e.store.Image(0) != nil
}

// Reset shows the whole image unrotated at zoom 1 with no brightness
// offset, and makes that the checkpoint.
func (e *Engine) Reset() {
	e.reset()
	e.changed.Emit()
}

func (e *Engine) reset() {
	var viewport image.Rectangle
	if img := e.store.Image(0); img != nil {
		viewport = img.Rect
	}
	e.state = state{viewport: viewport, matrix: matrix.Identity}
	e.zoom = 1
	e.checkpoint = e.state
}

// Crop narrows the viewport to r, given in display coordinates. It
// reports false and changes nothing when r does not overlap the viewport.
func (e *Engine) Crop(r image.Rectangle) bool {
	if !e.hasImage() {
		return false
	}

	area := e.UnmapRect(r).Intersect(e.viewport)
	if area.Empty() {
		return false
	}

	e.viewport = area
	e.changed.Emit()
	return true
}

// SetZoom sets the display scale, clamped to [MinZoom, MaxZoom].
func (e *Engine) SetZoom(z float64) {
	if math.IsNaN(z) || z <= 0 {
		z = MinZoom
	}
	e.zoom = min(max(z, MinZoom), MaxZoom)
	e.changed.Emit()
}

// SetBrightness sets the brightness offset, clamped to
// [MinBrightness, MaxBrightness].
func (e *Engine) SetBrightness(b float64) {
	if math.IsNaN(b) {
		b = 0
	}
	e.brightness = min(max(b, MinBrightness), MaxBrightness)
	e.changed.Emit()
}

// Rotate turns the image a quarter clockwise.
func (e *Engine) Rotate() {
	e.matrix = matrix.Rotate90.Mul(e.matrix)
	e.changed.Emit()
}

// Size returns the display size of the viewport.
func (e *Engine) Size() image.Point {
	return e.MapRect(e.viewport).Size()
}

// IsChanged reports whether the image has been edited since the last
// checkpoint. Zoom does not count.
func (e *Engine) IsChanged() bool {
	return e.hasImage() && e.state != e.checkpoint
}

// SetCheckpoint records the current edits as saved.
func (e *Engine) SetCheckpoint() {
	e.checkpoint = e.state
}

// Viewport returns the crop region in original image coordinates.
func (e *Engine) Viewport() image.Rectangle { return e.viewport }

// Matrix returns the current rotation.
func (e *Engine) Matrix() matrix.Matrix { return e.matrix }

// Zoom returns the display scale factor.
func (e *Engine) Zoom() float64 { return e.zoom }

// Brightness returns the brightness offset, from MinBrightness to MaxBrightness.
func (e *Engine) Brightness() float64 { return e.brightness }

package transform

import (
	"image"
	"math"
)

// eps absorbs the error of dividing by zooms like 0.1 before rounding.
const eps = 1e-9

func floorf(v float64) int { return int(math.Floor(v + eps)) }
func ceilf(v float64) int  { return int(math.Ceil(v - eps)) }

// space is the bounding box of the rotated viewport. Subtracting its
// corner moves the rotated viewport back to the display origin.
func (e *Engine) space() image.Rectangle {
	return e.matrix.MapRect(e.viewport)
}

// Map converts a point in original image coordinates to display
// coordinates, rounding down.
func (e *Engine) Map(p image.Point) image.Point {
	q := e.matrix.Map(p).Sub(e.space().Min)
	return image.Point{
		X: floorf(float64(q.X) * e.zoom),
		Y: floorf(float64(q.Y) * e.zoom),
	}
}

// MapRect converts a rectangle in original image coordinates to display
// coordinates. The result covers every display pixel r touches.
func (e *Engine) MapRect(r image.Rectangle) image.Rectangle {
	q := e.matrix.MapRect(r).Sub(e.space().Min)
	return image.Rect(
		floorf(float64(q.Min.X)*e.zoom),
		floorf(float64(q.Min.Y)*e.zoom),
		ceilf(float64(q.Max.X)*e.zoom),
		ceilf(float64(q.Max.Y)*e.zoom),
	)
}

// Unmap converts a display point back to original image coordinates,
// rounding up.
func (e *Engine) Unmap(p image.Point) image.Point {
	q := image.Point{
		X: ceilf(float64(p.X) / e.zoom),
		Y: ceilf(float64(p.Y) / e.zoom),
	}
	return e.matrix.Inverse().Map(q.Add(e.space().Min))
}

// UnmapRect converts a display rectangle back to original image
// coordinates. The result may reach past the viewport; callers clip it.
func (e *Engine) UnmapRect(r image.Rectangle) image.Rectangle {
	q := image.Rect(
		floorf(float64(r.Min.X)/e.zoom),
		floorf(float64(r.Min.Y)/e.zoom),
		ceilf(float64(r.Max.X)/e.zoom),
		ceilf(float64(r.Max.Y)/e.zoom),
	)
	return e.matrix.Inverse().MapRect(q.Add(e.space().Min))
}

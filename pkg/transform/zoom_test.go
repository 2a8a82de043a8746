package transform

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoomRange(t *testing.T) {
	tests := []struct {
		name   string
		img    image.Point
		view   image.Point
		lo, hi float64
	}{
		{"larger than view", image.Pt(640, 480), image.Pt(320, 240), 0.333, 4.0},
		{"much larger", image.Pt(2000, 1500), image.Pt(320, 240), 0.125, 2.0},
		{"smaller than view", image.Pt(100, 100), image.Pt(320, 240), 1.0, 4.0},
		{"tall", image.Pt(200, 1500), image.Pt(320, 240), 0.125, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := ZoomRange(tt.img, tt.view)
			assert.Equal(t, tt.lo, ZoomScales[lo], "minimum")
			assert.Equal(t, tt.hi, ZoomScales[hi], "maximum")
			assert.LessOrEqual(t, lo, hi)
		})
	}
}

func TestZoomStop(t *testing.T) {
	img, view := image.Pt(640, 480), image.Pt(320, 240)
	lo, hi := ZoomRange(img, view)
	assert.Equal(t, 0.5, ZoomScales[ZoomStop(img, view, lo, hi)])

	small := image.Pt(100, 100)
	lo, hi = ZoomRange(small, view)
	assert.Equal(t, 1.0, ZoomScales[ZoomStop(small, view, lo, hi)])
}

func TestFitZoom(t *testing.T) {
	tests := []struct {
		name string
		img  image.Point
		view image.Point
		want float64
	}{
		{"fits", image.Pt(200, 100), image.Pt(240, 276), 1},
		{"exact", image.Pt(240, 276), image.Pt(240, 276), 1},
		{"width bound", image.Pt(640, 480), image.Pt(320, 240), 0.5},
		{"height bound", image.Pt(100, 1000), image.Pt(240, 250), 0.25},
		{"clamped", image.Pt(10000, 100), image.Pt(320, 240), 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FitZoom(tt.img, tt.view))
		})
	}
}

package transform

import (
	"image"
	"image/color"
	"testing"

	"github.com/alde/photoedit/pkg/matrix"
	"github.com/alde/photoedit/pkg/pyramid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), uint8(x ^ y), 0xff})
		}
	}
	return img
}

func loaded(t *testing.T, w, h int) (*pyramid.Store, *Engine) {
	t.Helper()

	store := pyramid.NewStore(pyramid.DefaultConfig())
	e := New(store)
	t.Cleanup(e.Close)

	require.Equal(t, pyramid.Normal, store.LoadImage(gradient(w, h), "png", 0))
	return store, e
}

func TestEngineResetsOnLoad(t *testing.T) {
	store := pyramid.NewStore(pyramid.DefaultConfig())
	e := New(store)
	defer e.Close()

	assert.True(t, e.Viewport().Empty())
	assert.Nil(t, e.Preview(image.Rect(0, 0, 10, 10)))
	assert.Nil(t, e.Image())
	assert.Nil(t, e.Thumbnail(image.Pt(10, 10)))
	assert.False(t, e.IsChanged())

	calls := 0
	e.OnChange(func() { calls++ })

	store.LoadImage(gradient(640, 480), "png", 0)
	assert.Equal(t, 1, calls)
	assert.Equal(t, image.Rect(0, 0, 640, 480), e.Viewport())
	assert.Equal(t, matrix.Identity, e.Matrix())
	assert.Equal(t, 1.0, e.Zoom())
	assert.Equal(t, 0.0, e.Brightness())

	e.Rotate()
	e.SetZoom(2)
	e.SetBrightness(0.5)
	require.True(t, e.Crop(image.Rect(0, 0, 100, 100)))

	store.LoadImage(gradient(30, 20), "png", 0)
	assert.Equal(t, image.Rect(0, 0, 30, 20), e.Viewport())
	assert.Equal(t, matrix.Identity, e.Matrix())
	assert.Equal(t, 1.0, e.Zoom())
	assert.Equal(t, 0.0, e.Brightness())
	assert.False(t, e.IsChanged())
}

func TestEngineFailedLoadClearsViewport(t *testing.T) {
	store, e := loaded(t, 64, 64)

	assert.Equal(t, pyramid.LoadError, store.LoadImage(nil, "", 0))
	assert.True(t, e.Viewport().Empty())
	assert.Nil(t, e.Image())
	assert.False(t, e.Crop(image.Rect(0, 0, 10, 10)))
}

func TestEngineCloseStopsFollowing(t *testing.T) {
	store, e := loaded(t, 64, 32)
	e.Close()

	store.LoadImage(gradient(10, 10), "png", 0)
	assert.Equal(t, image.Rect(0, 0, 64, 32), e.Viewport())
}

func TestEngineNotifiesEveryMutation(t *testing.T) {
	_, e := loaded(t, 100, 100)

	calls := 0
	disconnect := e.OnChange(func() { calls++ })

	e.Rotate()
	e.SetZoom(0.5)
	e.SetBrightness(0.1)
	e.Crop(image.Rect(0, 0, 10, 10))
	e.Reset()
	assert.Equal(t, 5, calls)

	disconnect()
	e.Rotate()
	assert.Equal(t, 5, calls)
}

func TestRotationClosure(t *testing.T) {
	_, e := loaded(t, 100, 200)

	for i := 0; i < 4; i++ {
		assert.Equal(t, i, e.Matrix().Quarters())
		e.Rotate()
	}
	assert.Equal(t, matrix.Identity, e.Matrix())
	assert.Equal(t, image.Pt(100, 200), e.Size())
}

func TestRotateThenCropWholeDisplay(t *testing.T) {
	_, e := loaded(t, 100, 200)

	e.Rotate()
	assert.Equal(t, image.Pt(200, 100), e.Size())

	require.True(t, e.Crop(image.Rectangle{Max: e.Size()}))
	assert.Equal(t, image.Rect(0, 0, 100, 200), e.Viewport())
	assert.Equal(t, image.Pt(200, 100), e.Size())
}

func TestCropInDisplayCoordinates(t *testing.T) {
	tests := []struct {
		name   string
		zoom   float64
		rotate int
		crop   image.Rectangle
		want   image.Rectangle
	}{
		{"identity", 1, 0, image.Rect(10, 20, 30, 40), image.Rect(10, 20, 30, 40)},
		{"zoomed in", 2, 0, image.Rect(0, 0, 100, 100), image.Rect(0, 0, 50, 50)},
		{"zoomed out", 0.5, 0, image.Rect(10, 10, 20, 20), image.Rect(20, 20, 40, 40)},
		// 100x200 turned clockwise: display x climbs the left edge from
		// the bottom, display y runs along the top edge.
		{"quarter turn", 1, 1, image.Rect(0, 0, 50, 10), image.Rect(0, 150, 10, 200)},
		{"half turn", 1, 2, image.Rect(0, 0, 10, 10), image.Rect(90, 190, 100, 200)},
		{"clipped", 1, 0, image.Rect(-50, -50, 10, 10), image.Rect(0, 0, 10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, e := loaded(t, 100, 200)
			e.SetZoom(tt.zoom)
			for i := 0; i < tt.rotate; i++ {
				e.Rotate()
			}

			require.True(t, e.Crop(tt.crop))
			assert.Equal(t, tt.want, e.Viewport())
		})
	}
}

func TestCropOutsideViewportIsIgnored(t *testing.T) {
	_, e := loaded(t, 100, 100)

	calls := 0
	e.OnChange(func() { calls++ })

	assert.False(t, e.Crop(image.Rect(200, 200, 300, 300)))
	assert.False(t, e.Crop(image.Rectangle{}))
	assert.Equal(t, image.Rect(0, 0, 100, 100), e.Viewport())
	assert.Zero(t, calls)
	assert.False(t, e.IsChanged())
}

func TestMapUnmapRoundTrip(t *testing.T) {
	for _, zoom := range []float64{1, 2, 0.5} {
		for turns := 0; turns < 4; turns++ {
			for _, crop := range []bool{false, true} {
				_, e := loaded(t, 60, 40)
				if crop {
					require.True(t, e.Crop(image.Rect(5, 5, 40, 30)))
				}
				for i := 0; i < turns; i++ {
					e.Rotate()
				}
				e.SetZoom(zoom)

				vp := e.Viewport()
				for y := vp.Min.Y; y < vp.Max.Y; y += 3 {
					for x := vp.Min.X; x < vp.Max.X; x += 3 {
						p := image.Pt(x, y)
						got := e.Unmap(e.Map(p))
						d := got.Sub(p)
						if d.X < -1 || d.X > 1 || d.Y < -1 || d.Y > 1 {
							t.Fatalf("zoom %v turns %d crop %v: unmap(map(%v)) = %v", zoom, turns, crop, p, got)
						}
					}
				}
			}
		}
	}
}

func TestMapPutsViewportAtOrigin(t *testing.T) {
	_, e := loaded(t, 100, 200)
	require.True(t, e.Crop(image.Rect(10, 20, 60, 120)))

	for i := 0; i < 4; i++ {
		r := e.MapRect(e.Viewport())
		assert.Equal(t, image.Point{}, r.Min, "after %d turns", i)
		assert.Equal(t, e.Size(), r.Size(), "after %d turns", i)
		e.Rotate()
	}
}

func TestSizeFollowsZoom(t *testing.T) {
	_, e := loaded(t, 640, 480)

	e.SetZoom(0.5)
	assert.Equal(t, image.Pt(320, 240), e.Size())

	e.SetZoom(0.24)
	assert.Equal(t, image.Pt(154, 116), e.Size())

	e.Rotate()
	assert.Equal(t, image.Pt(116, 154), e.Size())
}

func TestSetZoomClamps(t *testing.T) {
	_, e := loaded(t, 10, 10)

	tests := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{0, MinZoom},
		{-3, MinZoom},
		{0.001, MinZoom},
		{100, MaxZoom},
	}
	for _, tt := range tests {
		e.SetZoom(tt.in)
		assert.Equal(t, tt.want, e.Zoom(), "SetZoom(%v)", tt.in)
	}
}

func TestSetBrightnessClamps(t *testing.T) {
	_, e := loaded(t, 10, 10)

	e.SetBrightness(2)
	assert.Equal(t, MaxBrightness, e.Brightness())
	e.SetBrightness(-2)
	assert.Equal(t, MinBrightness, e.Brightness())
	e.SetBrightness(0.25)
	assert.Equal(t, 0.25, e.Brightness())
}

func TestDirtyTracking(t *testing.T) {
	edits := map[string]func(e *Engine){
		"crop":       func(e *Engine) { e.Crop(image.Rect(0, 0, 10, 10)) },
		"rotate":     func(e *Engine) { e.Rotate() },
		"brightness": func(e *Engine) { e.SetBrightness(0.3) },
	}

	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			_, e := loaded(t, 50, 50)
			assert.False(t, e.IsChanged())

			edit(e)
			assert.True(t, e.IsChanged())

			e.SetCheckpoint()
			assert.False(t, e.IsChanged())

			e.Rotate()
			assert.True(t, e.IsChanged())

			e.Reset()
			assert.False(t, e.IsChanged())
		})
	}

	t.Run("zoom", func(t *testing.T) {
		_, e := loaded(t, 50, 50)
		e.SetZoom(3)
		assert.False(t, e.IsChanged())
	})
}

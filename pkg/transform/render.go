package transform

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// fixedShift is the binary point of the nearest neighbour scaler.
const fixedShift = 16

// Preview renders the part of the image under r, given in display
// coordinates, at the current zoom. It returns nil when nothing is
// loaded or r misses the viewport.
func (e *Engine) Preview(r image.Rectangle) *image.NRGBA {
	if !e.hasImage() {
		return nil
	}

	area := e.UnmapRect(r).Intersect(e.viewport)
	if area.Empty() {
		return nil
	}

	level := e.store.Level(e.zoom)
	sample := e.store.Region(area, level)
	if sample == nil {
		return nil
	}

	out := e.MapRect(area)
	return scaleNearest(e.transform(sample, sample.Rect), out.Dx(), out.Dy())
}

// Image renders the viewport at full resolution, for saving.
func (e *Engine) Image() *image.NRGBA {
	img := e.store.Image(0)
	if img == nil {
		return nil
	}
	return e.transform(img, e.viewport)
}

// Thumbnail renders the viewport scaled to fit target, keeping its aspect
// ratio. The coarsest level that still has enough detail is used.
func (e *Engine) Thumbnail(target image.Point) *image.NRGBA {
	if !e.hasImage() || target.X <= 0 || target.Y <= 0 {
		return nil
	}

	rotated := e.space().Size()
	ratio := reductionRatio(target, rotated)
	size := image.Point{
		X: max(1, int(math.Round(float64(rotated.X)*ratio))),
		Y: max(1, int(math.Round(float64(rotated.Y)*ratio))),
	}

	sample := e.store.Region(e.viewport, e.store.Level(ratio))
	if sample == nil {
		return nil
	}

	img := e.transform(sample, sample.Rect)
	if img.Rect.Size() == size {
		return img
	}

	dst := image.NewNRGBA(image.Rectangle{Max: size})
	draw.CatmullRom.Scale(dst, dst.Rect, img, img.Rect, draw.Src, nil)
	return dst
}

// reductionRatio is the scale that makes the limiting dimension of size
// match target.
func reductionRatio(target, size image.Point) float64 {
	if size.X <= 0 || size.Y <= 0 {
		return 1
	}
	if target.X*size.Y > target.Y*size.X {
		return float64(target.Y) / float64(size.Y)
	}
	return float64(target.X) / float64(size.X)
}

// transform copies area of src into a new buffer sized to the rotated
// area, rotating by the engine matrix and adding the brightness offset to
// every color channel. Alpha is copied unchanged.
//
// The source is walked row by row and the destination position advanced
// by the matrix columns, so no pixel is mapped through a full multiply.
func (e *Engine) transform(src *image.NRGBA, area image.Rectangle) *image.NRGBA {
	area = area.Intersect(src.Rect)
	if area.Empty() {
		return nil
	}

	m := e.matrix
	space := m.MapRect(image.Rectangle{Max: area.Size()})
	dst := image.NewNRGBA(image.Rectangle{Max: space.Size()})

	// A pixel is a unit square; after mapping, its top-left corner is the
	// mapped corner shifted by the negative coefficients.
	origin := image.Point{
		X: min(0, m.A+m.C) - space.Min.X,
		Y: min(0, m.B+m.D) - space.Min.Y,
	}

	lut := brightnessTable(e.brightness)

	row := origin
	for y := area.Min.Y; y < area.Max.Y; y++ {
		si := src.PixOffset(area.Min.X, y)
		d := row
		for x := area.Min.X; x < area.Max.X; x++ {
			di := d.Y*dst.Stride + d.X*4
			s := src.Pix[si : si+4 : si+4]
			p := dst.Pix[di : di+4 : di+4]
			p[0] = lut[s[0]]
			p[1] = lut[s[1]]
			p[2] = lut[s[2]]
			p[3] = s[3]

			si += 4
			d.X += m.A
			d.Y += m.B
		}
		row.X += m.C
		row.Y += m.D
	}

	return dst
}

// brightnessTable maps every channel value to itself plus round(b*255),
// clamped to [0, 255].
func brightnessTable(b float64) *[256]uint8 {
	var lut [256]uint8
	offset := int(math.Round(b * 255))
	for v := range lut {
		lut[v] = uint8(min(max(v+offset, 0), 255))
	}
	return &lut
}

// scaleNearest resizes src to w x h by nearest neighbour sampling, with
// 16.16 fixed-point source steps.
func scaleNearest(src *image.NRGBA, w, h int) *image.NRGBA {
	if src == nil || w <= 0 || h <= 0 {
		return nil
	}
	sw, sh := src.Rect.Dx(), src.Rect.Dy()
	if sw == w && sh == h {
		return src
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	xStep := (sw << fixedShift) / w
	yStep := (sh << fixedShift) / h

	cols := make([]int, w)
	for x, fx := 0, 0; x < w; x, fx = x+1, fx+xStep {
		cols[x] = (fx >> fixedShift) * 4
	}

	for y, fy := 0, 0; y < h; y, fy = y+1, fy+yStep {
		srow := src.Pix[src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+(fy>>fixedShift)):]
		drow := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x, sx := range cols {
			copy(drow[x*4:x*4+4], srow[sx:sx+4])
		}
	}

	return dst
}

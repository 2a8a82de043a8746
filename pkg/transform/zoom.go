package transform

import "image"

// ZoomScales are the stops of the editor zoom slider.
var ZoomScales = []float64{
	0.01, 0.0125, 0.025, 0.033, 0.05, 0.0667, 0.075,
	0.1, 0.125, 0.25, 0.333, 0.5, 0.667, 0.75, 0.9,
	1.0, 1.1, 1.25, 1.5, 1.75, 2.0, 2.5, 3.0, 4.0,
}

// maxZoomedExtent caps how large a zoomed image may get on either axis.
const maxZoomedExtent = 4096

// ZoomRange returns the indices into ZoomScales a slider should span for
// an image shown in view. The lowest stop is the largest one at which the
// whole image still fits in view; the highest is the largest stop keeping
// the zoomed image under maxZoomedExtent, and never below 1.
func ZoomRange(img, view image.Point) (lo, hi int) {
	fits := func(i int, limit image.Point) bool {
		return ZoomScales[i]*float64(img.X) < float64(limit.X) &&
			ZoomScales[i]*float64(img.Y) < float64(limit.Y)
	}

	for lo+1 < len(ZoomScales) && ZoomScales[lo] < 1 && fits(lo+1, view) {
		lo++
	}

	hi = lo
	for hi+1 < len(ZoomScales) && ZoomScales[hi] < 1 {
		hi++
	}

	limit := image.Pt(maxZoomedExtent, maxZoomedExtent)
	for hi+1 < len(ZoomScales) && fits(hi+1, limit) {
		hi++
	}

	return lo, hi
}

// ZoomStop returns the initial slider position for img in view: the first
// stop from lo on that no longer fits, stopping at zoom 1 or hi.
func ZoomStop(img, view image.Point, lo, hi int) int {
	v := lo
	for v < hi && ZoomScales[v] < 1 &&
		ZoomScales[v]*float64(img.X) < float64(view.X) &&
		ZoomScales[v]*float64(img.Y) < float64(view.Y) {
		v++
	}
	return v
}

// FitZoom returns the zoom that fits img into view. Images that already
// fit are shown at 1; larger ones are reduced, but never below 0.1.
func FitZoom(img, view image.Point) float64 {
	if img.X <= view.X && img.Y <= view.Y {
		return 1
	}
	return min(max(reductionRatio(view, img), 0.1), 1)
}

package pyramid

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Resampler scales img to exactly w x h pixels.
type Resampler func(img image.Image, w, h int) *image.NRGBA

// BoxResampler averages the covered source pixels. It is the default for
// halving, where it behaves like a 2x2 mean.
func BoxResampler(img image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(img, w, h, imaging.Box)
}

// LanczosResampler is sharper than the box filter and slower.
func LanczosResampler(img image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// BilinearResampler uses nfnt/resize, which is quick on YCbCr and RGBA sources.
func BilinearResampler(img image.Image, w, h int) *image.NRGBA {
	out := resize.Resize(uint(w), uint(h), img, resize.Bilinear)
	if nrgba, ok := out.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}
	return imaging.Clone(out)
}

var resamplers = map[string]Resampler{
	"box":      BoxResampler,
	"lanczos":  LanczosResampler,
	"bilinear": BilinearResampler,
}

// ResamplerByName looks up a resampler by its CLI name.
func ResamplerByName(name string) (Resampler, error) {
	r, ok := resamplers[name]
	if !ok {
		return nil, fmt.Errorf("unknown resampling filter %q (available: %v)", name, ResamplerNames())
	}
	return r, nil
}

// ResamplerNames lists the known resampler names.
func ResamplerNames() []string {
	names := make([]string, 0, len(resamplers))
	for name := range resamplers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

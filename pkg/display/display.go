// Package display describes the screens images are edited on.
package display

import "image"

// Geometry holds the pixel layout of a device screen.
type Geometry struct {
	ScreenWidth  int
	ScreenHeight int
	DPI          int

	TitleBarHeight int // window caption above the image
	SoftKeyHeight  int // context label bar below the image

	ThumbnailSize int // edge of the square cells in the picture list
}

// Profile is a named device screen.
type Profile struct {
	Name     string
	Geometry Geometry
}

// Screen returns the full screen size.
func (p Profile) Screen() image.Point {
	return image.Pt(p.Geometry.ScreenWidth, p.Geometry.ScreenHeight)
}

// View returns the area left for the image once the title bar and the
// soft key bar are drawn.
func (p Profile) View() image.Point {
	g := p.Geometry
	return image.Pt(g.ScreenWidth, max(1, g.ScreenHeight-g.TitleBarHeight-g.SoftKeyHeight))
}

// Thumbnail returns the bounding box of a list thumbnail.
func (p Profile) Thumbnail() image.Point {
	return image.Pt(p.Geometry.ThumbnailSize, p.Geometry.ThumbnailSize)
}

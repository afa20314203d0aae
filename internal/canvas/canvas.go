// Package canvas maps between the fixed drawing surface and image space.
//
// The canvas has a fixed size. Loaded images are letterboxed onto it, the
// mirror axis is expressed in canvas columns and the drawn line position is
// derived from the axis and the current start side.
package canvas

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Background fills the letterbox bands.
var Background = color.NRGBA{A: 255}

// Geometry is the canvas size in pixels.
type Geometry struct {
	Width  int
	Height int
}

func New(width, height int) Geometry {
	return Geometry{Width: width, Height: height}
}

// Bounds returns the canvas rectangle anchored at the origin.
func (g Geometry) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// Center is the axis position used after every load.
func (g Geometry) Center() int {
	return g.Width / 2
}

// Clamp limits a screen column to [0, Width].
func (g Geometry) Clamp(x int) int {
	return max(0, min(x, g.Width))
}

// Reflect mirrors a column around the canvas center.
func (g Geometry) Reflect(x int) int {
	return g.Width - x
}

// AxisFromScreen converts a drag position into an axis value. When the kept
// half is on the right the axis is measured from the right edge.
func (g Geometry) AxisFromScreen(x int, startLeft bool) int {
	x = g.Clamp(x)
	if startLeft {
		return x
	}
	return g.Reflect(x)
}

// LineX is the screen column where the axis line is drawn.
func (g Geometry) LineX(axis int, startLeft bool) int {
	if startLeft {
		return axis
	}
	return g.Reflect(axis)
}

// FitSize scales w x h to fit the canvas preserving the aspect ratio. The
// constrained dimension takes the canvas size and the other one is truncated.
func (g Geometry) FitSize(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	aspect := float64(w) / float64(h)
	var newW, newH int
	if aspect > float64(g.Width)/float64(g.Height) {
		newW = g.Width
		newH = int(float64(newW) / aspect)
	} else {
		newH = g.Height
		newW = int(float64(newH) * aspect)
	}
	return max(1, newW), max(1, newH)
}

// Offset centers a newW x newH image on the canvas.
func (g Geometry) Offset(newW, newH int) image.Point {
	return image.Pt((g.Width-newW)/2, (g.Height-newH)/2)
}

// Fit letterboxes img onto a new canvas-sized opaque buffer using bilinear
// resampling. img is left untouched.
func (g Geometry) Fit(img image.Image) *image.NRGBA {
	dst := imaging.New(g.Width, g.Height, Background)

	bounds := img.Bounds()
	newW, newH := g.FitSize(bounds.Dx(), bounds.Dy())
	if newW == 0 || newH == 0 {
		return dst
	}

	resized := imaging.Resize(Flatten(img), newW, newH, imaging.Linear)
	return imaging.Paste(dst, resized, g.Offset(newW, newH))
}

// Viewport crops img to the visible canvas area. Composites can be up to twice
// the canvas width and the surface clips at its edges.
func (g Geometry) Viewport(img image.Image) *image.NRGBA {
	b := img.Bounds()
	return imaging.Crop(img, image.Rect(b.Min.X, b.Min.Y, b.Min.X+g.Width, b.Min.Y+g.Height))
}

// Flatten composes img over black, dropping transparency.
func Flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), Background)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

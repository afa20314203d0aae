// Package mirror builds symmetric composites from a source image and a
// vertical axis.
//
// The kept half is cut at the axis, flipped horizontally and joined with
// itself. With the kept half on the left the result is [kept | flipped]; with
// the kept half on the right it is [flipped | kept]. The composite is always
// twice as wide as the kept half and as tall as the source.
package mirror

import (
	"image"

	"github.com/disintegration/imaging"

	"symmetry-studio/internal/canvas"
)

// Engine produces letterboxed sources and composites. Implementations never
// modify their inputs.
type Engine interface {
	Name() string
	Fit(img image.Image, g canvas.Geometry) (*image.NRGBA, error)
	Compose(src *image.NRGBA, axis int, startLeft bool) (*image.NRGBA, error)
}

// KeptColumns returns the half-open column range [from, to) kept for an
// image of the given width. The left half always keeps at least one column.
// The right half starts one column before the axis.
func KeptColumns(width, axis int, startLeft bool) (from, to int) {
	if startLeft {
		return 0, min(max(1, axis), width)
	}
	return min(max(0, axis-1), width), width
}

// Compose returns the mirrored composite of src, or nil when src is nil.
func Compose(src *image.NRGBA, axis int, startLeft bool) *image.NRGBA {
	if src == nil {
		return nil
	}

	b := src.Bounds()
	from, to := KeptColumns(b.Dx(), axis, startLeft)
	kept := imaging.Crop(src, image.Rect(b.Min.X+from, b.Min.Y, b.Min.X+to, b.Max.Y))

	var flipped *image.NRGBA
	if kept.Bounds().Dx() == 0 {
		// nothing on the kept side: mirror the whole image instead
		flipped = imaging.FlipH(src)
	} else {
		flipped = imaging.FlipH(kept)
	}

	if startLeft {
		return Join(kept, flipped)
	}
	return Join(flipped, kept)
}

// Join places left and right side by side. An empty half is replaced by a
// copy of the other one.
func Join(left, right *image.NRGBA) *image.NRGBA {
	switch {
	case left.Bounds().Dx() == 0:
		left = right
	case right.Bounds().Dx() == 0:
		right = left
	}

	lw := left.Bounds().Dx()
	h := max(left.Bounds().Dy(), right.Bounds().Dy())

	dst := imaging.New(lw+right.Bounds().Dx(), h, canvas.Background)
	dst = imaging.Paste(dst, left, image.Pt(0, 0))
	return imaging.Paste(dst, right, image.Pt(lw, 0))
}

// Imaging is the pure Go engine.
type Imaging struct{}

func (Imaging) Name() string {
	return "imaging"
}

func (Imaging) Fit(img image.Image, g canvas.Geometry) (*image.NRGBA, error) {
	return g.Fit(img), nil
}

func (Imaging) Compose(src *image.NRGBA, axis int, startLeft bool) (*image.NRGBA, error) {
	return Compose(src, axis, startLeft), nil
}

// Package opencv implements the mirror engine on top of gocv.
package opencv

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"symmetry-studio/internal/canvas"
	"symmetry-studio/internal/logger"
	"symmetry-studio/internal/mirror"
	"symmetry-studio/internal/opencv/conversion"
	"symmetry-studio/internal/opencv/memory"
	"symmetry-studio/internal/opencv/safe"
)

const Name = "opencv"

// Engine is a mirror.Engine backed by OpenCV. Every Mat allocated by a call is
// closed before the call returns.
type Engine struct {
	log logger.Logger
}

var _ mirror.Engine = (*Engine)(nil)

func NewEngine(log logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{log: log}
}

func (e *Engine) Name() string {
	return Name
}

// Fit letterboxes img onto a black canvas of size g.
func (e *Engine) Fit(img image.Image, g canvas.Geometry) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	newW, newH := g.FitSize(bounds.Dx(), bounds.Dy())
	if newW == 0 || newH == 0 {
		return nil, fmt.Errorf("cannot fit empty image %dx%d", bounds.Dx(), bounds.Dy())
	}

	mm := memory.NewManager(e.log)
	defer mm.Cleanup()

	src, err := conversion.ImageToMat(canvas.Flatten(img), "fit_source")
	if err != nil {
		return nil, fmt.Errorf("source conversion failed: %w", err)
	}
	mm.Track(src)

	resized, err := conversion.ResizeMat(src, newW, newH, gocv.InterpolationLinear)
	if err != nil {
		return nil, fmt.Errorf("resize failed: %w", err)
	}
	mm.Track(resized)

	dst, err := safe.NewFilledMat(g.Height, g.Width, gocv.MatTypeCV8UC3, gocv.NewScalar(0, 0, 0, 0), "fit_canvas")
	if err != nil {
		return nil, fmt.Errorf("canvas allocation failed: %w", err)
	}
	mm.Track(dst)

	if err := conversion.PasteMat(dst, resized, g.Offset(newW, newH)); err != nil {
		return nil, err
	}

	e.log.Debug("OpenCVEngine", "image fitted", map[string]interface{}{
		"source_width":  bounds.Dx(),
		"source_height": bounds.Dy(),
		"fit_width":     newW,
		"fit_height":    newH,
	})

	return conversion.MatToImage(dst)
}

// Compose builds the mirrored composite of src around axis. A nil src yields
// a nil composite.
func (e *Engine) Compose(src *image.NRGBA, axis int, startLeft bool) (*image.NRGBA, error) {
	if src == nil {
		return nil, nil
	}

	mm := memory.NewManager(e.log)
	defer mm.Cleanup()

	full, err := conversion.ImageToMat(src, "compose_source")
	if err != nil {
		return nil, fmt.Errorf("source conversion failed: %w", err)
	}
	mm.Track(full)

	from, to := mirror.KeptColumns(full.Cols(), axis, startLeft)

	if from == to {
		flipped, err := conversion.FlipHorizontal(full)
		if err != nil {
			return nil, err
		}
		mm.Track(flipped)
		return e.concat(mm, flipped, flipped)
	}

	kept, err := conversion.CropColumns(full, from, to)
	if err != nil {
		return nil, err
	}
	mm.Track(kept)

	flipped, err := conversion.FlipHorizontal(kept)
	if err != nil {
		return nil, err
	}
	mm.Track(flipped)

	if startLeft {
		return e.concat(mm, kept, flipped)
	}
	return e.concat(mm, flipped, kept)
}

func (e *Engine) concat(mm *memory.Manager, left, right *safe.Mat) (*image.NRGBA, error) {
	joined, err := conversion.ConcatHorizontal(left, right)
	if err != nil {
		return nil, fmt.Errorf("concatenation failed: %w", err)
	}
	mm.Track(joined)

	return conversion.MatToImage(joined)
}

package models

import (
	"image"
	"time"

	"github.com/google/uuid"
)

// ImageData is a decoded image fitted to the canvas, with its metadata.
type ImageData struct {
	ID       string
	Image    *image.NRGBA
	Name     string
	Format   string
	Width    int
	Height   int
	LoadTime time.Time
	// OriginalWidth and OriginalHeight are the decoded dimensions before fitting.
	OriginalWidth  int
	OriginalHeight int
}

// NewImageData wraps a fitted image with a fresh ID.
func NewImageData(img *image.NRGBA, name, format string, originalWidth, originalHeight int) *ImageData {
	b := img.Bounds()
	return &ImageData{
		ID:             uuid.NewString(),
		Image:          img,
		Name:           name,
		Format:         format,
		Width:          b.Dx(),
		Height:         b.Dy(),
		LoadTime:       time.Now(),
		OriginalWidth:  originalWidth,
		OriginalHeight: originalHeight,
	}
}

// ImageStore holds the fitted source and the composite derived from it.
// Buffers are replaced wholesale, never modified in place.
type ImageStore struct {
	Source    *ImageData
	Composite *image.NRGBA
}

// HasSource reports whether an image has been loaded.
func (s ImageStore) HasSource() bool {
	return s.Source != nil && s.Source.Image != nil
}

// HasComposite reports whether there is something to save.
func (s ImageStore) HasComposite() bool {
	return s.Composite != nil
}

// SourceImage returns the fitted source buffer or nil.
func (s ImageStore) SourceImage() *image.NRGBA {
	if s.Source == nil {
		return nil
	}
	return s.Source.Image
}

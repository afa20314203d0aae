package pipeline

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gosimple/slug"
	"go.uber.org/multierr"

	"symmetry-studio/internal/logger"
)

const DefaultJPEGQuality = 95

type Saver struct {
	log         logger.Logger
	timing      TimingTracker
	jpegQuality int
}

func NewSaver(log logger.Logger, timing TimingTracker, jpegQuality int) *Saver {
	if log == nil {
		log = logger.NewNop()
	}
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	return &Saver{log: log, timing: timing, jpegQuality: jpegQuality}
}

// FormatFor picks the encoder for name by extension. Unknown or missing
// extensions encode as PNG.
func FormatFor(name string) imaging.Format {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return imaging.PNG
	}
	return format
}

// WithDefaultExtension appends ext to path when path has no extension.
func WithDefaultExtension(path, ext string) string {
	if filepath.Ext(path) != "" {
		return path
	}
	return path + ext
}

// DefaultFileName suggests a save name derived from the loaded source name.
func DefaultFileName(sourceName string) string {
	base := filepath.Base(sourceName)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	s := slug.Make(base)
	if s == "" || s == "." {
		return "symmetry.png"
	}
	return s + "-symmetry.png"
}

// SaveToPath encodes img to path, creating or truncating the file. A failed
// encode removes the partial file. Failures are *SaveError.
func (s *Saver) SaveToPath(path string, img image.Image) error {
	if img == nil {
		return ErrNothingToSave
	}

	f, err := os.Create(path)
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}

	err = multierr.Append(s.encode(f, filepath.Base(path), img), f.Close())
	if err != nil {
		if removeErr := os.Remove(path); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			err = multierr.Append(err, removeErr)
		}
		return &SaveError{Path: path, Err: err}
	}

	return nil
}

// SaveToWriter encodes img to w choosing the format from name. When w is also
// an io.Closer it is closed, and a close failure is reported with any encode
// failure. Failures are *SaveError.
func (s *Saver) SaveToWriter(w io.Writer, name string, img image.Image) error {
	if img == nil {
		return ErrNothingToSave
	}
	if w == nil {
		return &SaveError{Path: name, Err: fmt.Errorf("no writer")}
	}

	err := s.encode(w, name, img)
	if closer, ok := w.(io.Closer); ok {
		err = multierr.Append(err, closer.Close())
	}
	if err != nil {
		return &SaveError{Path: name, Err: err}
	}
	return nil
}

func (s *Saver) encode(w io.Writer, name string, img image.Image) error {
	if s.timing != nil {
		ctx := s.timing.StartTiming("save")
		defer s.timing.EndTiming(ctx)
	}

	format := FormatFor(name)
	bounds := img.Bounds()

	s.log.Debug("ImageSaver", "saving image", map[string]interface{}{
		"name":   name,
		"format": format.String(),
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	})

	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(s.jpegQuality)); err != nil {
		s.log.Error("ImageSaver", err, map[string]interface{}{
			"name":   name,
			"format": format.String(),
		})
		return fmt.Errorf("encode %s: %w", format, err)
	}

	s.log.Info("ImageSaver", "image saved", map[string]interface{}{
		"name":   name,
		"format": format.String(),
	})
	return nil
}

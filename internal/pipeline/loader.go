package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"symmetry-studio/internal/logger"
)

// OpenExtensions lists the file extensions offered by the open dialog.
var OpenExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// Decoded is an image as read from its source, before fitting.
type Decoded struct {
	Image  image.Image
	Name   string
	Format string
	Width  int
	Height int
	Size   int
}

type Loader struct {
	log    logger.Logger
	timing TimingTracker
}

func NewLoader(log logger.Logger, timing TimingTracker) *Loader {
	if log == nil {
		log = logger.NewNop()
	}
	return &Loader{log: log, timing: timing}
}

// LoadFromPath decodes the image stored at path. Failures are *LoadError.
func (l *Loader) LoadFromPath(path string) (*Decoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	decoded, err := l.LoadFromBytes(data, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return decoded, nil
}

// LoadFromReader decodes everything readable from r. name is used for
// diagnostics and format detection only. Failures are *LoadError.
func (l *Loader) LoadFromReader(r io.Reader, name string) (*Decoded, error) {
	if r == nil {
		return nil, &LoadError{Path: name, Err: fmt.Errorf("no reader")}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Path: name, Err: fmt.Errorf("failed to read image data: %w", err)}
	}

	decoded, err := l.LoadFromBytes(data, name)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	return decoded, nil
}

func (l *Loader) LoadFromBytes(data []byte, name string) (*Decoded, error) {
	if l.timing != nil {
		ctx := l.timing.StartTiming("load")
		defer l.timing.EndTiming(ctx)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	if err := sniff(data); err != nil {
		return nil, err
	}

	img, stdFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	decoded := &Decoded{
		Image:  img,
		Name:   filepath.Base(name),
		Format: determineActualFormat(strings.ToLower(filepath.Ext(name)), stdFormat),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Size:   len(data),
	}

	l.log.Info("ImageLoader", "image loaded successfully", map[string]interface{}{
		"name":       decoded.Name,
		"width":      decoded.Width,
		"height":     decoded.Height,
		"format":     decoded.Format,
		"size_bytes": decoded.Size,
	})

	return decoded, nil
}

// sniff rejects content that is recognisably not an image.
func sniff(data []byte) error {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return nil
	}
	if !filetype.IsImage(data) {
		return fmt.Errorf("unsupported file type %s", kind.MIME.Value)
	}
	return nil
}

func determineActualFormat(extension, stdLibFormat string) string {
	if stdLibFormat != "" {
		return stdLibFormat
	}

	switch extension {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		return "unknown"
	}
}

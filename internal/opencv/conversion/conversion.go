package conversion

import (
	"fmt"
	"image"

	"symmetry-studio/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// ImageToMat converts an NRGBA image into a 3-channel BGR Mat. Alpha is
// dropped, callers flatten transparent images first.
func ImageToMat(img *image.NRGBA, tag string) (*safe.Mat, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if err := safe.ValidateDimensions(width, height, "image to Mat conversion"); err != nil {
		return nil, err
	}

	rgba, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC4, packedPix(img))
	if err != nil {
		return nil, fmt.Errorf("RGBA Mat creation failed: %w", err)
	}
	defer rgba.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR)

	return safe.Adopt(bgr, tag)
}

// MatToImage converts a BGR Mat into an opaque NRGBA image.
func MatToImage(src *safe.Mat) (*image.NRGBA, error) {
	if err := safe.ValidateMatForOperation(src, "Mat to image conversion"); err != nil {
		return nil, err
	}

	if src.Channels() != 3 {
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}

	rows, cols := src.Rows(), src.Cols()

	rgba := gocv.NewMat()
	defer rgba.Close()
	gocv.CvtColor(src.GetMat(), &rgba, gocv.ColorBGRToRGBA)

	data := rgba.ToBytes()
	if len(data) != rows*cols*4 {
		return nil, fmt.Errorf("unexpected pixel buffer size %d for %dx%d", len(data), cols, rows)
	}

	return &image.NRGBA{
		Pix:    data,
		Stride: cols * 4,
		Rect:   image.Rect(0, 0, cols, rows),
	}, nil
}

// packedPix returns the pixel rows of img without stride padding.
func packedPix(img *image.NRGBA) []byte {
	bounds := img.Bounds()
	rowLen := bounds.Dx() * 4
	if img.Stride == rowLen && bounds.Min == (image.Point{}) {
		return img.Pix[:rowLen*bounds.Dy()]
	}

	pix := make([]byte, 0, rowLen*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		start := img.PixOffset(bounds.Min.X, y)
		pix = append(pix, img.Pix[start:start+rowLen]...)
	}
	return pix
}

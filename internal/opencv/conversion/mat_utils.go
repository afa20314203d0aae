package conversion

import (
	"fmt"
	"image"

	"symmetry-studio/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// ResizeMat resizes Mat to new dimensions using specified interpolation
func ResizeMat(src *safe.Mat, newWidth, newHeight int, interpolation gocv.InterpolationFlags) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "Mat resizing"); err != nil {
		return nil, err
	}

	if newWidth <= 0 || newHeight <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", newWidth, newHeight)
	}

	dst := gocv.NewMat()
	gocv.Resize(src.GetMat(), &dst, image.Pt(newWidth, newHeight), 0, 0, interpolation)

	return safe.Adopt(dst, src.Tag()+"_resized")
}

// CropColumns copies columns [from, to) of src into a new Mat.
func CropColumns(src *safe.Mat, from, to int) (*safe.Mat, error) {
	if err := safe.ValidateColumns(src, from, to, "Mat cropping"); err != nil {
		return nil, err
	}

	region := src.GetMat().Region(image.Rect(from, 0, to, src.Rows()))
	defer region.Close()

	return safe.Adopt(region.Clone(), src.Tag()+"_cropped")
}

// FlipHorizontal mirrors src around its vertical center.
func FlipHorizontal(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "Mat flipping"); err != nil {
		return nil, err
	}

	dst := gocv.NewMat()
	gocv.Flip(src.GetMat(), &dst, 1)

	return safe.Adopt(dst, src.Tag()+"_flipped")
}

// ConcatHorizontal places left and right side by side.
func ConcatHorizontal(left, right *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(left, "Mat concatenation"); err != nil {
		return nil, err
	}
	if err := safe.ValidateMatForOperation(right, "Mat concatenation"); err != nil {
		return nil, err
	}
	if left.Rows() != right.Rows() {
		return nil, fmt.Errorf("row count mismatch: %d vs %d", left.Rows(), right.Rows())
	}

	dst := gocv.NewMat()
	gocv.Hconcat(left.GetMat(), right.GetMat(), &dst)

	return safe.Adopt(dst, "composite")
}

// PasteMat copies src into dst with its top-left corner at at.
func PasteMat(dst, src *safe.Mat, at image.Point) error {
	if err := safe.ValidateMatForOperation(dst, "Mat paste"); err != nil {
		return err
	}
	if err := safe.ValidateMatForOperation(src, "Mat paste"); err != nil {
		return err
	}

	rect := image.Rect(at.X, at.Y, at.X+src.Cols(), at.Y+src.Rows())
	if !rect.In(image.Rect(0, 0, dst.Cols(), dst.Rows())) {
		return fmt.Errorf("paste region %v exceeds Mat bounds %dx%d", rect, dst.Cols(), dst.Rows())
	}

	region := dst.GetMat().Region(rect)
	defer region.Close()
	src.GetMat().CopyTo(&region)

	return nil
}

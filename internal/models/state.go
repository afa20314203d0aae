package models

import "fmt"

type Phase int

const (
	NoImage Phase = iota
	ImageLoaded
)

func (p Phase) String() string {
	switch p {
	case NoImage:
		return "no-image"
	case ImageLoaded:
		return "image-loaded"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// AppState is the whole interactive state. It is passed and returned by value.
type AppState struct {
	Images    ImageStore
	Axis      int
	StartLeft bool
}

// NewAppState returns the state before any image is loaded: the axis sits at
// the center and the left half is kept.
func NewAppState(canvasWidth int) AppState {
	return AppState{
		Axis:      canvasWidth / 2,
		StartLeft: true,
	}
}

func (s AppState) Phase() Phase {
	if s.Images.HasSource() {
		return ImageLoaded
	}
	return NoImage
}

// Side names the kept half.
func (s AppState) Side() string {
	if s.StartLeft {
		return "left"
	}
	return "right"
}

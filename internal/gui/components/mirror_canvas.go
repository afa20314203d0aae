package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// MirrorCanvas is a fixed-size surface showing the composite with a vertical
// axis line drawn on top. Dragging anywhere on it moves the line.
type MirrorCanvas struct {
	widget.BaseWidget

	width  int
	height int

	background *canvas.Rectangle
	image      *canvas.Image
	line       *canvas.Line
	lineX      int

	OnDragged func(x int)
	OnDragEnd func()
}

var _ fyne.Draggable = (*MirrorCanvas)(nil)

func NewMirrorCanvas(width, height int, lineColor color.Color, lineWidth float32) *MirrorCanvas {
	mc := &MirrorCanvas{
		width:      width,
		height:     height,
		background: canvas.NewRectangle(color.Black),
		image:      canvas.NewImageFromImage(nil),
		line:       canvas.NewLine(lineColor),
	}

	mc.image.FillMode = canvas.ImageFillStretch
	mc.image.ScaleMode = canvas.ImageScalePixels
	mc.line.StrokeWidth = lineWidth

	mc.ExtendBaseWidget(mc)
	return mc
}

// SetImage replaces the displayed image. It is drawn at its pixel size from
// the top-left corner and clipped by the canvas.
func (mc *MirrorCanvas) SetImage(img image.Image) {
	mc.image.Image = img
	mc.Refresh()
}

// SetLineX moves the axis line to screen column x.
func (mc *MirrorCanvas) SetLineX(x int) {
	mc.lineX = x
	mc.Refresh()
}

func (mc *MirrorCanvas) LineX() int {
	return mc.lineX
}

func (mc *MirrorCanvas) Image() image.Image {
	return mc.image.Image
}

func (mc *MirrorCanvas) Dragged(ev *fyne.DragEvent) {
	if mc.OnDragged != nil {
		mc.OnDragged(int(ev.Position.X))
	}
}

func (mc *MirrorCanvas) DragEnd() {
	if mc.OnDragEnd != nil {
		mc.OnDragEnd()
	}
}

func (mc *MirrorCanvas) MinSize() fyne.Size {
	return fyne.NewSize(float32(mc.width), float32(mc.height))
}

func (mc *MirrorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &mirrorCanvasRenderer{canvas: mc}
}

type mirrorCanvasRenderer struct {
	canvas *MirrorCanvas
}

func (r *mirrorCanvasRenderer) Layout(size fyne.Size) {
	mc := r.canvas

	mc.background.Resize(fyne.NewSize(float32(mc.width), float32(mc.height)))
	mc.background.Move(fyne.NewPos(0, 0))

	if mc.image.Image != nil {
		b := mc.image.Image.Bounds()
		mc.image.Resize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
	} else {
		mc.image.Resize(fyne.NewSize(0, 0))
	}
	mc.image.Move(fyne.NewPos(0, 0))

	x := float32(mc.lineX)
	mc.line.Position1 = fyne.NewPos(x, 0)
	mc.line.Position2 = fyne.NewPos(x, float32(mc.height))
}

func (r *mirrorCanvasRenderer) MinSize() fyne.Size {
	return r.canvas.MinSize()
}

func (r *mirrorCanvasRenderer) Refresh() {
	r.Layout(r.canvas.Size())
	canvas.Refresh(r.canvas.background)
	canvas.Refresh(r.canvas.image)
	canvas.Refresh(r.canvas.line)
}

// Objects keeps the line last so it is always painted above the image.
func (r *mirrorCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.background, r.canvas.image, r.canvas.line}
}

func (r *mirrorCanvasRenderer) Destroy() {}

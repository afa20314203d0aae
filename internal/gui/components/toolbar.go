package components

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type Toolbar struct {
	container    *fyne.Container
	LoadButton   *widget.Button
	SaveButton   *widget.Button
	SwitchButton *widget.Button
	statusLabel  *widget.Label

	imageLoadHandler  func()
	imageSaveHandler  func()
	switchSideHandler func()
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.setupToolbar()
	return toolbar
}

func (t *Toolbar) setupToolbar() {
	background := canvas.NewRectangle(color.RGBA{R: 250, G: 249, B: 245, A: 255})
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeWidth = 1.0
	border.StrokeColor = color.RGBA{R: 231, G: 231, B: 231, A: 255}

	t.LoadButton = widget.NewButton("Load image", t.onImageLoad)
	t.LoadButton.Importance = widget.HighImportance
	t.SaveButton = widget.NewButton("Save image", t.onImageSave)
	t.SaveButton.Importance = widget.HighImportance
	t.SwitchButton = widget.NewButton("Switch side", t.onSwitchSide)

	t.statusLabel = widget.NewLabel("Ready")
	t.statusLabel.Truncation = fyne.TextTruncateEllipsis

	buttons := container.NewHBox(t.LoadButton, t.SaveButton, t.SwitchButton)
	content := container.NewBorder(nil, nil, buttons, nil, t.statusLabel)

	t.container = container.NewStack(
		border,
		container.NewPadded(
			container.NewStack(background, container.NewPadded(content)),
		),
	)
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetImageLoadHandler(handler func()) {
	t.imageLoadHandler = handler
}

func (t *Toolbar) SetImageSaveHandler(handler func()) {
	t.imageSaveHandler = handler
}

func (t *Toolbar) SetSwitchSideHandler(handler func()) {
	t.switchSideHandler = handler
}

func (t *Toolbar) SetStatus(status string) {
	t.statusLabel.SetText(status)
}

func (t *Toolbar) Status() string {
	return t.statusLabel.Text
}

func (t *Toolbar) onImageLoad() {
	if t.imageLoadHandler != nil {
		t.imageLoadHandler()
	}
}

func (t *Toolbar) onImageSave() {
	if t.imageSaveHandler != nil {
		t.imageSaveHandler()
	}
}

func (t *Toolbar) onSwitchSide() {
	if t.switchSideHandler != nil {
		t.switchSideHandler()
	}
}

package gui

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetry-studio/internal/canvas"
	"symmetry-studio/internal/controllers"
)

func newTestManager(t *testing.T) (*Manager, *controllers.Session) {
	t.Helper()
	test.NewTempApp(t)

	ctrl := controllers.NewController(controllers.Options{Geometry: canvas.New(80, 60)})
	session := controllers.NewSession(ctrl, nil, nil)
	window := test.NewTempWindow(t, nil)

	m := NewManager(window, session, Options{LineColor: color.NRGBA{R: 255, A: 255}, LineWidth: 2}, nil)
	window.SetContent(m.GetMainContainer())
	return m, session
}

func loadFixture(t *testing.T, session *controllers.Session, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	path := filepath.Join(t.TempDir(), "white.png")
	require.NoError(t, imaging.Save(img, path))
	require.NoError(t, session.Dispatch(controllers.Load{Path: path}))
}

func TestManagerInitialLine(t *testing.T) {
	m, _ := newTestManager(t)

	assert.Equal(t, 40, m.Canvas().LineX())
	assert.Nil(t, m.Canvas().Image())
	assert.Equal(t, fyne.NewSize(80, 60), m.Canvas().MinSize())
	assert.Equal(t, "Ready", m.Toolbar().Status())
}

func TestManagerDragMovesLine(t *testing.T) {
	m, session := newTestManager(t)

	m.Canvas().Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(25, 5)},
		Dragged:    fyne.NewDelta(15, 0),
	})

	assert.Equal(t, 25, m.Canvas().LineX())
	assert.Equal(t, 25, session.State().Axis)
}

func TestManagerSwitchButton(t *testing.T) {
	m, session := newTestManager(t)
	m.Canvas().Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(30, 0)}})

	test.Tap(m.Toolbar().SwitchButton)

	assert.False(t, session.State().StartLeft)
	assert.Equal(t, 50, session.State().Axis)
	assert.Equal(t, 30, m.Canvas().LineX())
	assert.Equal(t, "Keeping the right side", m.Toolbar().Status())
}

func TestManagerRendersCompositeViewport(t *testing.T) {
	m, session := newTestManager(t)
	loadFixture(t, session, 80, 60)

	require.NotNil(t, m.Canvas().Image())
	assert.Equal(t, image.Rect(0, 0, 80, 60), m.Canvas().Image().Bounds())

	m.Canvas().Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(70, 0)}})
	m.Canvas().DragEnd()

	// composite is 140 wide, the canvas shows the first 80 columns
	assert.Equal(t, 140, session.State().Images.Composite.Bounds().Dx())
	assert.Equal(t, image.Rect(0, 0, 80, 60), m.Canvas().Image().Bounds())
	assert.Equal(t, "Axis at column 70", m.Toolbar().Status())
}

func TestManagerSaveWithoutImage(t *testing.T) {
	m, _ := newTestManager(t)

	test.Tap(m.Toolbar().SaveButton)

	assert.Contains(t, m.Toolbar().Status(), "Nothing to save")
}

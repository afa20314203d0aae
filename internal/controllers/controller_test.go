package controllers

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetry-studio/internal/canvas"
	"symmetry-studio/internal/models"
	"symmetry-studio/internal/pipeline"
	"symmetry-studio/internal/timing"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 40, A: 255})
		}
	}
	return img
}

func writeImage(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func newTestController(g canvas.Geometry) *Controller {
	return NewController(Options{Geometry: g, Timing: timing.NewTracker(0)})
}

func TestInitialState(t *testing.T) {
	c := newTestController(canvas.New(800, 600))
	s := c.Initial()

	assert.Equal(t, 400, s.Axis)
	assert.True(t, s.StartLeft)
	assert.Equal(t, models.NoImage, s.Phase())
}

func TestDragWithoutImageMovesLineOnly(t *testing.T) {
	c := newTestController(canvas.New(800, 600))

	s, redraw, err := c.OnDragMove(c.Initial(), 250)
	require.NoError(t, err)
	assert.Equal(t, RedrawLine, redraw)
	assert.Equal(t, 250, s.Axis)
	assert.Nil(t, s.Images.Composite)

	s, redraw, err = c.OnDragMove(s, 1200)
	require.NoError(t, err)
	assert.Equal(t, 800, s.Axis)
	assert.Equal(t, RedrawLine, redraw)

	s, _, err = c.OnDragMove(s, -30)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Axis)

	_, redraw, err = c.OnDragRelease(s)
	require.NoError(t, err)
	assert.Equal(t, RedrawNone, redraw)
}

func TestDragOnRightSideMeasuresFromRightEdge(t *testing.T) {
	c := newTestController(canvas.New(800, 600))
	s := c.Initial()
	s.StartLeft = false

	s, _, err := c.OnDragMove(s, 300)
	require.NoError(t, err)
	assert.Equal(t, 500, s.Axis)
	assert.Equal(t, 300, c.Geometry().LineX(s.Axis, s.StartLeft))
}

func TestSwitchSideTwiceIsIdentity(t *testing.T) {
	c := newTestController(canvas.New(800, 600))

	for _, axis := range []int{0, 1, 123, 400, 799, 800} {
		s := c.Initial()
		s.Axis = axis

		once, redraw, err := c.OnSwitchSide(s)
		require.NoError(t, err)
		assert.Equal(t, RedrawLine, redraw)
		assert.Equal(t, 800-axis, once.Axis)
		assert.False(t, once.StartLeft)
		assert.Equal(t, c.Geometry().LineX(s.Axis, true), c.Geometry().LineX(once.Axis, false))

		twice, _, err := c.OnSwitchSide(once)
		require.NoError(t, err)
		assert.Equal(t, s.Axis, twice.Axis)
		assert.Equal(t, s.StartLeft, twice.StartLeft)
	}
}

func TestLoadFitsAndCentersAxis(t *testing.T) {
	c := newTestController(canvas.New(800, 600))
	path := writeImage(t, "wide.png", gradient(192, 108))

	s := c.Initial()
	s.Axis = 17
	s, redraw, err := c.OnLoad(s, path)
	require.NoError(t, err)

	assert.Equal(t, RedrawAll, redraw)
	assert.Equal(t, models.ImageLoaded, s.Phase())
	assert.Equal(t, 400, s.Axis)
	assert.Equal(t, image.Rect(0, 0, 800, 600), s.Images.Source.Image.Bounds())
	assert.Equal(t, 192, s.Images.Source.OriginalWidth)
	assert.Equal(t, "wide.png", s.Images.Source.Name)
	require.NotNil(t, s.Images.Composite)
	assert.Equal(t, image.Rect(0, 0, 800, 600), s.Images.Composite.Bounds())

	// letterbox bands stay black
	assert.Equal(t, color.NRGBA{A: 255}, s.Images.Source.Image.NRGBAAt(400, 10))
}

func TestDragRecomputesComposite(t *testing.T) {
	c := newTestController(canvas.New(80, 60))
	s, _, err := c.OnLoad(c.Initial(), writeImage(t, "g.png", gradient(80, 60)))
	require.NoError(t, err)

	s, redraw, err := c.OnDragMove(s, 30)
	require.NoError(t, err)
	assert.Equal(t, RedrawAll, redraw)
	assert.Equal(t, 60, s.Images.Composite.Bounds().Dx())

	s, _, err = c.OnSwitchSide(s)
	require.NoError(t, err)
	assert.Equal(t, 50, s.Axis)
	// right side keeps columns [49, 80)
	assert.Equal(t, 62, s.Images.Composite.Bounds().Dx())

	released, redraw, err := c.OnDragRelease(s)
	require.NoError(t, err)
	assert.Equal(t, RedrawAll, redraw)
	assert.Equal(t, s.Images.Composite.Pix, released.Images.Composite.Pix)
}

func TestSetAxisClamps(t *testing.T) {
	c := newTestController(canvas.New(80, 60))
	s, redraw, err := c.OnSetAxis(c.Initial(), 500)
	require.NoError(t, err)
	assert.Equal(t, 80, s.Axis)
	assert.Equal(t, RedrawLine, redraw)
}

func TestLoadFailureKeepsState(t *testing.T) {
	c := newTestController(canvas.New(80, 60))
	s, _, err := c.OnLoad(c.Initial(), writeImage(t, "g.png", gradient(80, 60)))
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(bad, []byte("plain text"), 0o644))

	after, redraw, err := c.OnLoad(s, bad)
	require.Error(t, err)
	var loadErr *pipeline.LoadError
	assert.True(t, errors.As(err, &loadErr))
	assert.Equal(t, RedrawNone, redraw)
	assert.Equal(t, s, after)
}

func TestLoadReader(t *testing.T) {
	c := newTestController(canvas.New(80, 60))
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, gradient(40, 30), imaging.PNG))

	s, _, err := c.OnLoadReader(c.Initial(), &buf, "dialog.png")
	require.NoError(t, err)
	assert.Equal(t, "dialog.png", s.Images.Source.Name)
	assert.Equal(t, "dialog-symmetry.png", c.SuggestedName(s))
	assert.Equal(t, "symmetry.png", c.SuggestedName(c.Initial()))
}

func TestSaveBeforeLoadWritesNothing(t *testing.T) {
	c := newTestController(canvas.New(80, 60))
	path := filepath.Join(t.TempDir(), "out.png")

	_, err := c.OnSave(c.Initial(), path)
	assert.ErrorIs(t, err, pipeline.ErrNothingToSave)

	var buf bytes.Buffer
	assert.ErrorIs(t, c.OnSaveTo(c.Initial(), &buf, "out.png"), pipeline.ErrNothingToSave)
	assert.Zero(t, buf.Len())

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestSaveAddsExtension(t *testing.T) {
	c := newTestController(canvas.New(80, 60))
	s, _, err := c.OnLoad(c.Initial(), writeImage(t, "g.png", gradient(80, 60)))
	require.NoError(t, err)

	written, err := c.OnSave(s, filepath.Join(t.TempDir(), "result"))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(written))

	saved, err := imaging.Open(written)
	require.NoError(t, err)
	assert.Equal(t, s.Images.Composite.Bounds(), saved.Bounds())
}

func TestRedrawString(t *testing.T) {
	assert.Equal(t, "all", RedrawAll.String())
	assert.Equal(t, "redraw(9)", Redraw(9).String())
}

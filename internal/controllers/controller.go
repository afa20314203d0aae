// Package controllers holds the interaction state machine. Transitions are
// pure: they take the current state and return the next one together with
// what has to be redrawn.
package controllers

import (
	"fmt"
	"io"

	"symmetry-studio/internal/canvas"
	"symmetry-studio/internal/logger"
	"symmetry-studio/internal/mirror"
	"symmetry-studio/internal/models"
	"symmetry-studio/internal/pipeline"
)

// Redraw tells the view what changed.
type Redraw int

const (
	RedrawNone Redraw = iota
	// RedrawLine moves the axis line only.
	RedrawLine
	// RedrawAll repaints the composite and puts the line back on top.
	RedrawAll
)

func (r Redraw) String() string {
	switch r {
	case RedrawNone:
		return "none"
	case RedrawLine:
		return "line"
	case RedrawAll:
		return "all"
	default:
		return fmt.Sprintf("redraw(%d)", int(r))
	}
}

type Controller struct {
	geometry  canvas.Geometry
	engine    mirror.Engine
	loader    *pipeline.Loader
	saver     *pipeline.Saver
	timing    pipeline.TimingTracker
	log       logger.Logger
	extension string
}

type Options struct {
	Geometry canvas.Geometry
	Engine   mirror.Engine
	Loader   *pipeline.Loader
	Saver    *pipeline.Saver
	Timing   pipeline.TimingTracker
	Logger   logger.Logger
	// DefaultExtension is appended to save paths without one.
	DefaultExtension string
}

func NewController(opts Options) *Controller {
	c := &Controller{
		geometry:  opts.Geometry,
		engine:    opts.Engine,
		loader:    opts.Loader,
		saver:     opts.Saver,
		timing:    opts.Timing,
		log:       opts.Logger,
		extension: opts.DefaultExtension,
	}
	if c.log == nil {
		c.log = logger.NewNop()
	}
	if c.engine == nil {
		c.engine = mirror.Imaging{}
	}
	if c.loader == nil {
		c.loader = pipeline.NewLoader(c.log, c.timing)
	}
	if c.saver == nil {
		c.saver = pipeline.NewSaver(c.log, c.timing, pipeline.DefaultJPEGQuality)
	}
	if c.extension == "" {
		c.extension = ".png"
	}
	return c
}

func (c *Controller) Geometry() canvas.Geometry {
	return c.geometry
}

func (c *Controller) Engine() mirror.Engine {
	return c.engine
}

// Initial is the state before the first load.
func (c *Controller) Initial() models.AppState {
	return models.NewAppState(c.geometry.Width)
}

// OnDragMove moves the axis to follow the pointer at screen column x.
func (c *Controller) OnDragMove(s models.AppState, x int) (models.AppState, Redraw, error) {
	next := s
	next.Axis = c.geometry.AxisFromScreen(x, s.StartLeft)

	if next.Phase() == models.NoImage {
		return next, RedrawLine, nil
	}
	return c.refresh(s, next)
}

// OnDragRelease recomputes the composite for the current axis.
func (c *Controller) OnDragRelease(s models.AppState) (models.AppState, Redraw, error) {
	if s.Phase() == models.NoImage {
		return s, RedrawNone, nil
	}
	return c.refresh(s, s)
}

// OnSetAxis places the axis at an image column, clamped to the canvas.
func (c *Controller) OnSetAxis(s models.AppState, axis int) (models.AppState, Redraw, error) {
	next := s
	next.Axis = c.geometry.Clamp(axis)

	if next.Phase() == models.NoImage {
		return next, RedrawLine, nil
	}
	return c.refresh(s, next)
}

// OnSwitchSide keeps the other half. The axis is reflected so the line stays
// where it was drawn.
func (c *Controller) OnSwitchSide(s models.AppState) (models.AppState, Redraw, error) {
	next := s
	next.StartLeft = !s.StartLeft
	next.Axis = c.geometry.Reflect(s.Axis)

	if next.Phase() == models.NoImage {
		return next, RedrawLine, nil
	}
	return c.refresh(s, next)
}

// OnLoad replaces the source with the image at path. On failure s is
// returned unchanged with a *pipeline.LoadError.
func (c *Controller) OnLoad(s models.AppState, path string) (models.AppState, Redraw, error) {
	decoded, err := c.loader.LoadFromPath(path)
	if err != nil {
		return s, RedrawNone, err
	}
	return c.adopt(s, decoded, path)
}

// OnLoadReader is OnLoad for content delivered by a file dialog.
func (c *Controller) OnLoadReader(s models.AppState, r io.Reader, name string) (models.AppState, Redraw, error) {
	decoded, err := c.loader.LoadFromReader(r, name)
	if err != nil {
		return s, RedrawNone, err
	}
	return c.adopt(s, decoded, name)
}

// OnSave writes the composite to path, adding the default extension when
// path has none, and returns the path written.
func (c *Controller) OnSave(s models.AppState, path string) (string, error) {
	if !s.Images.HasComposite() {
		return "", pipeline.ErrNothingToSave
	}

	path = pipeline.WithDefaultExtension(path, c.extension)
	if err := c.saver.SaveToPath(path, s.Images.Composite); err != nil {
		return "", err
	}
	return path, nil
}

// OnSaveTo writes the composite to w, encoded according to name.
func (c *Controller) OnSaveTo(s models.AppState, w io.Writer, name string) error {
	if !s.Images.HasComposite() {
		return pipeline.ErrNothingToSave
	}
	return c.saver.SaveToWriter(w, name, s.Images.Composite)
}

// SuggestedName is the default file name offered by the save dialog.
func (c *Controller) SuggestedName(s models.AppState) string {
	if s.Images.Source == nil {
		return pipeline.DefaultFileName("")
	}
	return pipeline.DefaultFileName(s.Images.Source.Name)
}

func (c *Controller) adopt(s models.AppState, decoded *pipeline.Decoded, path string) (models.AppState, Redraw, error) {
	fitted, err := c.engine.Fit(decoded.Image, c.geometry)
	if err != nil {
		return s, RedrawNone, &pipeline.LoadError{Path: path, Err: fmt.Errorf("fit to canvas: %w", err)}
	}

	next := s
	next.Images = models.ImageStore{
		Source: models.NewImageData(fitted, decoded.Name, decoded.Format, decoded.Width, decoded.Height),
	}
	next.Axis = c.geometry.Center()

	next, redraw, err := c.refresh(s, next)
	if err != nil {
		return s, RedrawNone, &pipeline.LoadError{Path: path, Err: err}
	}

	c.log.Info("Controller", "source replaced", map[string]interface{}{
		"image_id": next.Images.Source.ID,
		"name":     decoded.Name,
		"axis":     next.Axis,
	})
	return next, redraw, nil
}

// refresh recomputes the composite of next. On failure prev is returned.
func (c *Controller) refresh(prev, next models.AppState) (models.AppState, Redraw, error) {
	if c.timing != nil {
		ctx := c.timing.StartTiming("compose")
		defer func() {
			c.log.Debug("Controller", "composite updated", map[string]interface{}{
				"axis":     next.Axis,
				"side":     next.Side(),
				"duration": c.timing.EndTiming(ctx).String(),
			})
		}()
	}

	composite, err := c.engine.Compose(next.Images.SourceImage(), next.Axis, next.StartLeft)
	if err != nil {
		return prev, RedrawNone, fmt.Errorf("%s compose: %w", c.engine.Name(), err)
	}

	next.Images.Composite = composite
	return next, RedrawAll, nil
}

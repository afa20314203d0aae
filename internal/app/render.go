package app

import (
	"fmt"

	"symmetry-studio/internal/config"
	"symmetry-studio/internal/controllers"
	"symmetry-studio/internal/logger"
)

// AxisCenter asks Render to leave the axis at the canvas center. Any
// negative axis does the same.
const AxisCenter = -1

type RenderOptions struct {
	Source      string
	Destination string
	// Axis is a canvas column, or AxisCenter.
	Axis int
	Side string
}

// Render runs load, axis placement and save without a window and returns the
// path written.
func Render(cfg *config.Config, log logger.Logger, opts RenderOptions) (string, error) {
	startLeft, err := ParseSide(opts.Side)
	if err != nil {
		return "", err
	}

	ctrl, _, err := NewController(cfg, log)
	if err != nil {
		return "", err
	}
	session := controllers.NewSession(ctrl, nil, log)

	if !startLeft {
		if err := session.Dispatch(controllers.SwitchSide{}); err != nil {
			return "", err
		}
	}
	if err := session.Dispatch(controllers.Load{Path: opts.Source}); err != nil {
		return "", err
	}
	if opts.Axis >= 0 {
		if err := session.Dispatch(controllers.SetAxis{Axis: opts.Axis}); err != nil {
			return "", err
		}
	}

	state := session.State()
	written, err := ctrl.OnSave(state, opts.Destination)
	if err != nil {
		return "", err
	}

	log.Info("Render", "composite written", map[string]interface{}{
		"source":      opts.Source,
		"destination": written,
		"axis":        state.Axis,
		"side":        state.Side(),
		"width":       state.Images.Composite.Bounds().Dx(),
	})
	return written, nil
}

// Describe summarises cfg for the startup log line.
func Describe(cfg *config.Config) string {
	return fmt.Sprintf("%dx%d canvas, %s engine", cfg.Canvas.Width, cfg.Canvas.Height, cfg.Engine)
}

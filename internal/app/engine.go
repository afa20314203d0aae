package app

import (
	"fmt"
	"strings"

	"symmetry-studio/internal/canvas"
	"symmetry-studio/internal/config"
	"symmetry-studio/internal/controllers"
	"symmetry-studio/internal/logger"
	"symmetry-studio/internal/mirror"
	"symmetry-studio/internal/opencv"
	"symmetry-studio/internal/pipeline"
	"symmetry-studio/internal/timing"
)

// timingSamples bounds the per-operation history kept by the tracker.
const timingSamples = 256

// SelectEngine returns the mirror engine registered under name.
func SelectEngine(name string, log logger.Logger) (mirror.Engine, error) {
	switch strings.ToLower(name) {
	case "", config.EngineImaging:
		return mirror.Imaging{}, nil
	case config.EngineOpenCV:
		return opencv.NewEngine(log), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}

// ParseSide maps "left" or "right" to the StartLeft flag.
func ParseSide(side string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(side)) {
	case "", "left", "l":
		return true, nil
	case "right", "r":
		return false, nil
	default:
		return false, fmt.Errorf("invalid side %q: want left or right", side)
	}
}

// NewController assembles the controller and its collaborators from cfg.
func NewController(cfg *config.Config, log logger.Logger) (*controllers.Controller, *timing.Tracker, error) {
	engine, err := SelectEngine(cfg.Engine, log)
	if err != nil {
		return nil, nil, err
	}

	tracker := timing.NewTracker(timingSamples)
	ctrl := controllers.NewController(controllers.Options{
		Geometry:         canvas.New(cfg.Canvas.Width, cfg.Canvas.Height),
		Engine:           engine,
		Loader:           pipeline.NewLoader(log, tracker),
		Saver:            pipeline.NewSaver(log, tracker, cfg.Save.JPEGQuality),
		Timing:           tracker,
		Logger:           log,
		DefaultExtension: cfg.Save.DefaultExtension,
	})

	log.Debug("Application", "controller ready", map[string]interface{}{
		"engine": engine.Name(),
		"width":  cfg.Canvas.Width,
		"height": cfg.Canvas.Height,
	})
	return ctrl, tracker, nil
}

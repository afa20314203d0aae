package controllers

import (
	"errors"
	"fmt"
	"sync"

	"symmetry-studio/internal/logger"
	"symmetry-studio/internal/models"
	"symmetry-studio/internal/pipeline"
)

// View is what a Session drives. All calls happen after the state update.
type View interface {
	Render(state models.AppState, redraw Redraw)
	ShowError(err error)
	SetStatus(message string)
}

// Session owns the application state and applies commands to it one at a
// time.
type Session struct {
	mu    sync.Mutex
	ctrl  *Controller
	state models.AppState
	view  View
	log   logger.Logger
}

func NewSession(ctrl *Controller, view View, log logger.Logger) *Session {
	if log == nil {
		log = logger.NewNop()
	}
	return &Session{
		ctrl:  ctrl,
		state: ctrl.Initial(),
		view:  view,
		log:   log,
	}
}

func (s *Session) Controller() *Controller {
	return s.ctrl
}

func (s *Session) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) SetView(view View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

// Dispatch applies cmd. Errors are logged and reported to the view, and
// returned for callers that need them; the state is left unchanged on error.
func (s *Session) Dispatch(cmd Command) error {
	s.mu.Lock()
	prev := s.state
	next, redraw, status, err := s.apply(prev, cmd)
	if err == nil {
		s.state = next
	}
	view := s.view
	s.mu.Unlock()

	if err != nil {
		s.report(view, cmd, err)
		return err
	}

	if view != nil {
		if redraw != RedrawNone {
			view.Render(next, redraw)
		}
		if status != "" {
			view.SetStatus(status)
		}
	}
	return nil
}

func (s *Session) apply(state models.AppState, cmd Command) (models.AppState, Redraw, string, error) {
	switch c := cmd.(type) {
	case DragMove:
		next, redraw, err := s.ctrl.OnDragMove(state, c.X)
		return next, redraw, "", err

	case DragRelease:
		next, redraw, err := s.ctrl.OnDragRelease(state)
		status := ""
		if err == nil && next.Phase() == models.ImageLoaded {
			status = fmt.Sprintf("Axis at column %d", next.Axis)
		}
		return next, redraw, status, err

	case SwitchSide:
		next, redraw, err := s.ctrl.OnSwitchSide(state)
		return next, redraw, fmt.Sprintf("Keeping the %s side", next.Side()), err

	case SetAxis:
		next, redraw, err := s.ctrl.OnSetAxis(state, c.Axis)
		return next, redraw, "", err

	case Load:
		next, redraw, err := s.ctrl.OnLoad(state, c.Path)
		return next, redraw, loadedStatus(next), err

	case LoadFrom:
		next, redraw, err := s.ctrl.OnLoadReader(state, c.Reader, c.Name)
		return next, redraw, loadedStatus(next), err

	case Save:
		path, err := s.ctrl.OnSave(state, c.Path)
		return state, RedrawNone, "Saved " + path, err

	case SaveTo:
		err := s.ctrl.OnSaveTo(state, c.Writer, c.Name)
		return state, RedrawNone, "Saved " + c.Name, err

	default:
		return state, RedrawNone, "", fmt.Errorf("unknown command %T", cmd)
	}
}

func (s *Session) report(view View, cmd Command, err error) {
	fields := map[string]interface{}{"command": commandName(cmd)}

	if errors.Is(err, pipeline.ErrNothingToSave) {
		s.log.Warning("Session", err.Error(), fields)
		if view != nil {
			view.SetStatus("Nothing to save yet, load an image first")
		}
		return
	}

	s.log.Error("Session", err, fields)
	if view == nil {
		return
	}

	var loadErr *pipeline.LoadError
	var saveErr *pipeline.SaveError
	switch {
	case errors.As(err, &loadErr):
		view.SetStatus("Could not load " + loadErr.Path)
	case errors.As(err, &saveErr):
		view.SetStatus("Could not save " + saveErr.Path)
	}
	view.ShowError(err)
}

func loadedStatus(s models.AppState) string {
	src := s.Images.Source
	if src == nil {
		return ""
	}
	return fmt.Sprintf("Loaded %s (%dx%d)", src.Name, src.OriginalWidth, src.OriginalHeight)
}

func commandName(cmd Command) string {
	if cmd == nil {
		return "nil"
	}
	return cmd.commandName()
}

// Package gui wires the Fyne window to a controllers.Session.
package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"symmetry-studio/internal/canvas"
	"symmetry-studio/internal/controllers"
	"symmetry-studio/internal/gui/components"
	"symmetry-studio/internal/logger"
	"symmetry-studio/internal/models"
	"symmetry-studio/internal/pipeline"
)

type Options struct {
	LineColor color.Color
	LineWidth float32
}

// Manager is the controllers.View of the main window.
type Manager struct {
	window     fyne.Window
	session    *controllers.Session
	geometry   canvas.Geometry
	logger     logger.Logger
	isShutdown bool

	mirrorCanvas *components.MirrorCanvas
	toolbar      *components.Toolbar
}

var _ controllers.View = (*Manager)(nil)

// NewManager builds the window content and attaches itself as the view of
// session.
func NewManager(window fyne.Window, session *controllers.Session, opts Options, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}

	g := session.Controller().Geometry()
	m := &Manager{
		window:       window,
		session:      session,
		geometry:     g,
		logger:       log,
		mirrorCanvas: components.NewMirrorCanvas(g.Width, g.Height, opts.LineColor, opts.LineWidth),
		toolbar:      components.NewToolbar(),
	}

	m.mirrorCanvas.OnDragged = func(x int) {
		m.session.Dispatch(controllers.DragMove{X: x})
	}
	m.mirrorCanvas.OnDragEnd = func() {
		m.session.Dispatch(controllers.DragRelease{})
	}
	m.toolbar.SetImageLoadHandler(m.showLoadDialog)
	m.toolbar.SetImageSaveHandler(m.showSaveDialog)
	m.toolbar.SetSwitchSideHandler(func() {
		m.session.Dispatch(controllers.SwitchSide{})
	})

	session.SetView(m)

	state := session.State()
	m.mirrorCanvas.SetLineX(g.LineX(state.Axis, state.StartLeft))

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"canvas_width":  g.Width,
		"canvas_height": g.Height,
		"engine":        session.Controller().Engine().Name(),
	})

	return m
}

func (m *Manager) GetMainContainer() *fyne.Container {
	return container.NewVBox(
		container.NewCenter(m.mirrorCanvas),
		m.toolbar.GetContainer(),
	)
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) Canvas() *components.MirrorCanvas {
	return m.mirrorCanvas
}

func (m *Manager) Toolbar() *components.Toolbar {
	return m.toolbar
}

func (m *Manager) Render(state models.AppState, redraw controllers.Redraw) {
	lineX := m.geometry.LineX(state.Axis, state.StartLeft)

	fyne.Do(func() {
		if redraw == controllers.RedrawAll {
			if state.Images.Composite != nil {
				m.mirrorCanvas.SetImage(m.geometry.Viewport(state.Images.Composite))
			} else {
				m.mirrorCanvas.SetImage(nil)
			}
		}
		m.mirrorCanvas.SetLineX(lineX)
	})
}

func (m *Manager) SetStatus(status string) {
	fyne.Do(func() {
		m.toolbar.SetStatus(status)
	})
}

func (m *Manager) ShowError(err error) {
	fyne.Do(func() {
		dialog.ShowError(err, m.window)
	})
}

func (m *Manager) showLoadDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			m.logger.Error("GUIManager", err, map[string]interface{}{"dialog": "open"})
			m.ShowError(err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		m.session.Dispatch(controllers.LoadFrom{Reader: reader, Name: reader.URI().Name()})
	}, m.window)

	d.SetFilter(storage.NewExtensionFileFilter(pipeline.OpenExtensions))
	d.Show()
}

func (m *Manager) showSaveDialog() {
	state := m.session.State()
	if !state.Images.HasComposite() {
		m.session.Dispatch(controllers.SaveTo{})
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			m.logger.Error("GUIManager", err, map[string]interface{}{"dialog": "save"})
			m.ShowError(err)
			return
		}
		if writer == nil {
			return
		}

		m.session.Dispatch(controllers.SaveTo{Writer: writer, Name: writer.URI().Name()})
	}, m.window)

	d.SetFileName(m.session.Controller().SuggestedName(state))
	d.Show()
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)
}

// Package app assembles the window, the session and their collaborators from
// a configuration.
package app

import (
	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"symmetry-studio/internal/config"
	"symmetry-studio/internal/controllers"
	"symmetry-studio/internal/gui"
	"symmetry-studio/internal/logger"
	"symmetry-studio/internal/shutdown"
)

const (
	AppName    = "Symmetry Studio"
	AppID      = "io.symmetrystudio.generator"
	AppVersion = "1.0.0"
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	guiManager *gui.Manager
	session    *controllers.Session
	logger     logger.Logger
	lifecycle  *Lifecycle
	shutdown   *shutdown.Manager
}

func NewApplication(cfg *config.Config, log logger.Logger) (*Application, error) {
	return newApplication(fyneapp.NewWithID(AppID), cfg, log)
}

func newApplication(fyneApp fyne.App, cfg *config.Config, log logger.Logger) (*Application, error) {
	ctrl, tracker, err := NewController(cfg, log)
	if err != nil {
		return nil, err
	}

	window := fyneApp.NewWindow(cfg.Window.Title)
	window.SetFixedSize(true)
	window.SetMaster()

	session := controllers.NewSession(ctrl, nil, log)
	guiManager := gui.NewManager(window, session, gui.Options{
		LineColor: cfg.LineColor(),
		LineWidth: cfg.Line.Width,
	}, log)

	shutdownMgr := shutdown.NewManager(log)
	lifecycle := NewLifecycle(guiManager, tracker, log)
	shutdownMgr.Register(shutdown.Func(func() {
		fyne.Do(fyneApp.Quit)
	}))
	shutdownMgr.Register(lifecycle)

	log.Info("Application", "starting application", map[string]interface{}{
		"version": AppVersion,
		"setup":   Describe(cfg),
	})

	return &Application{
		fyneApp:    fyneApp,
		window:     window,
		guiManager: guiManager,
		session:    session,
		logger:     log,
		lifecycle:  lifecycle,
		shutdown:   shutdownMgr,
	}, nil
}

func (a *Application) Session() *controllers.Session {
	return a.session
}

func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	a.window.SetContent(a.guiManager.GetMainContainer())
	a.window.Show()
	a.shutdown.Listen()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}

package app

import (
	"sync"

	"symmetry-studio/internal/gui"
	"symmetry-studio/internal/logger"
	"symmetry-studio/internal/timing"
)

var trackedOperations = []string{"load", "compose", "save"}

// Lifecycle stops the GUI manager and reports operation timings, once.
type Lifecycle struct {
	guiManager *gui.Manager
	timing     *timing.Tracker
	logger     logger.Logger
	once       sync.Once
}

func NewLifecycle(gm *gui.Manager, tracker *timing.Tracker, log logger.Logger) *Lifecycle {
	return &Lifecycle{
		guiManager: gm,
		timing:     tracker,
		logger:     log,
	}
}

func (l *Lifecycle) Shutdown() {
	l.once.Do(func() {
		l.logger.Info("Lifecycle", "shutdown sequence initiated", nil)

		if l.guiManager != nil {
			l.guiManager.Shutdown()
		}

		if l.timing != nil {
			fields := make(map[string]interface{}, len(trackedOperations))
			for _, op := range trackedOperations {
				if n := len(l.timing.GetTimings(op)); n > 0 {
					fields[op+"_count"] = n
					fields[op+"_avg"] = l.timing.GetAverageTime(op).String()
				}
			}
			l.logger.Debug("Lifecycle", "operation timings", fields)
		}

		l.logger.Info("Lifecycle", "shutdown sequence completed", nil)
	})
}

// Package pipeline decodes images from disk or dialogs and encodes
// composites back out.
package pipeline

import (
	"context"
	"time"
)

type TimingTracker interface {
	StartTiming(operation string) context.Context
	EndTiming(ctx context.Context) time.Duration
}

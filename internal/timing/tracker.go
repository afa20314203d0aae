// Package timing records how long named operations take.
package timing

import (
	"context"
	"sync"
	"time"
)

type contextKey struct{}

type timingInfo struct {
	operation string
	start     time.Time
}

type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	enabled bool
	limit   int
}

// NewTracker keeps at most limit samples per operation; limit <= 0 keeps all.
func NewTracker(limit int) *Tracker {
	return &Tracker{
		timings: make(map[string][]time.Duration),
		enabled: true,
		limit:   limit,
	}
}

func (tt *Tracker) StartTiming(operation string) context.Context {
	return tt.StartTimingContext(context.Background(), operation)
}

func (tt *Tracker) StartTimingContext(parent context.Context, operation string) context.Context {
	tt.mu.RLock()
	enabled := tt.enabled
	tt.mu.RUnlock()
	if !enabled {
		return parent
	}

	return context.WithValue(parent, contextKey{}, timingInfo{
		operation: operation,
		start:     time.Now(),
	})
}

// EndTiming records the elapsed time of the operation started in ctx and
// returns it. A context without a started timing yields zero.
func (tt *Tracker) EndTiming(ctx context.Context) time.Duration {
	info, ok := ctx.Value(contextKey{}).(timingInfo)
	if !ok {
		return 0
	}

	duration := time.Since(info.start)

	tt.mu.Lock()
	defer tt.mu.Unlock()

	samples := append(tt.timings[info.operation], duration)
	if tt.limit > 0 && len(samples) > tt.limit {
		samples = samples[len(samples)-tt.limit:]
	}
	tt.timings[info.operation] = samples

	return duration
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}

	return total / time.Duration(len(timings))
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}

package timing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecords(t *testing.T) {
	tt := NewTracker(0)

	ctx := tt.StartTiming("compose")
	time.Sleep(time.Millisecond)
	d := tt.EndTiming(ctx)

	assert.GreaterOrEqual(t, d, time.Millisecond)
	require.Len(t, tt.GetTimings("compose"), 1)
	assert.Equal(t, d, tt.GetAverageTime("compose"))
	assert.Nil(t, tt.GetTimings("load"))
	assert.Zero(t, tt.GetAverageTime("load"))
}

func TestTrackerLimit(t *testing.T) {
	tt := NewTracker(3)
	for i := 0; i < 5; i++ {
		tt.EndTiming(tt.StartTiming("drag"))
	}
	assert.Len(t, tt.GetTimings("drag"), 3)
}

func TestTrackerDisabledAndReset(t *testing.T) {
	tt := NewTracker(0)
	tt.SetEnabled(false)
	assert.Zero(t, tt.EndTiming(tt.StartTiming("save")))
	assert.Nil(t, tt.GetTimings("save"))

	tt.SetEnabled(true)
	tt.EndTiming(tt.StartTiming("save"))
	tt.EndTiming(tt.StartTiming("load"))
	tt.Reset("save")
	assert.Nil(t, tt.GetTimings("save"))
	assert.Len(t, tt.GetTimings("load"), 1)

	tt.Reset("")
	assert.Nil(t, tt.GetTimings("load"))
	assert.Zero(t, tt.EndTiming(context.Background()))
}

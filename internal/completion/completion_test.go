package completion

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bnema/aiprobe-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSampler struct {
	snapshots []Snapshot
	calls     int
}

func (p *scriptedSampler) sample(context.Context) (Snapshot, error) {
	idx := p.calls
	p.calls++
	if idx >= len(p.snapshots) {
		return p.snapshots[len(p.snapshots)-1], nil
	}
	return p.snapshots[idx], nil
}

func lengths(ns ...int) []Snapshot {
	out := make([]Snapshot, 0, len(ns))
	for _, n := range ns {
		out = append(out, Snapshot{Text: strings.Repeat("x", n)})
	}
	return out
}

func TestWaitCompletesExactlyAfterThresholdRepeats(t *testing.T) {
	clock := mocks.NewManualClock(time.Unix(0, 0))
	sampler := &scriptedSampler{snapshots: lengths(0, 5, 5, 5, 5, 5)}

	outcome, err := Wait(context.Background(), clock, Config{
		Interval:  500 * time.Millisecond,
		Timeout:   time.Minute,
		Threshold: 3,
	}, sampler.sample)
	require.NoError(t, err)

	assert.Equal(t, "xxxxx", outcome.Text)
	assert.False(t, outcome.TimedOut)
	assert.Equal(t, 5, sampler.calls)
	assert.Equal(t, 5, outcome.Polls)
}

func TestWaitGeneratingAffordanceOutranksStableText(t *testing.T) {
	clock := mocks.NewManualClock(time.Unix(0, 0))
	sampler := &scriptedSampler{snapshots: []Snapshot{
		{Text: "abc"},
		{Text: "abc"},
		{Text: "abc", Generating: true},
		{Text: "abc"},
		{Text: "abc"},
	}}

	outcome, err := Wait(context.Background(), clock, Config{Interval: time.Second, Timeout: time.Minute, Threshold: 2}, sampler.sample)
	require.NoError(t, err)

	assert.Equal(t, "abc", outcome.Text)
	assert.Equal(t, 5, sampler.calls)
}

func TestWaitTimeoutReturnsBestTextWithMarker(t *testing.T) {
	clock := mocks.NewManualClock(time.Unix(0, 0))
	sampler := &scriptedSampler{snapshots: lengths(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)}

	outcome, err := Wait(context.Background(), clock, Config{Interval: time.Second, Timeout: 5 * time.Second, Threshold: 3}, sampler.sample)
	require.NoError(t, err)

	assert.True(t, outcome.TimedOut)
	assert.Equal(t, strings.Repeat("x", 6), outcome.Text)
	assert.Equal(t, 6, sampler.calls)
}

func TestWaitProbeErrorBreaksStreakButKeepsText(t *testing.T) {
	clock := mocks.NewManualClock(time.Unix(0, 0))
	calls := 0
	sample := func(context.Context) (Snapshot, error) {
		calls++
		if calls == 3 {
			return Snapshot{}, errors.New("container detached")
		}
		return Snapshot{Text: "answer"}, nil
	}

	outcome, err := Wait(context.Background(), clock, Config{Interval: time.Second, Timeout: time.Minute, Threshold: 2}, sample)
	require.NoError(t, err)

	assert.Equal(t, "answer", outcome.Text)
	assert.Equal(t, 5, calls)
}

func TestWaitStopsWhenContextCancelled(t *testing.T) {
	clock := mocks.NewManualClock(time.Unix(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	sample := func(context.Context) (Snapshot, error) {
		cancel()
		return Snapshot{Text: "partial"}, nil
	}

	outcome, err := Wait(ctx, clock, Config{Interval: time.Second, Timeout: time.Minute, Threshold: 3}, sample)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, outcome.TimedOut)
	assert.Equal(t, "partial", outcome.Text)
}

func TestDetectorEmptyTextNeverStabilises(t *testing.T) {
	d := NewDetector(1)
	assert.False(t, d.Observe("", false))
	assert.False(t, d.Observe("", false))
	assert.Equal(t, 0, d.StableCount())
}

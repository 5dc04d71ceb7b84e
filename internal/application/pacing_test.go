package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/aiprobe-cli/internal/ports/mocks"
)

func TestPacerStaysWithinBounds(t *testing.T) {
	t.Parallel()

	p := NewPacer(2*time.Second, 7*time.Second, mocks.NewManualClock(testStart))
	for i := 0; i < 200; i++ {
		d := p.Next()
		assert.GreaterOrEqual(t, d, 2*time.Second)
		assert.LessOrEqual(t, d, 7*time.Second)
	}
}

func TestPacerUsesJitterAndClock(t *testing.T) {
	t.Parallel()

	clock := mocks.NewManualClock(testStart)
	p := NewPacer(2*time.Second, 7*time.Second, clock)
	p.jitter = func(n int64) int64 {
		assert.Equal(t, int64(5*time.Second)+1, n)
		return int64(1500 * time.Millisecond)
	}

	require.NoError(t, p.Wait(context.Background()))
	assert.Equal(t, []time.Duration{3500 * time.Millisecond}, clock.Sleeps())
}

func TestPacerNormalizesBounds(t *testing.T) {
	t.Parallel()

	p := NewPacer(-time.Second, -2*time.Second, nil)
	assert.Equal(t, time.Duration(0), p.Next())

	fixed := NewPacer(3*time.Second, time.Second, nil)
	assert.Equal(t, 3*time.Second, fixed.Next())
}

package application

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/bnema/aiprobe-cli/internal/ports"
)

const (
	DefaultPaceMin = 2 * time.Second
	DefaultPaceMax = 7 * time.Second
)

// Pacer inserts a jittered, human-paced delay between queries.
type Pacer struct {
	min    time.Duration
	max    time.Duration
	clock  ports.Clock
	jitter func(n int64) int64
}

func NewPacer(minDelay, maxDelay time.Duration, clock ports.Clock) *Pacer {
	if minDelay < 0 {
		minDelay = 0
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Pacer{min: minDelay, max: maxDelay, clock: clock, jitter: rand.Int64N}
}

// Next returns a delay in [min, max].
func (p *Pacer) Next() time.Duration {
	span := int64(p.max - p.min)
	if span <= 0 {
		return p.min
	}
	return p.min + time.Duration(p.jitter(span+1))
}

func (p *Pacer) Wait(ctx context.Context) error {
	return p.clock.Sleep(ctx, p.Next())
}

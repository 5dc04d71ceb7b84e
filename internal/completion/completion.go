// Package completion decides when a streamed answer has finished generating.
//
// No target site exposes a "done" event, so completion is inferred from the
// response container's text staying unchanged for a number of consecutive polls.
// A visible in-progress affordance always counts as a non-stable poll.
package completion

import (
	"context"
	"time"

	"github.com/bnema/aiprobe-cli/internal/ports"
)

const (
	DefaultInterval  = time.Second
	DefaultThreshold = 5
)

type Detector struct {
	threshold   int
	lastText    string
	stableCount int
	polls       int
}

func NewDetector(threshold int) *Detector {
	if threshold < 1 {
		threshold = 1
	}
	return &Detector{threshold: threshold}
}

// Observe records one poll and reports whether the stability threshold is reached.
func (d *Detector) Observe(text string, generating bool) bool {
	d.polls++

	if generating {
		d.stableCount = 0
		if text != d.lastText {
			d.lastText = text
		}
		return false
	}

	if text != "" && text == d.lastText {
		d.stableCount++
	} else {
		d.stableCount = 0
		d.lastText = text
	}

	return d.stableCount >= d.threshold
}

// Interrupt records a poll that produced no reading; it breaks the streak but keeps the last text.
func (d *Detector) Interrupt() {
	d.polls++
	d.stableCount = 0
}

func (d *Detector) Text() string     { return d.lastText }
func (d *Detector) StableCount() int { return d.stableCount }
func (d *Detector) Polls() int       { return d.polls }

type Snapshot struct {
	Text       string
	Generating bool
}

// Sampler reads the response container once.
type Sampler func(ctx context.Context) (Snapshot, error)

type Config struct {
	Interval  time.Duration
	Timeout   time.Duration
	Threshold int
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.Threshold <= 0 {
		c.Threshold = DefaultThreshold
	}
	return c
}

type Outcome struct {
	Text     string
	TimedOut bool
	Polls    int
}

// Wait polls until the text is stable or the timeout elapses. On timeout it returns the
// best text seen with TimedOut set; the error is non-nil only when ctx ends the wait.
func Wait(ctx context.Context, clock ports.Clock, cfg Config, sample Sampler) (Outcome, error) {
	cfg = cfg.withDefaults()
	detector := NewDetector(cfg.Threshold)
	deadline := clock.Now().Add(cfg.Timeout)

	for {
		snapshot, err := sample(ctx)
		if err != nil {
			detector.Interrupt()
		} else if detector.Observe(snapshot.Text, snapshot.Generating) {
			return Outcome{Text: detector.Text(), Polls: detector.Polls()}, nil
		}

		if !clock.Now().Before(deadline) {
			return Outcome{Text: detector.Text(), TimedOut: true, Polls: detector.Polls()}, nil
		}

		if err := clock.Sleep(ctx, cfg.Interval); err != nil {
			return Outcome{Text: detector.Text(), TimedOut: true, Polls: detector.Polls()}, err
		}
	}
}

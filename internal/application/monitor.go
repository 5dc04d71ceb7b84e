package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

const meterName = "github.com/bnema/aiprobe-cli/internal/application"

type Counts struct {
	Total         int
	Succeeded     int
	Failed        int
	TimedOut      int
	LoginFailures int
	// Attempts sums the attempts behind every final result, first tries included.
	Attempts int
	Duration time.Duration
}

// Retries is the number of attempts beyond the first one per result.
func (c Counts) Retries() int {
	return max(c.Attempts-c.Total, 0)
}

func (c Counts) AvgDuration() time.Duration {
	if c.Total == 0 {
		return 0
	}
	return c.Duration / time.Duration(c.Total)
}

func (c *Counts) add(result domain.QueryResult) {
	c.Total++
	c.Attempts += max(result.Attempts, 1)
	c.Duration += result.Duration
	if result.Succeeded() {
		c.Succeeded++
	} else {
		c.Failed++
	}
	if result.TimedOut {
		c.TimedOut++
	}
	if result.ErrorKind == domain.ErrorKindLoginFailure {
		c.LoginFailures++
	}
}

type PlatformCounts struct {
	Platform domain.PlatformID
	Counts
}

type MonitorSnapshot struct {
	Counts
	Platforms []PlatformCounts
}

// Monitor keeps in-process counters of final query results and mirrors them to otel.
type Monitor struct {
	mu          sync.Mutex
	totals      Counts
	perPlatform map[domain.PlatformID]*Counts
	results     metric.Int64Counter
	retries     metric.Int64Counter
	duration    metric.Float64Histogram
}

type MonitorOption func(*monitorConfig)

type monitorConfig struct {
	meter metric.Meter
}

// WithMeterProvider records to mp instead of the global otel provider.
func WithMeterProvider(mp metric.MeterProvider) MonitorOption {
	return func(c *monitorConfig) {
		if mp != nil {
			c.meter = mp.Meter(meterName)
		}
	}
}

func NewMonitor(opts ...MonitorOption) (*Monitor, error) {
	cfg := monitorConfig{meter: otel.Meter(meterName)}
	for _, opt := range opts {
		opt(&cfg)
	}
	meter := cfg.meter

	results, err := meter.Int64Counter(
		"aiprobe_query_results_total",
		metric.WithDescription("Final query results by platform, status and error kind."),
	)
	if err != nil {
		return nil, err
	}
	retries, err := meter.Int64Counter(
		"aiprobe_query_retries_total",
		metric.WithDescription("Attempts beyond the first one, by platform."),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram(
		"aiprobe_query_duration_seconds",
		metric.WithDescription("Wall time of final query results, retries included."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Monitor{
		perPlatform: map[domain.PlatformID]*Counts{},
		results:     results,
		retries:     retries,
		duration:    duration,
	}, nil
}

func (m *Monitor) Record(ctx context.Context, result domain.QueryResult) {
	m.mu.Lock()
	m.totals.add(result)
	counts, ok := m.perPlatform[result.Platform]
	if !ok {
		counts = &Counts{}
		m.perPlatform[result.Platform] = counts
	}
	counts.add(result)
	m.mu.Unlock()

	attrs := metric.WithAttributes(
		attribute.String("platform", string(result.Platform)),
		attribute.String("status", string(result.Status)),
		attribute.String("error_kind", string(result.ErrorKind)),
	)
	m.results.Add(ctx, 1, attrs)
	m.duration.Record(ctx, result.Duration.Seconds(), attrs)
	if retries := result.Attempts - 1; retries > 0 {
		m.retries.Add(ctx, int64(retries), metric.WithAttributes(attribute.String("platform", string(result.Platform))))
	}
}

func (m *Monitor) Snapshot() MonitorSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := MonitorSnapshot{Counts: m.totals}
	for platform, counts := range m.perPlatform {
		snapshot.Platforms = append(snapshot.Platforms, PlatformCounts{Platform: platform, Counts: *counts})
	}
	sort.Slice(snapshot.Platforms, func(i, j int) bool {
		return snapshot.Platforms[i].Platform < snapshot.Platforms[j].Platform
	})
	return snapshot
}

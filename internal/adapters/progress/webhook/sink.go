// Package webhook posts batch progress events to an HTTP endpoint as JSON.
package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

const defaultTimeout = 10 * time.Second

type Sink struct {
	url    string
	client *resty.Client
}

var _ ports.ProgressSink = (*Sink)(nil)

type Option func(*Sink)

func WithClient(client *resty.Client) Option {
	return func(s *Sink) {
		if client != nil {
			s.client = client
		}
	}
}

func WithHeader(key, value string) Option {
	return func(s *Sink) {
		s.client.SetHeader(key, value)
	}
}

func NewSink(url string, opts ...Option) *Sink {
	client := resty.New()
	client.SetTimeout(defaultTimeout)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(500 * time.Millisecond)
	client.SetHeader("user-agent", "aiprobe-cli")

	s := &Sink{url: url, client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type event struct {
	Platform          domain.PlatformID        `json:"platform"`
	Index             int                      `json:"index"`
	Total             int                      `json:"total"`
	Query             string                   `json:"query"`
	Tag               string                   `json:"tag,omitempty"`
	Status            domain.QueryStatus       `json:"status"`
	ErrorKind         domain.ErrorKind         `json:"error_kind,omitempty"`
	TimedOut          bool                     `json:"timed_out,omitempty"`
	Attempts          int                      `json:"attempts"`
	DurationMS        int64                    `json:"duration_ms"`
	ResponseLength    int                      `json:"response_length"`
	References        int                      `json:"references"`
	ReferencesOutcome domain.ReferencesOutcome `json:"references_outcome,omitempty"`
	Timestamp         time.Time                `json:"timestamp"`
}

func (s *Sink) Notify(ctx context.Context, progress domain.Progress) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	result := progress.Result
	res, err := s.client.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(event{
			Platform:          progress.Platform,
			Index:             progress.Index,
			Total:             progress.Total,
			Query:             result.Query,
			Tag:               result.Tag,
			Status:            result.Status,
			ErrorKind:         result.ErrorKind,
			TimedOut:          result.TimedOut,
			Attempts:          result.Attempts,
			DurationMS:        result.Duration.Milliseconds(),
			ResponseLength:    len(result.Response),
			References:        len(result.References),
			ReferencesOutcome: result.ReferencesOutcome,
			Timestamp:         result.Timestamp.UTC(),
		}).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("post progress to webhook: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("post progress to webhook: unexpected status %s", res.Status())
	}

	return nil
}

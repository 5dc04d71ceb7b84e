package domain

import "time"

type QueryStatus string

const (
	QueryStatusSuccess QueryStatus = "success"
	QueryStatusFailed  QueryStatus = "failed"
)

// Query is one line of batch input before it is bound to a platform.
type Query struct {
	Text string
	Tag  string
}

type QueryTask struct {
	Platform    PlatformID
	Query       string
	Tag         string
	RetryBudget int
}

type Reference struct {
	Position int    `json:"position"`
	Domain   string `json:"domain"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

type ReferencesOutcome string

const (
	ReferencesFound  ReferencesOutcome = "found"
	ReferencesNone   ReferencesOutcome = "none"
	ReferencesFailed ReferencesOutcome = "failed"
)

type ExtractionResult struct {
	Text              string
	// Model is the model label the page reports for the answer, when it exposes one.
	Model             string
	Markdown          string
	References        []Reference
	SearchResults     []Reference
	ReferencesOutcome ReferencesOutcome
	ReferencesError   string
	TimedOut          bool
}

type QueryResult struct {
	Platform          PlatformID        `json:"platform"`
	Query             string            `json:"query"`
	Tag               string            `json:"tag,omitempty"`
	Model             string            `json:"model,omitempty"`
	Status            QueryStatus       `json:"status"`
	Response          string            `json:"response"`
	Markdown          string            `json:"markdown,omitempty"`
	References        []Reference       `json:"references"`
	SearchResults     []Reference       `json:"search_results"`
	ReferencesOutcome ReferencesOutcome `json:"references_outcome,omitempty"`
	Duration          time.Duration     `json:"duration"`
	Timestamp         time.Time         `json:"timestamp"`
	Error             string            `json:"error,omitempty"`
	ErrorKind         ErrorKind         `json:"error_kind,omitempty"`
	TimedOut          bool              `json:"timed_out,omitempty"`
	Attempts          int               `json:"attempts"`
}

func (r QueryResult) Succeeded() bool {
	return r.Status == QueryStatusSuccess
}

// MarkFailed downgrades the result and records the cause.
func (r *QueryResult) MarkFailed(err error) {
	r.Status = QueryStatusFailed
	if err != nil {
		r.Error = err.Error()
		r.ErrorKind = KindOf(err)
	}
}

type Progress struct {
	Platform PlatformID
	Index    int
	Total    int
	Result   QueryResult
}

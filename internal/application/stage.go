package application

import (
	"context"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

// Stage is the step a query is at inside RunQuery or Login.
type Stage string

const (
	StageOpening    Stage = "opening"
	StageSigningIn  Stage = "signing in"
	StageSending    Stage = "sending"
	StageWaiting    Stage = "waiting for answer"
	StageExtracting Stage = "reading answer"
)

// StageFunc is called from the goroutine running the query, once per stage entered.
type StageFunc func(platform domain.PlatformID, stage Stage)

type stageKey struct{}

// WithStageFunc returns a context whose queries report their stages to fn.
func WithStageFunc(ctx context.Context, fn StageFunc) context.Context {
	return context.WithValue(ctx, stageKey{}, fn)
}

func reportStage(ctx context.Context, platform domain.PlatformID, stage Stage) {
	if fn, ok := ctx.Value(stageKey{}).(StageFunc); ok && fn != nil {
		fn(platform, stage)
	}
}

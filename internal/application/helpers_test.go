package application

import (
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"
)

var testStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mockAnyContext() interface{} {
	return mock.Anything
}

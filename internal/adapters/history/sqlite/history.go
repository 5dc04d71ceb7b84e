// Package sqlite records every final query result in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

const historyDirMode = 0o700

const schema = `
CREATE TABLE IF NOT EXISTS results (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id          TEXT    NOT NULL,
	platform        TEXT    NOT NULL,
	query           TEXT    NOT NULL,
	tag             TEXT    NOT NULL DEFAULT '',
	model           TEXT    NOT NULL DEFAULT '',
	status          TEXT    NOT NULL,
	error_kind      TEXT    NOT NULL DEFAULT '',
	timed_out       INTEGER NOT NULL DEFAULT 0,
	attempts        INTEGER NOT NULL,
	duration_ms     INTEGER NOT NULL,
	response_len    INTEGER NOT NULL,
	reference_count INTEGER NOT NULL,
	recorded_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_platform ON results(platform);
`

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=10000",
	"PRAGMA synchronous=NORMAL",
}

type History struct {
	db *sql.DB
}

var _ ports.ResultHistory = (*History)(nil)

// Open creates the database at path if needed and applies the schema.
func Open(ctx context.Context, path string) (*History, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), historyDirMode); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// ":memory:" databases live per connection.
	db.SetMaxOpenConns(1)

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set history pragma: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &History{db: db}, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) Append(ctx context.Context, runID string, result domain.QueryResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recordedAt := result.Timestamp
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err := h.db.ExecContext(ctx, `
INSERT INTO results (run_id, platform, query, tag, model, status, error_kind, timed_out,
	attempts, duration_ms, response_len, reference_count, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		string(result.Platform),
		result.Query,
		result.Tag,
		result.Model,
		string(result.Status),
		string(result.ErrorKind),
		boolToInt(result.TimedOut),
		result.Attempts,
		result.Duration.Milliseconds(),
		len(result.Response),
		len(result.References),
		recordedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("append history for %s: %w", result.Platform, err)
	}

	return nil
}

// Stats aggregates the recorded results per platform, ordered by platform id.
func (h *History) Stats(ctx context.Context) ([]ports.HistoryStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := h.db.QueryContext(ctx, `
SELECT platform,
	COUNT(*),
	SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
	SUM(CASE WHEN status = ? THEN 0 ELSE 1 END),
	SUM(timed_out),
	SUM(CASE WHEN error_kind = ? THEN 1 ELSE 0 END),
	AVG(duration_ms),
	AVG(reference_count),
	AVG(attempts),
	MAX(recorded_at)
FROM results
GROUP BY platform
ORDER BY platform`,
		string(domain.QueryStatusSuccess),
		string(domain.QueryStatusSuccess),
		string(domain.ErrorKindLoginFailure),
	)
	if err != nil {
		return nil, fmt.Errorf("query history stats: %w", err)
	}
	defer rows.Close()

	var stats []ports.HistoryStats
	for rows.Next() {
		var (
			entry      ports.HistoryStats
			platform   string
			avgMillis  float64
			lastMillis int64
		)
		if err := rows.Scan(
			&platform,
			&entry.Total,
			&entry.Succeeded,
			&entry.Failed,
			&entry.TimedOut,
			&entry.LoginFailures,
			&avgMillis,
			&entry.AvgReferences,
			&entry.AvgAttemptsUsed,
			&lastMillis,
		); err != nil {
			return nil, fmt.Errorf("scan history stats: %w", err)
		}
		entry.Platform = domain.PlatformID(platform)
		entry.AvgDuration = time.Duration(avgMillis * float64(time.Millisecond))
		entry.LastRunAt = time.UnixMilli(lastMillis).UTC()
		stats = append(stats, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history stats: %w", err)
	}

	return stats, nil
}

// Prune removes results recorded before cutoff and reports how many were dropped.
func (h *History) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := h.db.ExecContext(ctx, `DELETE FROM results WHERE recorded_at < ?`, cutoff.UTC().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

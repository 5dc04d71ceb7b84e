package csv

import (
	"context"
	stdcsv "encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

func TestExporterWritesTableAndSidecar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runAt := time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC)
	results := []domain.QueryResult{
		{
			Platform:  "perplexity",
			Query:     "best trail shoes, 2026",
			Tag:       "retail",
			Model:     "sonar",
			Status:    domain.QueryStatusSuccess,
			Response:  "Line one\n\"quoted\" line two",
			Timestamp: runAt.Add(time.Minute),
			References: []domain.Reference{
				{Position: 1, Domain: "runnersworld.com", Title: "Best shoes", URL: "https://www.runnersworld.com/best"},
			},
			Attempts: 1,
		},
		{
			Platform:  "perplexity",
			Query:     "empty",
			Status:    domain.QueryStatusFailed,
			Timestamp: runAt.Add(2 * time.Minute),
			Error:     "login failed",
			ErrorKind: domain.ErrorKindLoginFailure,
			Attempts:  3,
		},
	}

	path, err := NewExporter(dir).Export(context.Background(), ports.ExportRequest{
		RunID:    "run-1",
		Platform: "perplexity",
		RunAt:    runAt,
		Results:  results,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "perplexity_20260301-093015.csv"), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := stdcsv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"query", "tag", "platform", "model", "response", "timestamp"},
		{"best trail shoes, 2026", "retail", "perplexity", "sonar", "Line one\n\"quoted\" line two", "2026-03-01T09:31:15Z"},
		{"empty", "", "perplexity", "", "", "2026-03-01T09:32:15Z"},
	}, rows)

	raw, err := os.ReadFile(filepath.Join(dir, "perplexity_20260301-093015.json"))
	require.NoError(t, err)

	var sidecar struct {
		RunID   string               `json:"run_id"`
		Results []domain.QueryResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(raw, &sidecar))
	assert.Equal(t, "run-1", sidecar.RunID)
	require.Len(t, sidecar.Results, 2)
	assert.Equal(t, results[0].References, sidecar.Results[0].References)
	assert.Equal(t, domain.ErrorKindLoginFailure, sidecar.Results[1].ErrorKind)
}

func TestExporterWritesHeaderForEmptyRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := NewExporter(dir).Export(context.Background(), ports.ExportRequest{
		Platform: "kimi",
		RunAt:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "query,tag,platform,model,response,timestamp\n", string(data))
}

func TestExporterRequiresPlatform(t *testing.T) {
	t.Parallel()

	_, err := NewExporter(t.TempDir()).Export(context.Background(), ports.ExportRequest{})
	require.Error(t, err)
}

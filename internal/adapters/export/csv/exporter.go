// Package csv writes one tabular export per platform per batch run.
package csv

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/fsutil"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

const (
	exportDirMode  = 0o755
	exportFileMode = 0o644
	runStampLayout = "20060102-150405"
)

var header = []string{"query", "tag", "platform", "model", "response", "timestamp"}

type Exporter struct {
	dir string
}

var _ ports.ResultExporter = (*Exporter)(nil)

func NewExporter(dir string) *Exporter {
	return &Exporter{dir: filepath.Clean(dir)}
}

// Export writes <platform>_<runstamp>.csv plus a JSON sidecar holding the full results,
// references included, and returns the CSV path.
func (e *Exporter) Export(ctx context.Context, req ports.ExportRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if req.Platform == "" {
		return "", fmt.Errorf("export results: platform is required")
	}

	base := filepath.Join(e.dir, FileStem(req.Platform, req.RunAt))

	err := fsutil.WriteAtomic(base+".csv", exportDirMode, exportFileMode, func(w io.Writer) error {
		return encodeTable(w, req.Results)
	})
	if err != nil {
		return "", fmt.Errorf("export %s: %w", req.Platform, err)
	}

	err = fsutil.WriteAtomic(base+".json", exportDirMode, exportFileMode, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sidecarSchema{
			RunID:    req.RunID,
			Platform: req.Platform,
			RunAt:    req.RunAt.UTC(),
			Results:  req.Results,
		})
	})
	if err != nil {
		return "", fmt.Errorf("export %s sidecar: %w", req.Platform, err)
	}

	return base + ".csv", nil
}

// FileStem names a run's export files for one platform.
func FileStem(platform domain.PlatformID, runAt time.Time) string {
	return fmt.Sprintf("%s_%s", platform, runAt.UTC().Format(runStampLayout))
}

type sidecarSchema struct {
	RunID    string               `json:"run_id,omitempty"`
	Platform domain.PlatformID    `json:"platform"`
	RunAt    time.Time            `json:"run_at"`
	Results  []domain.QueryResult `json:"results"`
}

func encodeTable(out io.Writer, results []domain.QueryResult) error {
	w := csv.NewWriter(out)

	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, result := range results {
		row := []string{
			result.Query,
			result.Tag,
			string(result.Platform),
			result.Model,
			result.Response,
			result.Timestamp.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}

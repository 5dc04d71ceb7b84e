package cmd

import (
	"bufio"
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

var errNoQueries = errors.New("queries file holds no queries")

// readQueries loads a .csv file of query,tag rows (header optional) or a plain text file
// with one query per line. Blank lines and lines starting with # are skipped in text files.
func readQueries(path string) ([]domain.Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open queries file: %w", err)
	}
	defer f.Close()

	var queries []domain.Query
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		queries, err = parseCSVQueries(f)
	} else {
		queries, err = parseTextQueries(f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse queries file %s: %w", path, err)
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, errNoQueries)
	}
	return queries, nil
}

func parseCSVQueries(r io.Reader) ([]domain.Query, error) {
	reader := stdcsv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var queries []domain.Query
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return queries, nil
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 {
			continue
		}

		text := strings.TrimSpace(record[0])
		if line == 1 && strings.EqualFold(text, "query") {
			continue
		}
		if text == "" {
			continue
		}

		q := domain.Query{Text: text}
		if len(record) > 1 {
			q.Tag = strings.TrimSpace(record[1])
		}
		queries = append(queries, q)
	}
}

func parseTextQueries(r io.Reader) ([]domain.Query, error) {
	var queries []domain.Query
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		queries = append(queries, domain.Query{Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return queries, nil
}

// selectPlatforms matches profile ids against glob patterns and keeps profile order.
// No patterns selects every profile.
func selectPlatforms(ctx context.Context, repo ports.ProfileRepository, patterns []string) ([]domain.PlatformID, error) {
	profiles, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}

	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(strings.ToLower(strings.TrimSpace(pattern)))
		if err != nil {
			return nil, fmt.Errorf("compile platform pattern %q: %w", pattern, err)
		}
		matchers = append(matchers, g)
	}

	var selected []domain.PlatformID
	for _, profile := range profiles {
		if len(matchers) == 0 || matchesAny(matchers, strings.ToLower(string(profile.ID))) {
			selected = append(selected, profile.ID)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: nothing matches %s", domain.ErrPlatformNotFound, strings.Join(patterns, ", "))
	}
	return selected, nil
}

func matchesAny(matchers []glob.Glob, id string) bool {
	for _, g := range matchers {
		if g.Match(id) {
			return true
		}
	}
	return false
}

// Package report finds, loads, and produces the markdown news reports the
// invitation page is built from.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nikolay-ai/hackevent/internal/domain"
)

// DefaultPattern matches the file names the generator writes.
const DefaultPattern = "ai_news_*.md"

// ErrNoReports means no report has been produced yet.
var ErrNoReports = fmt.Errorf("%w: no news reports found", domain.ErrNotFound)

// Latest returns the name of the most recently modified entry. Entries with
// identical timestamps are broken by the lexicographically greatest name.
func Latest(entries []domain.ReportEntry) (string, error) {
	if len(entries) == 0 {
		return "", ErrNoReports
	}

	best := entries[0]
	for _, e := range entries[1:] {
		if e.ModifiedAt.After(best.ModifiedAt) ||
			(e.ModifiedAt.Equal(best.ModifiedAt) && e.Name > best.Name) {
			best = e
		}
	}
	return best.Name, nil
}

// ScanDir lists regular files in dir whose names match pattern. A missing
// directory yields no entries rather than an error.
func ScanDir(dir, pattern string) ([]domain.ReportEntry, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("report pattern %q: %w", pattern, err)
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read report dir: %w", err)
	}

	var entries []domain.ReportEntry
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(pattern, de.Name()); !ok {
			continue
		}
		info, err := de.Info()
		if err != nil {
			return nil, fmt.Errorf("stat report %s: %w", de.Name(), err)
		}
		entries = append(entries, domain.ReportEntry{
			Name:       de.Name(),
			ModifiedAt: info.ModTime(),
		})
	}
	return entries, nil
}

// LoadLatest reads the most recently modified report in dir.
func LoadLatest(dir, pattern string) (*domain.Report, error) {
	entries, err := ScanDir(dir, pattern)
	if err != nil {
		return nil, err
	}

	name, err := Latest(entries)
	if err != nil {
		return nil, fmt.Errorf("%w in %s", err, dir)
	}

	producedAt := entries[0].ModifiedAt
	for _, e := range entries {
		if e.Name == name {
			producedAt = e.ModifiedAt
			break
		}
	}

	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", name, err)
	}

	return &domain.Report{
		Name:       filepath.Join(dir, name),
		Content:    string(content),
		ProducedAt: producedAt,
	}, nil
}

package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/treeport/internal/model"
)

// reportFileName matches the files SaveSummaries writes.
var reportFileName = regexp.MustCompile(`^[0-9a-f]{16}\.yaml$`)

// ReportStore persists and retrieves finalized test set summaries.
type ReportStore interface {
	SaveSummaries(path m.Path, summaries []*m.TestSetSummary) error
	LoadSummaries(path m.Path) ([]*m.TestSetSummary, error)
}

// LocalReportStore stores one YAML file per test set in a directory.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

type summaryYAML struct {
	Sequence int     `yaml:"sequence"`
	Set      setYAML `yaml:"set"`
}

// SaveSummaries replaces the reports in path with summaries. Files are
// named by a hash of their content and keep their order via a sequence.
func (rs *LocalReportStore) SaveSummaries(path m.Path, summaries []*m.TestSetSummary) error {
	dir := string(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	if err := rs.removeReports(dir); err != nil {
		return err
	}

	for i, summary := range summaries {
		if summary == nil {
			continue
		}

		data, err := yaml.Marshal(summaryYAML{
			Sequence: i,
			Set:      newSetYAML(summary.Set, summary.Outcomes()),
		})
		if err != nil {
			return fmt.Errorf("marshal summary %q: %w", summary.Set.Name, err)
		}

		name := rs.computeReportHash(data) + ".yaml"
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			return fmt.Errorf("write report %s: %w", name, err)
		}
	}

	return nil
}

// LoadSummaries reads every report in path, finalized, in saved order.
func (rs *LocalReportStore) LoadSummaries(path m.Path) ([]*m.TestSetSummary, error) {
	entries, err := os.ReadDir(string(path))
	if err != nil {
		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	var decoded []summaryYAML

	for _, entry := range entries {
		if entry.IsDir() || !reportFileName.MatchString(entry.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(string(path), entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read report %s: %w", entry.Name(), err)
		}

		var doc summaryYAML
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal report %s: %w", entry.Name(), err)
		}

		decoded = append(decoded, doc)
	}

	sort.SliceStable(decoded, func(i, j int) bool {
		return decoded[i].Sequence < decoded[j].Sequence
	})

	summaries := make([]*m.TestSetSummary, 0, len(decoded))

	for _, doc := range decoded {
		result, err := doc.Set.toResult()
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, m.NewFinalizedSummary(result.Set, result.Outcomes))
	}

	return summaries, nil
}

func (rs *LocalReportStore) removeReports(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read reports dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !reportFileName.MatchString(entry.Name()) {
			continue
		}

		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("remove stale report %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// computeReportHash returns the first 16 hex digits of the SHA-256 of data.
func (rs *LocalReportStore) computeReportHash(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:8])
}

package adapter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	m "github.com/mouse-blink/treeport/internal/model"
)

// goTestEvent is a single event from go test -json output.
type goTestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"` // start, run, pass, fail, skip, output, bench, pause, cont
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// fileLinePrefix matches the "name_test.go:12: " prefix t.Log adds.
var fileLinePrefix = regexp.MustCompile(`^\S+\.go:\d+: `)

// GoTestJSONDecoder reads go test -json NDJSON streams. Each package is a
// test set; each finished test or subtest is an outcome.
type GoTestJSONDecoder struct {
	logger *slog.Logger
}

// NewGoTestJSONDecoder constructs a GoTestJSONDecoder logging to logger.
func NewGoTestJSONDecoder(logger *slog.Logger) *GoTestJSONDecoder {
	return &GoTestJSONDecoder{logger: logger}
}

// Decode parses events line by line. Malformed lines are skipped and
// counted; the count is logged at debug level.
func (d *GoTestJSONDecoder) Decode(ctx context.Context, r io.Reader) ([]m.TestSetResult, error) {
	agg := newGoTestAggregator()
	scanner := bufio.NewScanner(r)
	// Allow large lines for verbose test output
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var malformed int

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event goTestEvent
		if err := json.Unmarshal(line, &event); err != nil {
			malformed++

			continue
		}

		agg.processEvent(event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning test output: %w", err)
	}

	if malformed > 0 {
		d.logger.Debug("skipped malformed go test events", "count", malformed)
	}

	return agg.results(), nil
}

type goTestAggregator struct {
	packages map[string]*goTestPackage
	order    []string
}

type goTestPackage struct {
	name     string
	elapsed  time.Duration
	failed   bool
	outcomes []m.TestOutcome
	output   map[string][]string
}

func newGoTestAggregator() *goTestAggregator {
	return &goTestAggregator{packages: make(map[string]*goTestPackage)}
}

func (a *goTestAggregator) getOrCreate(name string) *goTestPackage {
	if pkg, ok := a.packages[name]; ok {
		return pkg
	}

	pkg := &goTestPackage{name: name, output: make(map[string][]string)}
	a.packages[name] = pkg
	a.order = append(a.order, name)

	return pkg
}

func (a *goTestAggregator) processEvent(e goTestEvent) {
	if e.Package == "" {
		return
	}

	pkg := a.getOrCreate(e.Package)
	elapsed := time.Duration(math.Round(e.Elapsed * float64(time.Second)))

	switch e.Action {
	case "output":
		line := strings.TrimRight(e.Output, "\n")
		pkg.output[e.Test] = append(pkg.output[e.Test], line)

	case "pass", "fail", "skip":
		if e.Test == "" {
			pkg.elapsed = elapsed
			pkg.failed = e.Action == "fail"

			return
		}

		pkg.outcomes = append(pkg.outcomes, pkg.outcome(e.Test, e.Action, elapsed))
	}
}

func (p *goTestPackage) outcome(test, action string, elapsed time.Duration) m.TestOutcome {
	outcome := m.TestOutcome{
		Name:    test,
		Source:  p.name,
		Elapsed: elapsed,
	}

	lines := p.output[test]

	switch action {
	case "pass":
		outcome.Status = m.StatusSucceeded
	case "skip":
		outcome.Status = m.StatusSkipped
		outcome.Message = lastReason(lines)
	case "fail":
		outcome.Status = m.StatusFailed
		outcome.Message = lastReason(lines)

		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "panic:") {
				outcome.Status = m.StatusError
				outcome.Message = strings.TrimSpace(line)

				break
			}
		}
	}

	return outcome
}

// lastReason returns the last line a test logged, without the file:line
// prefix and without go test's own === and --- markers.
func lastReason(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "===") || strings.HasPrefix(line, "---") {
			continue
		}

		return fileLinePrefix.ReplaceAllString(line, "")
	}

	return ""
}

func (a *goTestAggregator) results() []m.TestSetResult {
	results := make([]m.TestSetResult, 0, len(a.order))

	for _, name := range a.order {
		pkg := a.packages[name]

		outcomes := pkg.outcomes
		if len(outcomes) == 0 && pkg.failed {
			outcomes = []m.TestOutcome{{
				Source:  pkg.name,
				Elapsed: pkg.elapsed,
				Status:  m.StatusError,
				Message: "package failed without running tests",
			}}
		}

		if len(outcomes) == 0 {
			continue
		}

		results = append(results, m.TestSetResult{
			Set:      m.TestSet{Name: pkg.name, Elapsed: pkg.elapsed},
			Outcomes: outcomes,
		})
	}

	return results
}

package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/treeport/internal/model"
)

type resultsYAML struct {
	Sets []setYAML `yaml:"sets"`
}

type setYAML struct {
	Name        string        `yaml:"name"`
	DisplayName string        `yaml:"display_name,omitempty"`
	Group       string        `yaml:"group,omitempty"`
	Elapsed     string        `yaml:"elapsed,omitempty"`
	Outcomes    []outcomeYAML `yaml:"outcomes"`
}

type outcomeYAML struct {
	Name    string `yaml:"name"`
	Source  string `yaml:"source,omitempty"`
	Elapsed string `yaml:"elapsed"`
	Status  string `yaml:"status"`
	Message string `yaml:"message,omitempty"`
}

// YAMLDecoder reads treeport's YAML result format:
//
//	sets:
//	  - name: com.example.FooTest
//	    outcomes:
//	      - name: works
//	        elapsed: 12ms
//	        status: succeeded
type YAMLDecoder struct{}

// NewYAMLDecoder constructs a YAMLDecoder.
func NewYAMLDecoder() *YAMLDecoder {
	return &YAMLDecoder{}
}

// Decode reads a whole YAML document from r.
func (d *YAMLDecoder) Decode(_ context.Context, r io.Reader) ([]m.TestSetResult, error) {
	var doc resultsYAML
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("yaml decode: %w", err)
	}

	results := make([]m.TestSetResult, 0, len(doc.Sets))

	for _, set := range doc.Sets {
		result, err := set.toResult()
		if err != nil {
			return nil, err
		}

		results = append(results, result)
	}

	return results, nil
}

func (s setYAML) toResult() (m.TestSetResult, error) {
	setElapsed, err := parseElapsed(s.Elapsed)
	if err != nil {
		return m.TestSetResult{}, fmt.Errorf("set %q: %w", s.Name, err)
	}

	outcomes := make([]m.TestOutcome, 0, len(s.Outcomes))

	for _, o := range s.Outcomes {
		elapsed, err := parseElapsed(o.Elapsed)
		if err != nil {
			return m.TestSetResult{}, fmt.Errorf("set %q, test %q: %w", s.Name, o.Name, err)
		}

		source := o.Source
		if m.IsBlank(source) {
			source = s.Name
		}

		outcome := m.TestOutcome{
			Name:    o.Name,
			Source:  source,
			Elapsed: elapsed,
			Status:  m.ParseStatus(o.Status),
			Message: o.Message,
		}
		if outcome.Status == m.StatusUnknown {
			outcome.RawStatus = o.Status
		}

		outcomes = append(outcomes, outcome)
	}

	return m.TestSetResult{
		Set: m.TestSet{
			Name:        s.Name,
			DisplayName: s.DisplayName,
			Group:       s.Group,
			Elapsed:     setElapsed,
		},
		Outcomes: outcomes,
	}, nil
}

func newSetYAML(set m.TestSet, outcomes []m.TestOutcome) setYAML {
	out := setYAML{
		Name:        set.Name,
		DisplayName: set.DisplayName,
		Group:       set.Group,
		Outcomes:    make([]outcomeYAML, 0, len(outcomes)),
	}
	if set.Elapsed > 0 {
		out.Elapsed = set.Elapsed.String()
	}

	for _, o := range outcomes {
		status := o.Status.String()
		if o.Status == m.StatusUnknown && !m.IsBlank(o.RawStatus) {
			status = o.RawStatus
		}

		source := o.Source
		if source == set.Name {
			source = ""
		}

		out.Outcomes = append(out.Outcomes, outcomeYAML{
			Name:    o.Name,
			Source:  source,
			Elapsed: o.Elapsed.String(),
			Status:  status,
			Message: o.Message,
		})
	}

	return out
}

// parseElapsed accepts Go durations ("12ms", "1.5s") and plain seconds
// ("0.012"). Blank means zero.
func parseElapsed(text string) (time.Duration, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}

	if d, err := time.ParseDuration(text); err == nil {
		return d, nil
	}

	seconds, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid elapsed time %q", text)
	}

	return time.Duration(math.Round(seconds * float64(time.Second))), nil
}

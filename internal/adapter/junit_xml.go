package adapter

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	m "github.com/mouse-blink/treeport/internal/model"
)

// ErrNotJUnit is returned when an XML document has no testsuite root.
var ErrNotJUnit = errors.New("not a JUnit report")

type junitSuites struct {
	Suites []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name   string       `xml:"name,attr"`
	Group  string       `xml:"group,attr"`
	Time   string       `xml:"time,attr"`
	Cases  []junitCase  `xml:"testcase"`
	Suites []junitSuite `xml:"testsuite"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitProblem `xml:"failure"`
	Error     *junitProblem `xml:"error"`
	Skipped   *junitProblem `xml:"skipped"`
}

type junitProblem struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitXMLDecoder reads JUnit XML reports with either a <testsuites> or a
// single <testsuite> root. Nested suites are flattened in document order.
type JUnitXMLDecoder struct{}

// NewJUnitXMLDecoder constructs a JUnitXMLDecoder.
func NewJUnitXMLDecoder() *JUnitXMLDecoder {
	return &JUnitXMLDecoder{}
}

// Decode reads the first root element of r and converts its suites.
func (d *JUnitXMLDecoder) Decode(ctx context.Context, r io.Reader) ([]m.TestSetResult, error) {
	dec := xml.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, ErrNotJUnit
		}

		if err != nil {
			return nil, fmt.Errorf("reading xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "testsuites":
			var suites junitSuites
			if err := dec.DecodeElement(&suites, &start); err != nil {
				return nil, fmt.Errorf("decoding testsuites: %w", err)
			}

			return flattenSuites(suites.Suites), nil

		case "testsuite":
			var suite junitSuite
			if err := dec.DecodeElement(&suite, &start); err != nil {
				return nil, fmt.Errorf("decoding testsuite: %w", err)
			}

			return flattenSuites([]junitSuite{suite}), nil

		default:
			return nil, fmt.Errorf("%w: root element <%s>", ErrNotJUnit, start.Name.Local)
		}
	}
}

func flattenSuites(suites []junitSuite) []m.TestSetResult {
	var results []m.TestSetResult

	for _, suite := range suites {
		if len(suite.Cases) > 0 {
			results = append(results, suite.toResult())
		}

		results = append(results, flattenSuites(suite.Suites)...)
	}

	return results
}

func (s junitSuite) toResult() m.TestSetResult {
	outcomes := make([]m.TestOutcome, 0, len(s.Cases))

	for _, c := range s.Cases {
		source := c.Classname
		if m.IsBlank(source) {
			source = s.Name
		}

		outcome := m.TestOutcome{
			Name:    c.Name,
			Source:  source,
			Elapsed: parseSeconds(c.Time),
			Status:  m.StatusSucceeded,
		}

		switch {
		case c.Error != nil:
			outcome.Status = m.StatusError
			outcome.Message = c.Error.reason()
		case c.Failure != nil:
			outcome.Status = m.StatusFailed
			outcome.Message = c.Failure.reason()
		case c.Skipped != nil:
			outcome.Status = m.StatusSkipped
			outcome.Message = c.Skipped.reason()
		}

		outcomes = append(outcomes, outcome)
	}

	return m.TestSetResult{
		Set: m.TestSet{
			Name:    s.Name,
			Group:   s.Group,
			Elapsed: parseSeconds(s.Time),
		},
		Outcomes: outcomes,
	}
}

// reason prefers the message attribute and falls back to the first line of
// the element body.
func (p *junitProblem) reason() string {
	if !m.IsBlank(p.Message) {
		return strings.TrimSpace(p.Message)
	}

	body := strings.TrimSpace(p.Body)
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = strings.TrimSpace(body[:i])
	}

	return body
}

// parseSeconds reads a JUnit time attribute such as "0.012" or "1,234.5".
// Unparsable values count as zero.
func parseSeconds(text string) time.Duration {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if text == "" {
		return 0
	}

	seconds, err := strconv.ParseFloat(text, 64)
	if err != nil || seconds < 0 {
		return 0
	}

	return time.Duration(math.Round(seconds * float64(time.Second)))
}

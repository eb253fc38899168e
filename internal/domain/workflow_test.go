package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "github.com/mouse-blink/treeport/internal/adapter/mocks"
	controllermocks "github.com/mouse-blink/treeport/internal/controller/mocks"
	m "github.com/mouse-blink/treeport/internal/model"
)

type printed struct {
	text  string
	level m.Level
}

// recordingUI keeps everything written to it.
type recordingUI struct {
	mu      sync.Mutex
	lines   []printed
	totals  []m.Totals
	started int
	closed  int
}

func (r *recordingUI) Start() error {
	r.started++
	return nil
}

func (r *recordingUI) Println(line m.Line, level m.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines = append(r.lines, printed{text: line.String(), level: level})
}

func (r *recordingUI) DisplayTotals(totals m.Totals) {
	r.totals = append(r.totals, totals)
}

func (r *recordingUI) Close() error {
	r.closed++
	return nil
}

func fooSet() m.TestSetResult {
	return m.TestSetResult{
		Set: m.TestSet{Name: "com.example.FooTest"},
		Outcomes: []m.TestOutcome{
			{Name: "works", Status: m.StatusSucceeded, Elapsed: 10 * time.Millisecond},
			{Name: "later", Status: m.StatusSkipped, Message: "todo"},
		},
	}
}

func barSet() m.TestSetResult {
	return m.TestSetResult{
		Set: m.TestSet{Name: "com.example.BarTest"},
		Outcomes: []m.TestOutcome{
			{Name: "breaks", Status: m.StatusFailed, Elapsed: 20 * time.Millisecond},
		},
	}
}

func TestWorkflow_Render_ReportsSetsInInputOrder(t *testing.T) {
	fs := adaptermocks.NewMockInputFSAdapter(t)
	source := adaptermocks.NewMockResultSource(t)
	store := adaptermocks.NewMockReportStore(t)
	ui := &recordingUI{}

	fs.On("Expand", []m.Path{"./results/..."}).Return([]m.Path{"a.xml", "b.xml"}, nil)
	source.On("Load", mock.Anything, m.Path("a.xml"), m.FormatAuto).Return([]m.TestSetResult{fooSet()}, nil)
	source.On("Load", mock.Anything, m.Path("b.xml"), m.FormatAuto).Return([]m.TestSetResult{barSet()}, nil)

	wf := NewWorkflow(fs, source, store, ui, nil)

	err := wf.Render(context.Background(), RenderArgs{
		ReportArgs: ReportArgs{Summary: true},
		Inputs:     []m.Path{"./results/..."},
		Format:     m.FormatAuto,
		Threads:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, []printed{
		{text: "|", level: m.LevelInfo},
		{text: "+-- com.example.FooTest", level: m.LevelInfo},
		{text: "| +-- [OK] works - 0.01s", level: m.LevelWarning},
		{text: "| +-- [??] later (todo) - 0s", level: m.LevelWarning},
		{text: "Tests run: 2, Failures: 0, Errors: 0, Skipped: 1, Time elapsed: 0.01 s - in com.example.FooTest", level: m.LevelWarning},
		{text: "|", level: m.LevelInfo},
		{text: "+-- com.example.BarTest", level: m.LevelInfo},
		{text: "| +-- [XX] breaks - 0.02s", level: m.LevelError},
		{text: "Tests run: 1, Failures: 1, Errors: 0, Skipped: 0, Time elapsed: 0.02 s <<< FAILURE! - in com.example.BarTest", level: m.LevelError},
	}, ui.lines)

	require.Len(t, ui.totals, 1)
	assert.Equal(t, 2, ui.totals[0].Sets)
	assert.Equal(t, m.Counts{Completed: 3, Failures: 1, Skipped: 1}, ui.totals[0].Counts)
	assert.Equal(t, 1, ui.started)
	assert.Equal(t, 1, ui.closed)
}

func TestWorkflow_Render_WithoutSummaryPrintsOneLinePerOutcome(t *testing.T) {
	fs := adaptermocks.NewMockInputFSAdapter(t)
	source := adaptermocks.NewMockResultSource(t)
	ui := &recordingUI{}

	fs.On("Expand", mock.Anything).Return([]m.Path{"a.yaml"}, nil)
	source.On("Load", mock.Anything, m.Path("a.yaml"), m.FormatYAML).Return([]m.TestSetResult{fooSet(), barSet()}, nil)

	wf := NewWorkflow(fs, source, adaptermocks.NewMockReportStore(t), ui, nil)

	require.NoError(t, wf.Render(context.Background(), RenderArgs{Inputs: []m.Path{"a.yaml"}, Format: m.FormatYAML}))

	// Two header lines per set plus one line per outcome.
	assert.Len(t, ui.lines, 2*2+3)
}

func TestWorkflow_Render_ParallelLoadsKeepOrder(t *testing.T) {
	fs := adaptermocks.NewMockInputFSAdapter(t)
	source := adaptermocks.NewMockResultSource(t)
	ui := &recordingUI{}

	var files []m.Path
	for i := range 12 {
		files = append(files, m.Path(fmt.Sprintf("f%02d.json", i)))
	}

	fs.On("Expand", mock.Anything).Return(files, nil)
	source.On("Load", mock.Anything, mock.Anything, m.FormatGoTest).Return(
		func(_ context.Context, path m.Path, _ m.Format) ([]m.TestSetResult, error) {
			// Later files finish first.
			time.Sleep(time.Duration(len(files)-int(path[1]-'0')*10-int(path[2]-'0')) * time.Millisecond)

			return []m.TestSetResult{{
				Set:      m.TestSet{Name: string(path)},
				Outcomes: []m.TestOutcome{{Name: "t", Status: m.StatusSucceeded}},
			}}, nil
		})

	wf := NewWorkflow(fs, source, adaptermocks.NewMockReportStore(t), ui, nil)

	require.NoError(t, wf.Render(context.Background(), RenderArgs{Inputs: []m.Path{"."}, Format: m.FormatGoTest, Threads: 4}))

	var headers []string
	for _, p := range ui.lines {
		if len(p.text) > 4 && p.text[:4] == "+-- " {
			headers = append(headers, p.text[4:])
		}
	}

	want := make([]string, 0, len(files))
	for _, f := range files {
		want = append(want, string(f))
	}

	assert.Equal(t, want, headers)
}

func TestWorkflow_Render_SavesSummaries(t *testing.T) {
	fs := adaptermocks.NewMockInputFSAdapter(t)
	source := adaptermocks.NewMockResultSource(t)
	store := adaptermocks.NewMockReportStore(t)
	ui := &recordingUI{}

	fs.On("Expand", mock.Anything).Return([]m.Path{"a.xml"}, nil)
	source.On("Load", mock.Anything, m.Path("a.xml"), m.FormatJUnit).Return([]m.TestSetResult{fooSet(), barSet()}, nil)
	store.On("SaveSummaries", m.Path(".reports"), mock.MatchedBy(func(s []*m.TestSetSummary) bool {
		return len(s) == 2 &&
			s[0].Set.Name == "com.example.FooTest" &&
			s[1].Set.Name == "com.example.BarTest" &&
			s[0].Finalized() && s[1].Finalized()
	})).Return(nil)

	wf := NewWorkflow(fs, source, store, ui, nil)

	err := wf.Render(context.Background(), RenderArgs{
		Inputs:  []m.Path{"a.xml"},
		Format:  m.FormatJUnit,
		Reports: ".reports",
		Save:    true,
	})
	require.NoError(t, err)
}

func TestWorkflow_Render_Errors(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("expand error", func(t *testing.T) {
		fs := adaptermocks.NewMockInputFSAdapter(t)
		fs.On("Expand", mock.Anything).Return(nil, errBoom)

		wf := NewWorkflow(fs, adaptermocks.NewMockResultSource(t), adaptermocks.NewMockReportStore(t), &recordingUI{}, nil)

		err := wf.Render(context.Background(), RenderArgs{Inputs: []m.Path{"x"}})
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("no inputs", func(t *testing.T) {
		fs := adaptermocks.NewMockInputFSAdapter(t)
		fs.On("Expand", mock.Anything).Return([]m.Path{}, nil)

		wf := NewWorkflow(fs, adaptermocks.NewMockResultSource(t), adaptermocks.NewMockReportStore(t), &recordingUI{}, nil)

		err := wf.Render(context.Background(), RenderArgs{Inputs: []m.Path{"empty"}})
		assert.ErrorIs(t, err, ErrNoInputs)
	})

	t.Run("load error names the file", func(t *testing.T) {
		fs := adaptermocks.NewMockInputFSAdapter(t)
		source := adaptermocks.NewMockResultSource(t)
		ui := &recordingUI{}

		fs.On("Expand", mock.Anything).Return([]m.Path{"bad.xml"}, nil)
		source.On("Load", mock.Anything, m.Path("bad.xml"), m.FormatAuto).Return(nil, errBoom)

		wf := NewWorkflow(fs, source, adaptermocks.NewMockReportStore(t), ui, nil)

		err := wf.Render(context.Background(), RenderArgs{Inputs: []m.Path{"bad.xml"}, Format: m.FormatAuto})
		require.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "bad.xml")
		assert.Empty(t, ui.lines)
	})

	t.Run("fail on error", func(t *testing.T) {
		fs := adaptermocks.NewMockInputFSAdapter(t)
		source := adaptermocks.NewMockResultSource(t)

		fs.On("Expand", mock.Anything).Return([]m.Path{"a.xml"}, nil)
		source.On("Load", mock.Anything, m.Path("a.xml"), m.FormatAuto).Return([]m.TestSetResult{barSet()}, nil)

		wf := NewWorkflow(fs, source, adaptermocks.NewMockReportStore(t), &recordingUI{}, nil)

		err := wf.Render(context.Background(), RenderArgs{
			ReportArgs: ReportArgs{FailOnError: true},
			Inputs:     []m.Path{"a.xml"},
			Format:     m.FormatAuto,
		})
		assert.ErrorIs(t, err, ErrTestFailures)
	})

	t.Run("close error", func(t *testing.T) {
		fs := adaptermocks.NewMockInputFSAdapter(t)
		source := adaptermocks.NewMockResultSource(t)
		ui := controllermocks.NewMockUI(t)

		fs.On("Expand", mock.Anything).Return([]m.Path{"a.xml"}, nil)
		source.On("Load", mock.Anything, m.Path("a.xml"), m.FormatAuto).Return([]m.TestSetResult{fooSet()}, nil)
		ui.On("Start").Return(nil)
		ui.On("Println", mock.Anything, mock.Anything).Return()
		ui.On("DisplayTotals", mock.AnythingOfType("model.Totals")).Return()
		ui.On("Close").Return(errBoom)

		wf := NewWorkflow(fs, source, adaptermocks.NewMockReportStore(t), ui, nil)

		err := wf.Render(context.Background(), RenderArgs{Inputs: []m.Path{"a.xml"}, Format: m.FormatAuto})
		assert.ErrorIs(t, err, errBoom)
		ui.AssertNumberOfCalls(t, "Println", 4)
	})
}

func TestWorkflow_View(t *testing.T) {
	store := adaptermocks.NewMockReportStore(t)
	ui := &recordingUI{}

	bar := barSet()
	store.On("LoadSummaries", m.Path(".reports")).Return([]*m.TestSetSummary{
		m.NewFinalizedSummary(bar.Set, bar.Outcomes),
	}, nil)

	wf := NewWorkflow(adaptermocks.NewMockInputFSAdapter(t), adaptermocks.NewMockResultSource(t), store, ui, nil)

	err := wf.View(context.Background(), ViewArgs{
		ReportArgs: ReportArgs{FailOnError: true},
		Reports:    ".reports",
	})
	require.ErrorIs(t, err, ErrTestFailures)

	assert.Equal(t, []printed{
		{text: "|", level: m.LevelInfo},
		{text: "+-- com.example.BarTest", level: m.LevelInfo},
		{text: "| +-- [XX] breaks - 0.02s", level: m.LevelError},
	}, ui.lines)
}

func TestWorkflow_View_LoadError(t *testing.T) {
	store := adaptermocks.NewMockReportStore(t)
	store.On("LoadSummaries", m.Path("missing")).Return(nil, errors.New("no dir"))

	wf := NewWorkflow(adaptermocks.NewMockInputFSAdapter(t), adaptermocks.NewMockResultSource(t), store, &recordingUI{}, nil)

	err := wf.View(context.Background(), ViewArgs{Reports: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load reports")
}

func TestWorkflow_Render_CancelledContext(t *testing.T) {
	fs := adaptermocks.NewMockInputFSAdapter(t)
	source := adaptermocks.NewMockResultSource(t)
	ui := &recordingUI{}

	ctx, cancel := context.WithCancel(context.Background())

	fs.On("Expand", mock.Anything).Return([]m.Path{"a.xml"}, nil)
	source.On("Load", mock.Anything, m.Path("a.xml"), m.FormatAuto).Return(
		func(_ context.Context, _ m.Path, _ m.Format) ([]m.TestSetResult, error) {
			cancel()

			return []m.TestSetResult{fooSet()}, nil
		})

	wf := NewWorkflow(fs, source, adaptermocks.NewMockReportStore(t), ui, nil)

	err := wf.Render(ctx, RenderArgs{Inputs: []m.Path{"a.xml"}, Format: m.FormatAuto})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ui.lines)
	assert.Equal(t, 1, ui.closed)
}

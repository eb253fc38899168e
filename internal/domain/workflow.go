package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/treeport/internal/adapter"
	"github.com/mouse-blink/treeport/internal/controller"
	m "github.com/mouse-blink/treeport/internal/model"
)

var (
	// ErrNoInputs is returned when the input paths hold no result files.
	ErrNoInputs = errors.New("no result files found")
	// ErrTestFailures is returned when failures are reported and the caller
	// asked for a failing exit.
	ErrTestFailures = errors.New("test failures reported")
)

// ReportArgs holds the options shared by rendering and viewing.
type ReportArgs struct {
	Summary     bool // print the "Tests run" line after each set
	FailOnError bool // return ErrTestFailures when the run's level is error
}

// RenderArgs holds the arguments for rendering result files.
type RenderArgs struct {
	ReportArgs
	Inputs  []m.Path
	Format  m.Format
	Threads int
	// Reports is the directory summaries are saved to when Save is set.
	Reports m.Path
	Save    bool
}

// ViewArgs holds the arguments for viewing saved summaries.
type ViewArgs struct {
	ReportArgs
	Reports m.Path
}

// Workflow defines the reporting operations exposed to the CLI.
type Workflow interface {
	Render(ctx context.Context, args RenderArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	fs       adapter.InputFSAdapter
	source   adapter.ResultSource
	store    adapter.ReportStore
	ui       controller.UI
	logger   *slog.Logger
	options  []ReporterOption
	reporter func() Reporter
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
// A fresh Reporter built with options is used for every run.
func NewWorkflow(
	fs adapter.InputFSAdapter,
	source adapter.ResultSource,
	store adapter.ReportStore,
	ui controller.UI,
	logger *slog.Logger,
	options ...ReporterOption,
) Workflow {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w := &workflow{
		fs:      fs,
		source:  source,
		store:   store,
		ui:      ui,
		logger:  logger,
		options: options,
	}
	w.reporter = func() Reporter {
		return NewReporter(NewClassifier(), w.options...)
	}

	return w
}

// Render loads every result file concurrently, then reports the sets one
// at a time in input order.
func (w *workflow) Render(ctx context.Context, args RenderArgs) error {
	files, err := w.fs.Expand(args.Inputs)
	if err != nil {
		return fmt.Errorf("expand inputs: %w", err)
	}

	if len(files) == 0 {
		return ErrNoInputs
	}

	results, err := w.loadAll(ctx, files, args.Format, args.Threads)
	if err != nil {
		return err
	}

	summaries, err := w.report(ctx, results, args.ReportArgs)
	if err != nil {
		return err
	}

	if args.Save && args.Reports != "" {
		if err := w.store.SaveSummaries(args.Reports, summaries); err != nil {
			return fmt.Errorf("save reports: %w", err)
		}

		w.logger.Debug("saved reports", "dir", args.Reports, "sets", len(summaries))
	}

	return w.verdict(summaries, args.ReportArgs)
}

// View reports summaries saved by an earlier Render.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	summaries, err := w.store.LoadSummaries(args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	results := make([]m.TestSetResult, 0, len(summaries))
	for _, s := range summaries {
		results = append(results, m.TestSetResult{Set: s.Set, Outcomes: s.Outcomes()})
	}

	reported, err := w.report(ctx, results, args.ReportArgs)
	if err != nil {
		return err
	}

	return w.verdict(reported, args.ReportArgs)
}

// loadAll reads files with at most threads concurrent loads. Results keep
// the order of files.
func (w *workflow) loadAll(ctx context.Context, files []m.Path, format m.Format, threads int) ([]m.TestSetResult, error) {
	if threads <= 0 {
		threads = 1
	}

	loaded := make([][]m.TestSetResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, file := range files {
		g.Go(func() error {
			sets, err := w.source.Load(gctx, file, format)
			if err != nil {
				return fmt.Errorf("load %s: %w", file, err)
			}

			w.logger.Debug("loaded result file", "path", file, "sets", len(sets))
			loaded[i] = sets

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []m.TestSetResult
	for _, sets := range loaded {
		results = append(results, sets...)
	}

	return results, nil
}

// report writes every set through one Reporter and returns the finalized
// summaries in order.
func (w *workflow) report(ctx context.Context, results []m.TestSetResult, args ReportArgs) ([]*m.TestSetSummary, error) {
	if err := w.ui.Start(); err != nil {
		return nil, err
	}

	reporter := w.reporter()
	summaries := make([]*m.TestSetSummary, 0, len(results))

	for _, result := range results {
		if err := ctx.Err(); err != nil {
			_ = w.ui.Close()

			return nil, err
		}

		for _, line := range reporter.OnTestSetStarting(result.Set) {
			w.ui.Println(line, m.LevelInfo)
		}

		lines, level := reporter.OnTestSetCompleted(result.Outcomes)
		for _, line := range lines {
			w.ui.Println(line, level)
		}

		summary := reporter.Summary()
		if args.Summary {
			w.ui.Println(reporter.SummaryLine(summary), level)
		}

		summaries = append(summaries, summary)
	}

	w.ui.DisplayTotals(m.ComputeTotals(summaries))

	if err := w.ui.Close(); err != nil {
		return nil, fmt.Errorf("close ui: %w", err)
	}

	return summaries, nil
}

func (w *workflow) verdict(summaries []*m.TestSetSummary, args ReportArgs) error {
	if args.FailOnError && m.ComputeTotals(summaries).Level() == m.LevelError {
		return ErrTestFailures
	}

	return nil
}

// Package cmd provides the root command and CLI setup for treeport.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/treeport/internal/adapter"
	"github.com/mouse-blink/treeport/internal/config"
	"github.com/mouse-blink/treeport/internal/controller"
	"github.com/mouse-blink/treeport/internal/domain"
)

var configFlag string
var verboseFlag bool
var summaryFlag bool
var levelPrefixFlag bool
var colorFlag string
var failOnErrorFlag bool
var reportsFlag string

// newWorkflow wires the adapters for one command run. Tests replace it.
var newWorkflow = func(cmd *cobra.Command, cfg config.Config) domain.Workflow {
	logger := newLogger(cmd.ErrOrStderr(), verboseFlag)
	fs := adapter.NewLocalInputFSAdapter()

	return domain.NewWorkflow(
		fs,
		adapter.NewResultSource(fs, logger),
		adapter.NewReportStore(),
		newUI(cmd, cfg),
		logger,
		domain.WithPhrasedRunning(cfg.PhrasedRunning),
		domain.WithPhrasedSummary(cfg.PhrasedSummary),
	)
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treeport [paths...]",
		Short: "Tree-shaped console reports for test results",
		Long: `Treeport renders finished test results as a tree-shaped console report,
one block per test set with a [OK], [XX] or [??] line per test, and routes
each block to the log level its worst outcome calls for.

Reads go test -json output, JUnit XML and treeport YAML files.
Supports Go-style path patterns:
  - ./...            recursively scan current directory
  - ./reports/...    recursively scan reports directory
  - a.json b.xml     render the given files

Without a subcommand it behaves like "treeport render".`,
		SilenceUsage: true,
		RunE:         runRender,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFlag, "config", "", "config file (default "+config.DefaultPath+" if present)")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "log diagnostics to stderr")
	flags.BoolVar(&summaryFlag, "summary", true, "print a Tests run line after each test set")
	flags.BoolVar(&levelPrefixFlag, "level-prefix", true, "prefix lines with their log level, e.g. [INFO]")
	flags.StringVar(&colorFlag, "color", config.ColorAuto, "color output: auto, always or never")
	flags.BoolVar(&failOnErrorFlag, "fail-on-error", false, "exit non-zero when any test failed or errored")
	flags.StringVar(&reportsFlag, "reports", "", "directory for saved reports (default .treeport-reports)")

	addRenderFlags(cmd)

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

// resolveConfig loads the config file and applies explicitly set flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("summary") {
		cfg.Summary = summaryFlag
	}

	if flags.Changed("level-prefix") {
		cfg.LevelPrefix = levelPrefixFlag
	}

	if flags.Changed("color") {
		cfg.Color = colorFlag
	}

	if flags.Changed("fail-on-error") {
		cfg.FailOnError = failOnErrorFlag
	}

	if flags.Changed("reports") {
		cfg.Reports = reportsFlag
	}

	applyRenderFlags(cmd, &cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func newUI(cmd *cobra.Command, cfg config.Config) controller.UI {
	palette := controller.DefaultPalette()
	palette.Success = pick(cfg.Palette.Success, palette.Success)
	palette.Failure = pick(cfg.Palette.Failure, palette.Failure)
	palette.Warning = pick(cfg.Palette.Warning, palette.Warning)
	palette.Info = pick(cfg.Palette.Info, palette.Info)

	useTTY := cfg.Color != config.ColorNever && controller.IsTTY(cmd.OutOrStdout())

	return controller.NewUI(cmd, useTTY,
		controller.WithLevelPrefix(cfg.LevelPrefix),
		controller.WithForceColor(cfg.Color == config.ColorAlways),
		controller.WithPalette(palette),
	)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func pick(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

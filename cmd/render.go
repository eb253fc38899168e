package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/treeport/internal/config"
	"github.com/mouse-blink/treeport/internal/domain"
	m "github.com/mouse-blink/treeport/internal/model"
)

const renderLongDescription = `Render test result files as a tree report.

Each test set prints a header followed by one line per test:
  [OK] passed, [XX] failed or errored, [??] skipped.
The block is logged at the worst level among its tests.`

var formatFlag string
var parallelFlag int
var saveFlag bool

// renderCmd represents the render command.
var renderCmd = newRenderCmd()

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "render [paths...]",
		Short:        "Render test result files",
		Long:         renderLongDescription,
		SilenceUsage: true,
		RunE:         runRender,
	}

	addRenderFlags(cmd)

	return cmd
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "auto", "input format: auto, gotest, junit or yaml")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 1, "number of result files loaded in parallel")
	cmd.Flags().BoolVar(&saveFlag, "save", false, "save the rendered summaries to the reports directory")
}

func applyRenderFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Lookup("format") == nil {
		return
	}

	if flags.Changed("format") {
		cfg.Format = formatFlag
	}

	if flags.Changed("parallel") {
		cfg.Parallel = parallelFlag
	}

	if flags.Changed("save") {
		cfg.Save = saveFlag
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	return newWorkflow(cmd, cfg).Render(cmd.Context(), domain.RenderArgs{
		ReportArgs: domain.ReportArgs{
			Summary:     cfg.Summary,
			FailOnError: cfg.FailOnError,
		},
		Inputs:  parsePaths(args),
		Format:  m.Format(cfg.Format),
		Threads: cfg.Parallel,
		Reports: m.Path(cfg.Reports),
		Save:    cfg.Save,
	})
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

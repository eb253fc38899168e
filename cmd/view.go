package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/treeport/internal/domain"
	m "github.com/mouse-blink/treeport/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "view",
		Short:        "View previously saved reports",
		Long:         "View reports saved by \"treeport render --save\" from a reports directory.",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			return newWorkflow(cmd, cfg).View(cmd.Context(), domain.ViewArgs{
				ReportArgs: domain.ReportArgs{
					Summary:     cfg.Summary,
					FailOnError: cfg.FailOnError,
				},
				Reports: m.Path(cfg.Reports),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

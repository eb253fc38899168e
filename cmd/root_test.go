package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/treeport/internal/config"
	"github.com/mouse-blink/treeport/internal/controller"
	"github.com/mouse-blink/treeport/internal/domain"
	domainmocks "github.com/mouse-blink/treeport/internal/domain/mocks"
	m "github.com/mouse-blink/treeport/internal/model"
)

// useWorkflow swaps the workflow factory for the test and records the
// config each command resolved.
func useWorkflow(t *testing.T, wf domain.Workflow) *config.Config {
	t.Helper()

	var resolved config.Config

	original := newWorkflow
	newWorkflow = func(_ *cobra.Command, cfg config.Config) domain.Workflow {
		resolved = cfg
		return wf
	}
	t.Cleanup(func() { newWorkflow = original })

	return &resolved
}

func newTestRootCmd(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.AddCommand(newRenderCmd(), newViewCmd(), newVersionCmd())
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, &out
}

func TestRootCmd_RendersCurrentDirectoryByDefault(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	resolved := useWorkflow(t, mockWorkflow)

	cmd, _ := newTestRootCmd(t)

	mockWorkflow.On("Render", mock.Anything, domain.RenderArgs{
		ReportArgs: domain.ReportArgs{Summary: true},
		Inputs:     []m.Path{"."},
		Format:     m.FormatAuto,
		Threads:    1,
		Reports:    ".treeport-reports",
	}).Return(nil)

	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, config.Default(), *resolved)
}

func TestRootCmd_FlagsOverrideDefaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	resolved := useWorkflow(t, mockWorkflow)

	cmd, _ := newTestRootCmd(t)

	mockWorkflow.On("Render", mock.Anything, mock.MatchedBy(func(args domain.RenderArgs) bool {
		return args.Threads == 4 &&
			args.Format == m.FormatJUnit &&
			args.Save &&
			args.Reports == m.Path("out") &&
			args.FailOnError &&
			!args.Summary &&
			len(args.Inputs) == 2 &&
			args.Inputs[0] == m.Path("./results/...") &&
			args.Inputs[1] == m.Path("extra.xml")
	})).Return(nil)

	cmd.SetArgs([]string{
		"--parallel", "4",
		"--format", "JUnit",
		"--save",
		"--reports", "out",
		"--fail-on-error",
		"--summary=false",
		"--level-prefix=false",
		"--color", "never",
		"./results/...", "extra.xml",
	})
	require.NoError(t, cmd.Execute())

	assert.False(t, resolved.LevelPrefix)
	assert.Equal(t, config.ColorNever, resolved.Color)
}

func TestRenderCmd_Subcommand(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, _ := newTestRootCmd(t)

	mockWorkflow.On("Render", mock.Anything, mock.MatchedBy(func(args domain.RenderArgs) bool {
		return args.Threads == 3 && args.Format == m.FormatGoTest && len(args.Inputs) == 1
	})).Return(nil)

	cmd.SetArgs([]string{"render", "-p", "3", "-f", "gotest", "out.json"})
	require.NoError(t, cmd.Execute())
}

func TestRootCmd_ConfigFileIsApplied(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	resolved := useWorkflow(t, mockWorkflow)

	cmd, _ := newTestRootCmd(t)

	require.NoError(t, os.WriteFile(config.DefaultPath, []byte("parallel: 6\nsummary: false\nphrased_running: false\n"), 0o600))

	mockWorkflow.On("Render", mock.Anything, mock.MatchedBy(func(args domain.RenderArgs) bool {
		return args.Threads == 2 && !args.Summary
	})).Return(nil)

	cmd.SetArgs([]string{"-p", "2"})
	require.NoError(t, cmd.Execute())

	assert.False(t, resolved.PhrasedRunning)
	assert.Equal(t, 2, resolved.Parallel, "flags win over the config file")
}

func TestRootCmd_ExplicitConfigMustExist(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, _ := newTestRootCmd(t)

	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestRootCmd_InvalidFlagValue(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, _ := newTestRootCmd(t)

	cmd.SetArgs([]string{"--color", "sometimes"})
	assert.ErrorIs(t, cmd.Execute(), config.ErrInvalidConfig)
}

func TestRootCmd_WorkflowErrorIsReturned(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, _ := newTestRootCmd(t)

	mockWorkflow.On("Render", mock.Anything, mock.Anything).Return(domain.ErrTestFailures)

	cmd.SetArgs([]string{"--fail-on-error"})
	assert.ErrorIs(t, cmd.Execute(), domain.ErrTestFailures)
}

func TestVersionCmd(t *testing.T) {
	cmd, out := newTestRootCmd(t)

	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "treeport dev\n", out.String())
}

func TestNewUI_NeverColorIsPlain(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	cfg := config.Default()
	cfg.Color = config.ColorNever

	_, ok := newUI(cmd, cfg).(*controller.SimpleUI)
	assert.True(t, ok)

	cfg.Color = config.ColorAlways
	_, ok = newUI(cmd, cfg).(*controller.TUI)
	assert.True(t, ok)
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, false).Debug("hidden")
	newLogger(&buf, false).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	newLogger(&buf, true).Debug("verbose")
	assert.Contains(t, buf.String(), "verbose")
}

func TestPick(t *testing.T) {
	assert.Equal(t, "b", pick("", "b"))
	assert.Equal(t, "a", pick("a", "b"))
}

func TestNewWorkflow_Default(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	wf := newWorkflow(cmd, config.Default())
	require.NotNil(t, wf)

	err := wf.Render(t.Context(), domain.RenderArgs{Inputs: []m.Path{m.Path(filepath.Join(t.TempDir(), "missing"))}})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNoInputs))
}

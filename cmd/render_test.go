package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/treeport/internal/domain"
)

const examplesReport = `[INFO] |
[INFO] +-- example.com/calc
[WARNING] | +-- [OK] TestAdd - 0.01s
[WARNING] | +-- [??] TestRound (needs -tags=slow) - 0s
[WARNING] Tests run: 2, Failures: 0, Errors: 0, Skipped: 1, Time elapsed: 0.02 s - in example.com/calc
[INFO] |
[INFO] +-- com.example.CalculatorTest
[ERROR] | +-- [OK] addsNumbers - 0.012s
[ERROR] | +-- [OK] subtracts - 0.008s
[ERROR] | +-- [XX] divides - 1.5s
[ERROR] | +-- [??] overflows (not supported yet) - 0s
[ERROR] Tests run: 4, Failures: 1, Errors: 0, Skipped: 1, Time elapsed: 1.62 s <<< FAILURE! - in com.example.CalculatorTest
[INFO] |
[INFO] +-- Greeter behaviour (of smoke)
[INFO] | +-- [OK] greets by name - 0.004s
[INFO] | +-- [OK] greets in french - 0.012s
[INFO] Tests run: 2, Failures: 0, Errors: 0, Skipped: 0, Time elapsed: 0.016 s - in Greeter behaviour (of smoke)
`

func TestRender_Examples(t *testing.T) {
	examples, err := filepath.Abs(filepath.Join("..", "examples"))
	require.NoError(t, err)

	reports := filepath.Join(t.TempDir(), "reports")

	cmd, out := newTestRootCmd(t)
	cmd.SetArgs([]string{"--color", "never", "--save", "--reports", reports, "-p", "3", examples + "/..."})
	require.NoError(t, cmd.Execute())

	rendered := out.String()
	require.Truef(t, strings.HasPrefix(rendered, examplesReport), "output:\n%s", rendered)

	totals := strings.TrimPrefix(rendered, examplesReport)
	for _, want := range []string{"Sets", "Tests", "Failures", "8"} {
		assert.Containsf(t, totals, want, "totals:\n%s", totals)
	}

	t.Run("view replays saved reports", func(t *testing.T) {
		cmd, out := newTestRootCmd(t)
		cmd.SetArgs([]string{"view", "--color", "never", "--reports", reports})
		require.NoError(t, cmd.Execute())

		assert.Equal(t, rendered, out.String())
	})

	t.Run("fail on error", func(t *testing.T) {
		cmd, _ := newTestRootCmd(t)
		cmd.SetArgs([]string{"view", "--color", "never", "--reports", reports, "--fail-on-error"})
		assert.ErrorIs(t, cmd.Execute(), domain.ErrTestFailures)
	})
}

func TestRender_NoResultFiles(t *testing.T) {
	cmd, _ := newTestRootCmd(t)
	cmd.SetArgs([]string{"--color", "never", "./..."})

	assert.ErrorIs(t, cmd.Execute(), domain.ErrNoInputs)
}

func TestParsePaths(t *testing.T) {
	paths := parsePaths([]string{"./...", "a.xml"})

	require.Len(t, paths, 2)
	assert.EqualValues(t, "./...", paths[0])
	assert.EqualValues(t, "a.xml", paths[1])
}

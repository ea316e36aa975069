package core_execution

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/buildgrid/internal/app"
	"github.com/vk/buildgrid/internal/testutil"
)

// dryRun runs the harness in dry-run mode with logging silenced, so the
// output buffer contains exactly the printed schedule.
func dryRun(t *testing.T, files map[string]string) []string {
	t.Helper()
	result := testutil.RunBuildTest(t, files, func(cfg *app.Config) {
		cfg.DryRun = true
		cfg.LogLevel = "error"
	})
	require.NoError(t, result.Err)
	return strings.Fields(result.LogOutput)
}

func TestDryRunPrintsTopologicalOrder(t *testing.T) {
	files := map[string]string{
		"aurora.build.hcl": `
			target "filegroup" "tasks" {
				dependencies = ["src/gen:spindle_gen"]
			}
		`,
		"src/gen/gen.build.hcl": `
			target "filegroup" "spindle_gen" {}
		`,
	}

	assert.Equal(t, []string{"src/gen:spindle_gen", ":tasks"}, dryRun(t, files))
}

func TestDryRunIsDeterministic(t *testing.T) {
	files := map[string]string{
		"many.build.hcl": `
			target "filegroup" "zeta" {}
			target "filegroup" "alpha" {}
			target "filegroup" "mike" {}
			target "filegroup" "all" {
				dependencies = [":zeta", ":alpha", ":mike"]
			}
		`,
	}

	first := dryRun(t, files)
	// Independent targets come out in declaration order, not name order.
	assert.Equal(t, []string{":zeta", ":alpha", ":mike", ":all"}, first)

	for i := 0; i < 3; i++ {
		assert.Equal(t, first, dryRun(t, files), "schedule must be identical across runs")
	}
}

func TestDryRunExecutesNothing(t *testing.T) {
	recorder := &testutil.Recorder{}
	files := map[string]string{
		"one.build.hcl": `target "rec" "only" {}`,
	}

	result := testutil.RunBuildTest(t, files, func(cfg *app.Config) {
		cfg.DryRun = true
	}, testutil.RecorderModule{Kind: "rec", Recorder: recorder})

	require.NoError(t, result.Err)
	assert.Empty(t, recorder.Order())
}

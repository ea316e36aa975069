package core_execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/buildgrid/internal/testutil"
)

func TestDependenciesExecuteBeforeDependents(t *testing.T) {
	recorder := &testutil.Recorder{}
	files := map[string]string{
		"aurora.build.hcl": `
			target "rec" "tasks" {
				dependencies = ["src/gen:spindle_gen"]
			}
		`,
		"src/gen/gen.build.hcl": `
			target "rec" "spindle_gen" {}
		`,
	}

	result := testutil.RunBuildTest(t, files, nil,
		testutil.RecorderModule{Kind: "rec", Recorder: recorder})

	require.NoError(t, result.Err)
	assert.Equal(t, []string{"src/gen:spindle_gen", ":tasks"}, recorder.Order())
}

func TestDiamondFanInWaitsForAllBranches(t *testing.T) {
	recorder := &testutil.Recorder{}
	files := map[string]string{
		"diamond.build.hcl": `
			target "rec" "base" {}
			target "rec" "left" {
				dependencies = [":base"]
			}
			target "rec" "right" {
				dependencies = [":base"]
			}
			target "rec" "top" {
				dependencies = [":left", ":right"]
			}
		`,
	}

	result := testutil.RunBuildTest(t, files, nil,
		testutil.RecorderModule{Kind: "rec", Recorder: recorder})

	require.NoError(t, result.Err)
	require.Len(t, recorder.Order(), 4)
	assert.Equal(t, 3, recorder.Index(":top"), "fan-in target must run last")
	assert.Equal(t, 0, recorder.Index(":base"), "shared dependency must run first")
}

func TestFilegroupGraphRunsWithCoreModules(t *testing.T) {
	files := map[string]string{
		"groups.build.hcl": `
			target "filegroup" "all" {
				dependencies = [":gen", ":docs"]
			}
			target "filegroup" "gen" {}
			target "filegroup" "docs" {}
		`,
	}

	result := testutil.RunBuildTest(t, files, nil)
	require.NoError(t, result.Err)
	assert.Contains(t, result.LogOutput, "Execution finished")
}

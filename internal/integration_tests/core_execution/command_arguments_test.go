package core_execution

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/buildgrid/internal/testutil"
)

func TestCommandArgumentsDecodeAndRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix utilities")
	}
	files := map[string]string{
		"gen.build.hcl": `
			target "command" "hello" {
				arguments {
					command = "echo"
					args    = ["hello-from-buildgrid"]
				}
			}
		`,
	}

	result := testutil.RunBuildTest(t, files, nil)
	require.NoError(t, result.Err)
	assert.Contains(t, result.LogOutput, "hello-from-buildgrid")
}

func TestCommandArgumentsSeeInvocationVariables(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix utilities")
	}
	// `test -n` exits non-zero for an empty string, so a successful run
	// proves the interpolations resolved to real values.
	files := map[string]string{
		"vars.build.hcl": `
			target "command" "check_id" {
				arguments {
					command = "test"
					args    = ["-n", "${invocation.id}"]
				}
			}
			target "command" "check_name" {
				arguments {
					command = "test"
					args    = ["-n", "${target.name}"]
				}
			}
		`,
	}

	result := testutil.RunBuildTest(t, files, nil)
	require.NoError(t, result.Err)
}

package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/buildgrid/internal/app"
	"github.com/vk/buildgrid/internal/hclloader"
	"github.com/vk/buildgrid/internal/registry"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunBuildTest provides a standardized harness for running integration tests
// using a default background context.
func RunBuildTest(t *testing.T, files map[string]string, overrides func(*app.Config), modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunBuildTestWithContext(context.Background(), t, files, overrides, modules...)
}

// RunBuildTestWithContext writes the given build files into a temporary
// root, constructs an App over it (recovering startup panics into the
// result), and runs it to completion.
func RunBuildTestWithContext(ctx context.Context, t *testing.T, files map[string]string, overrides func(*app.Config), modules ...registry.Module) *HarnessResult {
	t.Helper()

	rootDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(rootDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig := &app.Config{
		RootPath:  rootDir,
		Workers:   4,
		LogLevel:  "debug",
		LogFormat: "text",
	}
	if overrides != nil {
		overrides(appConfig)
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hclloader.NewLoader(), modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx, appConfig)
	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}

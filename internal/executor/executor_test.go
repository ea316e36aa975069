package executor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/buildgrid/internal/address"
	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/executor"
	"github.com/vk/buildgrid/internal/graph"
	"github.com/vk/buildgrid/internal/metrics"
	"github.com/vk/buildgrid/internal/registry"
	"github.com/vk/buildgrid/internal/testutil"
)

func target(seq int, kind, addr string, deps ...string) *config.Target {
	parsed, err := address.Parse(addr)
	if err != nil {
		panic(err)
	}
	return &config.Target{
		Kind:         kind,
		Name:         parsed.Name,
		Address:      parsed,
		Dependencies: deps,
		Seq:          seq,
	}
}

func buildGraph(t *testing.T, targets ...*config.Target) *graph.Graph {
	t.Helper()
	g, err := graph.Build(context.Background(), &config.Model{Targets: targets})
	require.NoError(t, err)
	return g
}

func newRegistry(t *testing.T, modules ...registry.Module) *registry.Registry {
	t.Helper()
	reg := registry.New()
	for _, m := range modules {
		m.Register(reg)
	}
	return reg
}

func options(workers int) executor.Options {
	return executor.Options{
		Workers: workers,
		RunID:   "test-run",
		Metrics: metrics.New(prometheus.NewRegistry()),
	}
}

func TestRunExecutesDependenciesFirst(t *testing.T) {
	recorder := &testutil.Recorder{}
	reg := newRegistry(t, testutil.RecorderModule{Kind: "rec", Recorder: recorder})

	g := buildGraph(t,
		target(0, "rec", ":top", ":left", ":right"),
		target(1, "rec", ":left", ":base"),
		target(2, "rec", ":right", ":base"),
		target(3, "rec", ":base"),
	)

	err := executor.New(g, reg, options(4)).Run(context.Background())
	require.NoError(t, err)

	order := recorder.Order()
	require.Len(t, order, 4)
	assert.Less(t, recorder.Index(":base"), recorder.Index(":left"))
	assert.Less(t, recorder.Index(":base"), recorder.Index(":right"))
	assert.Less(t, recorder.Index(":left"), recorder.Index(":top"))
	assert.Less(t, recorder.Index(":right"), recorder.Index(":top"))
}

func TestFailureSkipsDependents(t *testing.T) {
	recorder := &testutil.Recorder{}
	boom := errors.New("boom")
	reg := newRegistry(t,
		testutil.RecorderModule{Kind: "rec", Recorder: recorder},
		testutil.FailingModule{Kind: "fail", Err: boom},
	)

	g := buildGraph(t,
		target(0, "rec", ":base"),
		target(1, "fail", ":broken", ":base"),
		target(2, "rec", ":downstream", ":broken"),
	)

	err := executor.New(g, reg, options(2)).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, ":broken")
	// Skip symptoms must not be reported as causes.
	assert.NotContains(t, err.Error(), ":downstream")

	assert.Equal(t, []string{":base"}, recorder.Order())
	downstream := g.Nodes[":downstream"]
	assert.Equal(t, graph.Failed, graph.State(downstream.State.Load()))
	assert.ErrorContains(t, downstream.Error, "skipped due to upstream failure")
}

func TestIndependentTargetsRunConcurrently(t *testing.T) {
	recorder := &testutil.Recorder{}
	tracker := &testutil.ConcurrencyTracker{}
	reg := newRegistry(t, testutil.RecorderModule{
		Kind:     "rec",
		Recorder: recorder,
		Tracker:  tracker,
		Delay:    100 * time.Millisecond,
	})

	g := buildGraph(t,
		target(0, "rec", ":a"),
		target(1, "rec", ":b"),
	)

	err := executor.New(g, reg, options(4)).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, recorder.Order(), 2)
	assert.GreaterOrEqual(t, tracker.Max(), int32(2), "independent targets should overlap")
}

func TestTargetTimeout(t *testing.T) {
	reg := newRegistry(t, testutil.BlockingModule{Kind: "block"})
	g := buildGraph(t, target(0, "block", ":stuck"))

	opts := options(1)
	opts.TargetTimeout = 50 * time.Millisecond

	err := executor.New(g, reg, opts).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorContains(t, err, ":stuck")
}

func TestCancelledContextFailsTheRun(t *testing.T) {
	recorder := &testutil.Recorder{}
	reg := newRegistry(t, testutil.RecorderModule{Kind: "rec", Recorder: recorder})
	g := buildGraph(t,
		target(0, "rec", ":base"),
		target(1, "rec", ":top", ":base"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := executor.New(g, reg, options(2)).Run(ctx)
	require.Error(t, err, "a cancelled run must not report success")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, recorder.Order(), "no target should execute under a cancelled context")
}

func TestZeroWorkersStillRuns(t *testing.T) {
	recorder := &testutil.Recorder{}
	reg := newRegistry(t, testutil.RecorderModule{Kind: "rec", Recorder: recorder})
	g := buildGraph(t, target(0, "rec", ":only"))

	err := executor.New(g, reg, options(0)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{":only"}, recorder.Order())
}

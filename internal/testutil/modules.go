package testutil

import (
	"context"
	"time"

	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/registry"
)

// RecorderModule registers a kind whose runner records each executed target
// into the given Recorder. An optional delay simulates work.
type RecorderModule struct {
	Kind     string
	Recorder *Recorder
	Tracker  *ConcurrencyTracker
	Delay    time.Duration
}

// Register implements registry.Module.
func (m RecorderModule) Register(r *registry.Registry) {
	r.RegisterRunner(&registry.Runner{
		Kind:        m.Kind,
		Description: "Test runner that records executed targets.",
		Run: func(ctx context.Context, target *config.Target, _ any) error {
			var exit func()
			if m.Tracker != nil {
				exit = m.Tracker.Enter()
			}
			if m.Delay > 0 {
				select {
				case <-time.After(m.Delay):
				case <-ctx.Done():
					if exit != nil {
						exit()
					}
					return ctx.Err()
				}
			}
			if exit != nil {
				exit()
			}
			m.Recorder.Record(target.ID())
			return nil
		},
	})
}

// FailingModule registers a kind whose runner always returns the given error.
type FailingModule struct {
	Kind string
	Err  error
}

// Register implements registry.Module.
func (m FailingModule) Register(r *registry.Registry) {
	r.RegisterRunner(&registry.Runner{
		Kind:        m.Kind,
		Description: "Test runner that always fails.",
		Run: func(ctx context.Context, _ *config.Target, _ any) error {
			return m.Err
		},
	})
}

// BlockingModule registers a kind whose runner blocks until its context is
// cancelled, used to exercise timeout and cancellation paths.
type BlockingModule struct {
	Kind string
}

// Register implements registry.Module.
func (m BlockingModule) Register(r *registry.Registry) {
	r.RegisterRunner(&registry.Runner{
		Kind:        m.Kind,
		Description: "Test runner that blocks until cancelled.",
		Run: func(ctx context.Context, _ *config.Target, _ any) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})
}

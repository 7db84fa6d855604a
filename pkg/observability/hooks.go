// Package observability provides hooks for instrumenting the license
// pipeline.
//
// Libraries emit events through the registered hooks; the defaults are no-ops.
// The CLI registers a logging implementation at startup:
//
//	observability.SetPipelineHooks(myHooks)
//
// Libraries call hooks around each stage:
//
//	observability.Pipeline().OnMetadataStart(ctx, manifest)
//	// ... run cargo metadata ...
//	observability.Pipeline().OnMetadataComplete(ctx, manifest, len(pkgs), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the license pipeline.
type PipelineHooks interface {
	// Dependency graph events
	OnMetadataStart(ctx context.Context, manifest string)
	OnMetadataComplete(ctx context.Context, manifest string, packages int, duration time.Duration, err error)

	// Per-package resolution events. They may be called concurrently.
	OnResolveStart(ctx context.Context, pkg string)
	OnResolveComplete(ctx context.Context, pkg string, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnMetadataStart(context.Context, string)                             {}
func (NoopPipelineHooks) OnMetadataComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnResolveStart(context.Context, string)                              {}
func (NoopPipelineHooks) OnResolveComplete(context.Context, string, time.Duration, error)     {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}

package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licensetool/pkg/errors"
	"github.com/matzehuels/licensetool/pkg/observability"
)

// logHooks reports pipeline events as debug logs.
type logHooks struct {
	logger *log.Logger
}

var _ observability.PipelineHooks = (*logHooks)(nil)

func (h *logHooks) OnMetadataStart(_ context.Context, manifest string) {
	h.logger.Debug("Running cargo metadata", "manifest", manifest)
}

func (h *logHooks) OnMetadataComplete(_ context.Context, manifest string, packages int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("cargo metadata failed", "manifest", manifest, "code", errors.GetCode(err), "duration", d.Round(time.Millisecond))
		return
	}
	h.logger.Debug("cargo metadata finished", "manifest", manifest, "packages", packages, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnResolveStart(context.Context, string) {}

func (h *logHooks) OnResolveComplete(_ context.Context, pkg string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Unresolved", "package", pkg, "code", errors.GetCode(err))
		return
	}
	h.logger.Debug("Resolved", "package", pkg, "duration", d.Round(time.Microsecond))
}

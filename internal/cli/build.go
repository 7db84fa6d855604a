package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licensetool/pkg/copyright"
	"github.com/matzehuels/licensetool/pkg/errors"
	"github.com/matzehuels/licensetool/pkg/overrides"
	"github.com/matzehuels/licensetool/pkg/report"
	"github.com/matzehuels/licensetool/pkg/resolve"
)

// build runs the full pipeline and returns canonically ordered report rows.
// Nothing is written; a failure at any stage returns before any output.
func (c *CLI) build(ctx context.Context) ([]report.Row, error) {
	logger := loggerFromContext(ctx)

	store, err := c.loadOverrides(logger)
	if err != nil {
		return nil, err
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Running cargo metadata...")
	spinner.Start()
	pkgs, err := c.Source(ctx, c.opts.cargo())
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	prog.done("Loaded " + pluralize(len(pkgs), "dependency", "dependencies"))

	prog = newProgress(logger)
	r := resolve.New(store, copyright.New(),
		resolve.WithJobs(c.opts.jobs),
		resolve.WithFailFast(c.opts.failFast),
	)
	res, err := r.ResolveAll(ctx, pkgs)
	if err != nil {
		c.reportProblems(err)
		return nil, err
	}
	for _, id := range res.MissingCopyright {
		logger.Warn("No copyright found", "package", id.String())
	}

	rows := report.Collapse(res.Records)
	prog.done("Resolved " + pluralize(len(rows), "component", "components"))
	return rows, nil
}

func (c *CLI) loadOverrides(logger *log.Logger) (*overrides.Store, error) {
	path, required := c.configPath()
	store, err := overrides.Load(path, required)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded overrides", "path", path, "entries", store.Len())
	for _, key := range store.EmptyKeys() {
		logger.Warn("Override sets neither origin nor license", "key", key)
	}
	return store, nil
}

// reportProblems prints every per-package failure of an aggregate error.
func (c *CLI) reportProblems(err error) {
	var e *errors.Error
	if !asError(err, &e) {
		return
	}
	for _, p := range flatten(e) {
		c.printError("%s", errors.UserMessage(p))
	}
}

// flatten expands nested aggregates into their leaf problems.
func flatten(e *errors.Error) []error {
	var out []error
	for _, p := range e.Problems() {
		var inner *errors.Error
		if asError(p, &inner) && len(inner.Problems()) > 0 {
			out = append(out, flatten(inner)...)
			continue
		}
		out = append(out, p)
	}
	return out
}

func asError(err error, target **errors.Error) bool {
	e, ok := err.(*errors.Error)
	if ok {
		*target = e
	}
	return ok
}

// Package resolve merges dependency metadata, overrides and copyright scans
// into the records written to the license report.
//
// # Precedence
//
// For each package, fields are resolved independently:
//
//   - License: override (version-scoped, then bare name), then the declared
//     license. Missing both is a MISSING_LICENSE error.
//   - Origin: override, then repository, then git source, then homepage.
//     Missing all is a MISSING_ORIGIN error.
//   - Copyright: whatever the [Scanner] finds in the package directory. An
//     empty copyright is recorded and reported, never fatal.
//
// # Fan-out
//
// [Resolver.ResolveAll] resolves packages concurrently. Results are returned
// in canonical order regardless of completion order, and every package is
// attempted unless fail-fast is enabled.
package resolve

import (
	"context"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/licensetool/pkg/deps"
	"github.com/matzehuels/licensetool/pkg/observability"
	"github.com/matzehuels/licensetool/pkg/errors"
	"github.com/matzehuels/licensetool/pkg/overrides"
)

// Scanner extracts a copyright line from a package directory.
type Scanner interface {
	Scan(dir, declared string) (string, bool)
}

// Record is the resolved license information for one package.
type Record struct {
	Name      string
	Version   string
	License   string
	Origin    string
	Copyright string
}

// ID returns the package identity of the record.
func (r Record) ID() deps.PackageID {
	return deps.PackageID{Name: r.Name, Version: r.Version}
}

// Result holds the outcome of resolving a dependency set.
type Result struct {
	Records          []Record         // Canonically ordered records
	MissingCopyright []deps.PackageID // Packages recorded with an empty copyright
}

// Resolver resolves packages against an override store and a scanner.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	overrides *overrides.Store
	scanner   Scanner
	jobs      int
	failFast  bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithJobs sets the number of packages resolved concurrently.
// Values below 1 select runtime.NumCPU().
func WithJobs(n int) Option {
	return func(r *Resolver) { r.jobs = n }
}

// WithFailFast stops ResolveAll at the first failing package.
func WithFailFast(enabled bool) Option {
	return func(r *Resolver) { r.failFast = enabled }
}

// New creates a Resolver. A nil store behaves like an empty one.
func New(store *overrides.Store, scanner Scanner, opts ...Option) *Resolver {
	if store == nil {
		store = overrides.Empty()
	}
	r := &Resolver{overrides: store, scanner: scanner}
	for _, opt := range opts {
		opt(r)
	}
	if r.jobs < 1 {
		r.jobs = runtime.NumCPU()
	}
	return r
}

// Resolve produces the record for a single package. When both the license
// and the origin are missing, the returned error reports both.
func (r *Resolver) Resolve(pkg deps.Package) (Record, error) {
	o, _ := r.overrides.Lookup(pkg.ID)

	license := resolveLicense(pkg, o)
	origin := resolveOrigin(pkg, o)

	var problems []error
	if license == "" {
		problems = append(problems, errors.New(errors.ErrCodeMissingLicense, "package %s is missing a license", pkg.ID))
	}
	if origin == "" {
		problems = append(problems, errors.New(errors.ErrCodeMissingOrigin, "package %s is missing a repository", pkg.ID))
	}
	switch len(problems) {
	case 0:
	case 1:
		return Record{}, problems[0]
	default:
		return Record{}, errors.Aggregate(errors.ErrCodeResolutionFailed, problems, "package %s is missing a license and a repository", pkg.ID)
	}

	var copyright string
	if r.scanner != nil {
		copyright, _ = r.scanner.Scan(pkg.Dir, pkg.LicenseFile)
	}

	return Record{
		Name:      pkg.ID.Name,
		Version:   pkg.ID.Version,
		License:   license,
		Origin:    origin,
		Copyright: copyright,
	}, nil
}

func resolveLicense(pkg deps.Package, o overrides.Override) string {
	if o.License != nil {
		return strings.TrimSpace(*o.License)
	}
	return normalizeLicense(pkg.License)
}

// normalizeLicense rewrites the legacy "/" separator as " OR ".
func normalizeLicense(expr string) string {
	expr = strings.TrimSpace(expr)
	if !strings.Contains(expr, "/") {
		return expr
	}
	parts := strings.Split(expr, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, " OR ")
}

func resolveOrigin(pkg deps.Package, o overrides.Override) string {
	if o.Origin != nil {
		return strings.TrimSpace(*o.Origin)
	}
	if repo := strings.TrimSpace(pkg.Repository); repo != "" {
		return stripGit(repo)
	}
	if git := pkg.GitSource(); git != "" {
		return stripGit(git)
	}
	return strings.TrimSpace(pkg.HomePage)
}

func stripGit(s string) string {
	s = strings.TrimSuffix(s, ".git")
	return strings.TrimSuffix(s, "/")
}

// ResolveAll resolves every package. On failure the returned error is a
// RESOLUTION_FAILED aggregate listing each failing package, and the Result
// is nil so no partial report can be written.
func (r *Resolver) ResolveAll(ctx context.Context, pkgs []deps.Package) (*Result, error) {
	ordered := slices.Clone(pkgs)
	deps.Sort(ordered)

	records := make([]Record, len(ordered))
	failures := make([]error, len(ordered))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	for i, pkg := range ordered {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hooks := observability.Pipeline()
			hooks.OnResolveStart(gctx, pkg.ID.String())
			start := time.Now()
			rec, err := r.Resolve(pkg)
			hooks.OnResolveComplete(gctx, pkg.ID.String(), time.Since(start), err)
			if err != nil {
				failures[i] = err
				if r.failFast {
					return err
				}
				return nil
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil && !r.failFast {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var problems []error
	for _, err := range failures {
		if err != nil {
			problems = append(problems, err)
		}
	}
	if len(problems) > 0 {
		return nil, errors.Aggregate(errors.ErrCodeResolutionFailed, problems, "could not resolve %d of %d packages", len(problems), len(ordered))
	}

	res := &Result{Records: records}
	for _, rec := range records {
		if rec.Copyright == "" {
			res.MissingCopyright = append(res.MissingCopyright, rec.ID())
		}
	}
	return res, nil
}

// Package deps defines the dependency data consumed by the license pipeline.
//
// # Overview
//
// A dependency graph source (see [github.com/matzehuels/licensetool/pkg/deps/cargo])
// reduces a project's resolved dependency graph to a flat list of [Package]
// values. Each one carries the metadata a package manager reports:
//
//   - ID: name and version ([PackageID])
//   - License: the declared license expression, if any
//   - Repository, HomePage: source URLs, if any
//   - Dir: the package's source directory on disk
//   - LicenseFile: the declared license file, relative to Dir
//   - Source: where the package came from (registry or git); empty for local packages
//
// Packages are read-only once produced. Downstream stages never mutate them.
//
// # Ordering
//
// [Compare] and [Sort] define the canonical order used by the report: by
// name, then by semantic version.
package deps

package deps

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// PackageID uniquely identifies a node in the dependency graph.
type PackageID struct {
	Name    string // Package name
	Version string // Semantic version (e.g., "1.0.193")
}

// String returns the "name-version" form used in logs and override keys.
func (id PackageID) String() string {
	if id.Version == "" {
		return id.Name
	}
	return id.Name + "-" + id.Version
}

// Package holds the raw metadata reported for one dependency.
type Package struct {
	ID          PackageID // Package identity
	License     string    // Declared license expression (may be empty)
	Repository  string    // Source repository URL (may be empty)
	HomePage    string    // Project homepage URL (may be empty)
	Dir         string    // Source directory on disk
	LicenseFile string    // Declared license file, relative to Dir (may be empty)
	Source      string    // Source descriptor, e.g. "registry+https://..." or "git+https://..."
}

// IsLocal reports whether the package is a workspace member or path dependency.
func (p *Package) IsLocal() bool { return p.Source == "" }

// GitSource returns the repository URL for git-sourced packages, without
// the "git+" prefix and any query or fragment. Returns "" for other sources.
func (p *Package) GitSource() string {
	git, ok := strings.CutPrefix(p.Source, "git+")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(git, "?#"); i >= 0 {
		git = git[:i]
	}
	return git
}

// Compare orders package IDs by name, then by semantic version.
// Versions that are not valid semver fall back to string comparison.
func Compare(a, b PackageID) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return CompareVersions(a.Version, b.Version)
}

// CompareVersions compares two version strings semantically.
func CompareVersions(a, b string) int {
	va, vb := "v"+a, "v"+b
	if semver.IsValid(va) && semver.IsValid(vb) {
		if c := semver.Compare(va, vb); c != 0 {
			return c
		}
	}
	return cmp.Compare(a, b)
}

// Sort sorts packages into canonical order in place.
func Sort(pkgs []Package) {
	slices.SortFunc(pkgs, func(a, b Package) int { return Compare(a.ID, b.ID) })
}

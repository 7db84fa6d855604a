package cargo

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/licensetool/pkg/deps"
	"github.com/matzehuels/licensetool/pkg/errors"
	"github.com/matzehuels/licensetool/pkg/observability"
)

// DefaultManifest is the manifest used when Options.ManifestPath is empty.
const DefaultManifest = "Cargo.toml"

// Options configures the cargo metadata invocation.
type Options struct {
	ManifestPath      string   // Path to Cargo.toml (default: "Cargo.toml")
	Features          []string // Features to activate
	AllFeatures       bool     // Activate all available features
	NoDefaultFeatures bool     // Do not activate the default feature
	Cargo             string   // cargo binary (default: $CARGO or "cargo")
}

// Args returns the cargo command-line arguments for these options.
func (o Options) Args() []string {
	args := []string{"metadata", "--format-version", "1", "--manifest-path", o.manifest()}
	if len(o.Features) > 0 {
		args = append(args, "--features", strings.Join(o.Features, ","))
	}
	if o.AllFeatures {
		args = append(args, "--all-features")
	}
	if o.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}
	return args
}

func (o Options) manifest() string {
	if o.ManifestPath == "" {
		return DefaultManifest
	}
	return o.ManifestPath
}

func (o Options) binary() string {
	if o.Cargo != "" {
		return o.Cargo
	}
	if env := os.Getenv("CARGO"); env != "" {
		return env
	}
	return "cargo"
}

// Load runs cargo metadata and returns the distributed dependencies.
func Load(ctx context.Context, opts Options) (pkgs []deps.Package, err error) {
	manifest := opts.manifest()
	hooks := observability.Pipeline()
	hooks.OnMetadataStart(ctx, manifest)
	start := time.Now()
	defer func() {
		hooks.OnMetadataComplete(ctx, manifest, len(pkgs), time.Since(start), err)
	}()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, opts.binary(), opts.Args()...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrap(errors.ErrCodeMetadata, err, "running `cargo metadata` failed: %s", msg)
		}
		return nil, errors.Wrap(errors.ErrCodeMetadata, err, "running `cargo metadata` failed")
	}
	return Parse(stdout.Bytes())
}

// Parse decodes cargo metadata JSON and returns the distributed dependencies
// in canonical order.
func Parse(data []byte) ([]deps.Package, error) {
	var md metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMetadata, err, "could not decode cargo metadata")
	}
	if md.Resolve == nil {
		return nil, errors.New(errors.ErrCodeMetadata, "metadata is missing a dependency tree")
	}

	ids := filterDeps(md.Resolve)

	byID := make(map[string]*cargoPackage, len(md.Packages))
	for i := range md.Packages {
		byID[md.Packages[i].ID] = &md.Packages[i]
	}

	pkgs := make([]deps.Package, 0, len(ids))
	for id := range ids {
		cp, ok := byID[id]
		if !ok {
			return nil, errors.New(errors.ErrCodeMetadata, "missing package %s", id)
		}
		if cp.Source == nil {
			continue
		}
		name, err := manifestName(cp.ManifestPath)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, cp.toPackage(name))
	}

	deps.Sort(pkgs)
	return pkgs, nil
}

// filterDeps returns the IDs of every package reachable from the root (or from
// every node, for virtual workspaces) through normal dependency edges.
func filterDeps(r *resolve) map[string]bool {
	nodes := make(map[string]*node, len(r.Nodes))
	for i := range r.Nodes {
		nodes[r.Nodes[i].ID] = &r.Nodes[i]
	}

	found := make(map[string]bool)
	var walk func(id string)
	walk = func(id string) {
		n, ok := nodes[id]
		if !ok {
			return
		}
		for _, d := range n.Deps {
			if !d.isNormal() || found[d.Pkg] {
				continue
			}
			found[d.Pkg] = true
			walk(d.Pkg)
		}
	}

	if r.Root != nil {
		walk(*r.Root)
	} else {
		for _, n := range r.Nodes {
			walk(n.ID)
		}
	}
	return found
}

// manifestName reads the package name from a crate's own Cargo.toml.
func manifestName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "could not read manifest in %s", path)
	}
	var m cargoFile
	if err := toml.Unmarshal(data, &m); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "could not parse manifest in %s", path)
	}
	if m.Package.Name == "" {
		return "", errors.New(errors.ErrCodeIO, "manifest in %s has no package name", path)
	}
	return m.Package.Name, nil
}

func (cp *cargoPackage) toPackage(name string) deps.Package {
	return deps.Package{
		ID:          deps.PackageID{Name: name, Version: cp.Version},
		Dir:         filepath.Dir(cp.ManifestPath),
		LicenseFile: deref(cp.LicenseFile),
		License:     deref(cp.License),
		Repository:  deref(cp.Repository),
		HomePage:    deref(cp.HomePage),
		Source:      deref(cp.Source),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type metadata struct {
	Packages []cargoPackage `json:"packages"`
	Resolve  *resolve       `json:"resolve"`
}

type cargoPackage struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Version      string  `json:"version"`
	License      *string `json:"license"`
	LicenseFile  *string `json:"license_file"`
	Source       *string `json:"source"`
	Repository   *string `json:"repository"`
	HomePage     *string `json:"homepage"`
	ManifestPath string  `json:"manifest_path"`
}

type resolve struct {
	Nodes []node  `json:"nodes"`
	Root  *string `json:"root"`
}

type node struct {
	ID   string    `json:"id"`
	Deps []nodeDep `json:"deps"`
}

type nodeDep struct {
	Pkg      string    `json:"pkg"`
	DepKinds []depKind `json:"dep_kinds"`
}

type depKind struct {
	Kind *string `json:"kind"`
}

// isNormal reports whether any of the edge's kinds is a normal dependency.
// cargo reports normal dependencies with a null kind.
func (d nodeDep) isNormal() bool {
	for _, k := range d.DepKinds {
		if k.Kind == nil || *k.Kind == "normal" {
			return true
		}
	}
	return false
}

type cargoFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

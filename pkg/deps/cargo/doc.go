// Package cargo obtains a Rust project's dependency graph from cargo.
//
// # Source
//
// [Load] runs `cargo metadata --format-version 1` and hands its output to
// [Parse]. [Parse] reduces the resolved graph to the packages that end up in
// a built artifact:
//
//   - Only "normal" dependency edges are followed; packages reachable solely
//     through dev or build dependencies are excluded.
//   - When the resolve graph has a root, traversal starts there. For a
//     virtual workspace every member is a starting point.
//   - Local packages (workspace members and path dependencies, which carry
//     no source) are dropped.
//
// Package names are re-read from each package's own Cargo.toml so the
// report uses the name as published.
//
// # Features
//
// [Options] passes feature selection through to cargo, since optional
// dependencies change the resolved graph:
//
//	pkgs, err := cargo.Load(ctx, cargo.Options{
//	    ManifestPath: "Cargo.toml",
//	    Features:     []string{"tls"},
//	})
package cargo

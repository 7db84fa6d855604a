// Package pkg provides the libraries behind licensetool.
//
// # Overview
//
// licensetool keeps a CSV inventory of the third-party licenses a Cargo
// project ships. The pkg directory holds one package per pipeline stage:
//
//  1. [deps] and [deps/cargo] - the dependency graph, read from cargo metadata
//  2. [overrides] - user corrections from license-tool.toml
//  3. [copyright] - copyright lines scanned from license files on disk
//  4. [resolve] - merges the above into one record per package
//  5. [report] - CSV encoding and comparison of the report
//
// [errors], [observability] and [buildinfo] support all stages.
//
// # Architecture
//
//	cargo metadata
//	      ↓
//	 [deps/cargo] (normal dependencies, local packages dropped)
//	      ↓
//	 [resolve] ← [overrides], [copyright]
//	      ↓
//	 [report] (collapse, encode, check)
//	      ↓
//	 LICENSE-3rdparty.csv
//
// # Quick Start
//
//	pkgs, err := cargo.Load(ctx, cargo.Options{ManifestPath: "Cargo.toml"})
//	if err != nil {
//	    return err
//	}
//	store, err := overrides.Load(overrides.DefaultFilename, false)
//	if err != nil {
//	    return err
//	}
//	res, err := resolve.New(store, copyright.New()).ResolveAll(ctx, pkgs)
//	if err != nil {
//	    return err
//	}
//	return report.Encode(os.Stdout, report.Collapse(res.Records))
package pkg

// Package cli implements the licensetool command-line interface.
//
// The commands build the third-party license report for a Cargo project:
//   - dump: print the report to standard output
//   - write: atomically replace the report file
//   - check: verify the report file is up to date
//
// All commands share the same pipeline: load overrides, run cargo metadata,
// resolve every package, collapse into report rows. Logs go to stderr via
// charmbracelet/log; results are printed to stdout.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/licensetool/pkg/buildinfo"
	"github.com/matzehuels/licensetool/pkg/deps"
	"github.com/matzehuels/licensetool/pkg/deps/cargo"
	"github.com/matzehuels/licensetool/pkg/observability"
	"github.com/matzehuels/licensetool/pkg/overrides"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "licensetool"

	// DefaultReport is the report file written and checked by default.
	DefaultReport = "LICENSE-3rdparty.csv"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// SourceFunc loads the dependency graph of a project.
type SourceFunc func(ctx context.Context, opts cargo.Options) ([]deps.Package, error)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer  // command results; defaults to os.Stdout
	Source SourceFunc // defaults to cargo.Load

	opts options
}

// options holds the persistent flags shared by every command.
type options struct {
	config            string
	manifestPath      string
	output            string
	features          []string
	allFeatures       bool
	noDefaultFeatures bool
	jobs              int
	failFast          bool
}

func (o *options) cargo() cargo.Options {
	return cargo.Options{
		ManifestPath:      o.manifestPath,
		Features:          o.features,
		AllFeatures:       o.allFeatures,
		NoDefaultFeatures: o.noDefaultFeatures,
	}
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Source: cargo.Load,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Licensetool tracks the licenses of a Cargo project's dependencies",
		Long: `Licensetool collects license metadata for every dependency of a Cargo project,
applies overrides from license-tool.toml, and maintains the LICENSE-3rdparty.csv report.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetPipelineHooks(&logHooks{logger: c.Logger})
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.opts.config, "config", "c", "", "override configuration file (default \""+overrides.DefaultFilename+"\")")
	flags.StringVar(&c.opts.manifestPath, "manifest-path", "", "path to Cargo.toml (default \""+cargo.DefaultManifest+"\")")
	flags.StringVarP(&c.opts.output, "output", "o", DefaultReport, "report file to write or check")
	flags.StringSliceVarP(&c.opts.features, "features", "F", nil, "comma-separated list of features to activate")
	flags.BoolVar(&c.opts.allFeatures, "all-features", false, "activate all available features")
	flags.BoolVar(&c.opts.noDefaultFeatures, "no-default-features", false, "do not activate the default feature")
	flags.IntVarP(&c.opts.jobs, "jobs", "j", 0, "packages resolved in parallel (default: number of CPUs)")
	flags.BoolVar(&c.opts.failFast, "fail-fast", false, "stop at the first package that cannot be resolved")
	root.MarkFlagsMutuallyExclusive("features", "all-features")

	// Register all subcommands
	root.AddCommand(c.dumpCommand())
	root.AddCommand(c.writeCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Paths
// =============================================================================

// configPath returns the override file to load and whether it must exist.
func (c *CLI) configPath() (string, bool) {
	if c.opts.config != "" {
		return c.opts.config, true
	}
	return overrides.DefaultFilename, false
}

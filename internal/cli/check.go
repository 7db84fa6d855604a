package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/licensetool/pkg/errors"
	"github.com/matzehuels/licensetool/pkg/report"
)

// checkCommand creates the command that verifies the report file.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the license report file is up to date",
		Long: `Check that the license report file is up to date.

The report is regenerated in memory and compared with the file. Every
mismatched field, missing or extraneous component is listed, and the command
exits non-zero if anything differs, including row order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			return c.check(c.opts.output, rows)
		},
	}
}

func (c *CLI) check(path string, rows []report.Row) error {
	persisted, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeIO, "%s does not exist; run `%s write` to create it", path, appName)
		}
		return errors.Wrap(errors.ErrCodeIO, err, "could not read %s", path)
	}

	result, err := report.Check(persisted, rows)
	if err != nil {
		return errors.Wrap(errors.GetCode(err), err, "could not read current %s", path)
	}
	if result.Identical {
		c.printSuccess("%s is up to date (%s)", path, pluralize(len(rows), "component", "components"))
		return nil
	}

	c.printComparison(result)
	return errors.New(errors.ErrCodeReportOutdated, "current %s is not up to date; run `%s write` to update it", path, appName)
}

func (c *CLI) printComparison(result report.Comparison) {
	last := ""
	for _, d := range result.Differences {
		if d.Component != last {
			c.printError("Record for %s has changed", StyleHighlight.Render(d.Component))
			last = d.Component
		}
		c.printDetail("%s:", d.Field)
		c.printChange(d.Expected, d.Actual)
	}
	for _, r := range result.Missing {
		c.printError("Record for %s is missing", StyleHighlight.Render(r.Component))
	}
	for _, r := range result.Extraneous {
		c.printError("Extraneous record for %s", StyleHighlight.Render(r.Component))
	}
	if result.LayoutDrift {
		c.printWarning("Records match but are not in canonical order or format")
	}
	c.printInfo("%s", pluralize(len(result.Differences)+len(result.Missing)+len(result.Extraneous), "difference", "differences"))
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/licensetool/pkg/report"
)

// dumpCommand creates the command that prints the report to stdout.
func (c *CLI) dumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the generated license report to standard output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			return report.Encode(c.Out, rows)
		},
	}
}

package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/licensetool/pkg/errors"
	"github.com/matzehuels/licensetool/pkg/report"
)

// writeCommand creates the command that replaces the report file.
func (c *CLI) writeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "write",
		Short: "Write the generated license report to the report file",
		Long: `Write the generated license report to the report file.

The file is only replaced when every dependency resolves; otherwise all
problems are listed and the existing file is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			if err := writeReport(c.opts.output, rows); err != nil {
				return err
			}
			c.printSuccess("Wrote %s", pluralize(len(rows), "component", "components"))
			c.printFile(c.opts.output)
			return nil
		},
	}
}

// writeReport atomically replaces path with the encoded rows:
// tmp file, fsync, rename.
func writeReport(path string, rows []report.Row) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "could not create temporary report for %s", path)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := report.Encode(tmp, rows); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "could not write %s", tmp.Name())
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "could not write %s", tmp.Name())
	}
	if err := tmp.Chmod(0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "could not set permissions on %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "could not write %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "could not rename %s to %s", tmp.Name(), path)
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		dir    string
		stdout bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal as CSV",
		Long: `Write every trade to trading_journal_<unix-ms>.csv in the export
directory (export.dir in the config unless --dir is given).

Examples:
  tradejournal export
  tradejournal export --dir ~/backups
  tradejournal export --stdout > trades.csv`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory to write into")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write CSV to stdout instead of a file")
	cmd.MarkFlagsMutuallyExclusive("dir", "stdout")

	cmd.RunE = c.run(func(cmd *cobra.Command, args []string, s *session) error {
		if stdout {
			if err := s.app.WriteCSV(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("export csv: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}
		target := dir
		if target == "" {
			target = s.cfg.Export.Dir
		}
		path, err := s.app.ExportCSV(target)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trades to %s\n", s.app.Store().Len(), path)
		return nil
	})
	return cmd
}

func newImportCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Append trades from a CSV file",
		Long: `Append the rows of a CSV file to the journal. Columns are matched
by header name; missing text columns take the blank-form defaults and
missing numeric columns are 0. P/L, R-multiple and result are kept as
written, not derived again. A file that cannot be read imports nothing.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, args []string, s *session) error {
		added, err := s.app.ImportFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades from %s\n", len(added), args[0])
		return nil
	})
	return cmd
}

package cli

import (
	"fmt"

	"github.com/csvcheck/csvcheck/internal/adapters/outbound/tui"
	"github.com/spf13/cobra"
)

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		rows       int
	)

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show the header, first rows and row count of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, err := readUpload(args[0])
			if err != nil {
				return err
			}

			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("rows") {
				if rows < 0 {
					return fmt.Errorf("--rows must be >= 0")
				}
				cfg.PreviewRows = rows
			}

			pv, err := previewService(cfg).Preview(upload)
			if err != nil {
				return fmt.Errorf("previewing %s: %w", upload.Name, err)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), pv)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderPreview(pv))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the preview as JSON")
	cmd.Flags().IntVar(&rows, "rows", 0, "Number of rows to show (default from config)")

	return cmd
}

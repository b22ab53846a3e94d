package cli

import (
	"fmt"

	"github.com/csvcheck/csvcheck/internal/adapters/outbound/tui"
	"github.com/spf13/cobra"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		clearCache bool
	)

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Re-render the last response for a file without uploading it",
		Long:  "Look up the stored response for the file's current bytes and render it. Changing the file invalidates the lookup.",
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
			svc := opts.validateService(cfg)

			if clearCache {
				if err := svc.Forget(upload); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared stored response for %s\n", upload.Name)
				return nil
			}

			run, err := svc.Show(upload)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), newRunReport(run))
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(run.Blocks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the status and display blocks as JSON")
	cmd.Flags().BoolVar(&clearCache, "clear", false, "Delete the stored response instead of showing it")

	return cmd
}

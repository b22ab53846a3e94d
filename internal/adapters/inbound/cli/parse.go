package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/csvcheck/csvcheck/internal/adapters/outbound/tui"
	"github.com/csvcheck/csvcheck/internal/domain"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Render a raw response text without calling the service",
		Long:  "Parse response text (as found at [0].output.message.content[0].text) from a file or stdin and render it.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) > 0 {
				src = args[0]
			}

			var (
				data []byte
				err  error
			)
			if src == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(src)
			}
			if err != nil {
				return fmt.Errorf("reading response text: %w", err)
			}

			resp := domain.ParseResponse(string(data))
			blocks := domain.BuildBlocks(resp)

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), struct {
					Status domain.StatusLevel `json:"status,omitempty"`
					Blocks []domain.Block     `json:"blocks"`
				}{resp.Status, blocks})
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(blocks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the status and display blocks as JSON")

	return cmd
}

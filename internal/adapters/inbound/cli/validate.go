package cli

import (
	"fmt"
	"os"

	"github.com/csvcheck/csvcheck/internal/adapters/outbound/tui"
	"github.com/csvcheck/csvcheck/internal/application"
	"github.com/csvcheck/csvcheck/internal/domain"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		useCache   bool
		noPreview  bool
		ciMode     bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Upload a CSV file for validation and show the report",
		Long: "Send the file bytes verbatim to the validation endpoint and render the response as a status " +
			"banner and report sections. Only .csv and .txt files are accepted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, err := readUpload(args[0])
			if err != nil {
				return err
			}

			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !jsonOutput {
				if !noPreview {
					pv, err := previewService(cfg).Preview(upload)
					if err != nil {
						fmt.Fprint(out, tui.RenderPreviewError(err))
					} else {
						fmt.Fprint(out, tui.RenderPreview(pv))
					}
				}
				fmt.Fprint(out, "\n"+tui.RenderUploaded(upload.Name))
			}

			var spin *tui.Spinner
			if !jsonOutput && isatty.IsTerminal(os.Stderr.Fd()) {
				spin = tui.NewSpinner(cmd.ErrOrStderr(), "Validating "+upload.Name+"...")
				spin.Start()
			}
			run, err := opts.validateService(cfg).Validate(cmd.Context(), upload, application.ValidateOptions{UseCache: useCache})
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := writeJSON(out, newRunReport(run)); err != nil {
					return err
				}
			} else {
				fmt.Fprint(out, tui.RenderReport(run.Blocks))
			}

			if ciMode {
				return ciResult(run.Status(), strict)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the status and display blocks as JSON")
	cmd.Flags().BoolVar(&useCache, "cached", false, "Reuse the stored response if the file is unchanged")
	cmd.Flags().BoolVar(&noPreview, "no-preview", false, "Skip the file preview")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "Exit non-zero when the status is RED")
	cmd.Flags().BoolVar(&strict, "strict", false, "With --ci, also fail on YELLOW")

	return cmd
}

// ciResult turns a status into a CI verdict.
func ciResult(status domain.StatusLevel, strict bool) error {
	switch {
	case status == domain.StatusRed:
		return fmt.Errorf("validation status is %s", status)
	case strict && status == domain.StatusYellow:
		return fmt.Errorf("validation status is %s (strict mode)", status)
	default:
		return nil
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/csvcheck/csvcheck/internal/adapters/outbound/config"
	"github.com/csvcheck/csvcheck/internal/domain"
	"github.com/spf13/cobra"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .csvcheck.yaml configuration file",
		Long:  "Create a .csvcheck.yaml with default settings. The token is never written; set CSVCHECK_TOKEN instead.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.DefaultFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.DefaultFileName)
				}
			}

			cfg := domain.DefaultConfig()
			cfg.Endpoint = opts.endpoint
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(generateConfig(cfg)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.DefaultFileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .csvcheck.yaml")

	return cmd
}

func generateConfig(cfg domain.Config) string {
	endpoint := fmt.Sprintf("endpoint: %q\n", cfg.Endpoint)
	if cfg.Endpoint == "" {
		endpoint = "# endpoint: \"https://validator.example.com/webhook/validate\"\n"
	}

	return fmt.Sprintf(`# csvcheck configuration
# The bearer token is read from CSVCHECK_TOKEN and should not be committed.

%s
timeout: %s
preview_rows: %d
state_dir: %s

server:
  addr: %q
  rate_limit: %.2f
  burst: %d
  max_upload_bytes: %d
`,
		endpoint,
		cfg.Timeout,
		cfg.PreviewRows,
		cfg.StateDir,
		cfg.Server.Addr,
		cfg.Server.RateLimit,
		cfg.Server.Burst,
		cfg.Server.MaxUploadBytes,
	)
}

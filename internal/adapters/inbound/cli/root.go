package cli

import (
	"context"
	"fmt"

	"github.com/csvcheck/csvcheck/internal/adapters/outbound/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "csvcheck",
		Short: "Validate CSV files against a remote validation service",
		Long: "csvcheck uploads a CSV or TXT file to the configured validation endpoint and renders " +
			"the returned report: a status banner followed by errors, recommendations and conclusions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if opts.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default .csvcheck.yaml in the working directory)")
	pf.StringVar(&opts.endpoint, "endpoint", "", "Validation endpoint URL (overrides config and CSVCHECK_ENDPOINT)")
	pf.DurationVar(&opts.timeout, "timeout", 0, "Upstream request timeout (overrides config and CSVCHECK_TIMEOUT)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newPreviewCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI and prints any error to stderr.
func Execute(ctx context.Context) error {
	cmd := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), tui.RenderError(err))
	}
	return err
}

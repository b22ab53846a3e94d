package cli

import (
	"github.com/csvcheck/csvcheck/internal/adapters/inbound/web"
	"github.com/csvcheck/csvcheck/internal/adapters/outbound/htmlview"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web upload page and JSON API",
		Long:  "Serve an upload page at / and a JSON API at /api/v1/validate. Only one validation runs at a time.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			view, err := htmlview.New()
			if err != nil {
				return err
			}

			srv := web.NewServer(opts.validateService(cfg), previewService(cfg), view, cfg.Server, opts.logger)
			cmd.Printf("Serving on %s\n", cfg.Server.Addr)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/kcalvin/solarsizer/internal/agent"
	"github.com/kcalvin/solarsizer/internal/config"
	"github.com/kcalvin/solarsizer/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var (
		addr        string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serves the calculator and agent tools over HTTP:

  POST /v1/calculate         single calculation
  POST /v1/calculate/batch   workflow items
  GET  /v1/tools             agent tool definitions
  POST /v1/tools/{name}      agent tool invocation
  GET  /healthz, /metrics

The server stops gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Address
			}
			opts, err := calculatorOptions(cmd, cfg)
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Options:          opts,
				Tools:            agent.NewTools(newWebhookClient(cfg)),
				BatchConcurrency: concurrency,
				Logger:           logger,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultServerAddress, "listen address")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "batch concurrency per request")

	return cmd
}

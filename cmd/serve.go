package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/roaddash/internal/logger"
	"github.com/chrisdamba/roaddash/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logger.WithAction(ctx, "serve")

		p, err := newPipeline(ctx, cfg, log)
		if err != nil {
			return err
		}

		warm, _ := cmd.Flags().GetBool("warm")
		if warm {
			if _, err := p.cache.Get(ctx); err != nil {
				log.Warn(ctx, "cache warm-up failed", "error", err.Error())
			}
		}

		api, err := server.New(cfg.Server, p.assembler, log)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		api.Run(ctx, errCh)

		select {
		case err := <-errCh:
			log.Error(ctx, "http server failed", err)
			return err
		case <-ctx.Done():
			log.Info(ctx, "shutdown signal received")
		}

		return api.Stop(context.Background())
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Bool("warm", false, "load the datasets before accepting requests")
	bindFlags(serveCmd, map[string]string{"addr": "server.addr"}, false)
	rootCmd.AddCommand(serveCmd)
}

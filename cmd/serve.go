package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitrise-io/bitrise-code-assistant/common"
	"github.com/bitrise-io/bitrise-code-assistant/logger"
	"github.com/bitrise-io/bitrise-code-assistant/server"
	"github.com/bitrise-io/bitrise-code-assistant/tracing"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serve the code tasks over HTTP until SIGINT or SIGTERM is received.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := common.LoadSettings(configPath)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		if cmd.Flags().Changed("port") {
			settings.Server.Port = servePort
		}
		if err := settings.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		tp, err := tracing.Init(ctx, settings.Tracing)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		if tp.Enabled() {
			logger.Infof("Exporting traces to %s", settings.Tracing.Endpoint)
		}

		service, err := newService(settings)
		if err != nil {
			return err
		}

		srv := server.New(settings.Server, service)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(srv.Start)
		g.Go(func() error {
			<-gctx.Done()
			shutCtx, cancel := context.WithTimeout(context.Background(), settings.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutCtx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			if err := tp.Shutdown(shutCtx); err != nil {
				logger.Warnf("Failed to flush traces: %v", err)
			}
			return nil
		})

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", common.DefaultPort, "Port to listen on (overrides settings and PORT)")
}

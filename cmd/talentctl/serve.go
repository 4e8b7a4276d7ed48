package main

import (
	"context"
	"time"

	"talent-match/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the match event websocket",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.App.HTTPPort = port
		}

		lg, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = lg.Sync() }()

		addr, err := app.ListenAddr(cfg.App.HTTPPort)
		if err != nil {
			return err
		}

		a, cleanup, err := app.Bootstrap(cmd.Context(), cfg, lg)
		if err != nil {
			return err
		}
		defer func() {
			if err := cleanup(); err != nil {
				lg.Warn("cleanup error", zap.Error(err))
			}
		}()

		errCh := make(chan error, 1)
		go func() {
			lg.Info("http server listening", zap.String("addr", addr))
			errCh <- a.Fiber.Listen(addr)
		}()

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
			lg.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return a.Fiber.ShutdownWithContext(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port (overrides app.http_port)")
}

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/r0tools/datasheet-libs/config"
	"github.com/r0tools/datasheet-libs/datasheet"
	"github.com/r0tools/datasheet-libs/server"
)

func newRootCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:          "datasheetd",
		Short:        "Serve release datasheet artifacts over HTTP",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			setupLogging(cfg.Mode)
			if listen != "" {
				cfg.ListenAddr = listen
			}

			client := datasheet.New(datasheet.FetchOptions{
				Client:  &http.Client{Timeout: 10 * time.Second},
				BaseURL: cfg.BaseURL,
			}, cfg.RevalidateWindow, cfg.CacheMaxEntries)
			defer client.Close()

			srv := server.New(cfg, client)
			slog.Info("listening", slog.String("addr", cfg.ListenAddr), slog.String("mode", string(cfg.Mode)))
			return srv.Run(cfg.ListenAddr)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides LISTEN_ADDR)")
	return cmd
}

func setupLogging(mode config.Mode) {
	var handler slog.Handler
	if mode == config.ModeProduction {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

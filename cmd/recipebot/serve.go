package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"recipebot/internal/httpapi"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr        string
		corsOrigins string
		requestLog  string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if addr != "" {
				cfg.Addr = addr
			}
			if corsOrigins != "" {
				cfg.CORS.Enabled = true
				cfg.CORS.Origins = splitCSV(corsOrigins)
			}

			httpapi.SetLogger(log)
			httpapi.SetRequestLogLevel(requestLog)
			httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
			httpapi.SetChatTimeoutSeconds(cfg.RequestTimeoutSeconds)
			httpapi.SetChatRateLimit(cfg.ChatRatePerSecond, cfg.ChatBurst)
			methods, headers := cfg.CORS.Methods, cfg.CORS.Headers
			if len(methods) == 0 {
				methods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
			}
			if len(headers) == 0 {
				headers = []string{"Content-Type", "X-Log-Level"}
			}
			httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, methods, headers)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			httpapi.SetBaseContext(ctx)

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           httpapi.NewMux(a),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg.Addr).Str("recipes_dir", cfg.RecipesDir).Int("models", len(a.Models)).Msg("recipebot listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			log.Info().Msg("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				log.Warn().Err(err).Msg("graceful shutdown error")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080 (defaults RECIPEBOT_ADDR or config)")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins; enables CORS")
	cmd.Flags().StringVar(&requestLog, "request-log", "info", "Per-request log level: off|error|info|debug")
	return cmd
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AdminBXVentures/embedbroker/internal/api"
	"github.com/AdminBXVentures/embedbroker/internal/chatkit"
	"github.com/AdminBXVentures/embedbroker/internal/config"
	"github.com/AdminBXVentures/embedbroker/internal/metrics"
	"github.com/AdminBXVentures/embedbroker/internal/origin"
	"github.com/AdminBXVentures/embedbroker/internal/tableau"
)

const shutdownTimeout = 10 * time.Second

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the credential broker",
	Long: `Starts the HTTP server exposing:

  POST /api/chatkit/session   short-lived ChatKit client secret
  POST /api/tableau/jwt       signed Tableau Connected App token

Configuration is read once from the environment (and the optional --config file).`,
	Example: `  ALLOWED_ORIGINS=https://app.example embedbroker serve --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromViper(viper.GetViper())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		allowed, err := origin.NewAllowList(cfg.AllowedOrigins)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", config.EnvAllowedOrigins, err)
		}
		logStartupWarnings(cfg, allowed)

		m := metrics.New()
		sessions := chatkit.New(cfg.ChatKit, chatkit.WithObserver(m.ObserveUpstream))
		issuer := tableau.NewIssuer(cfg.Tableau)

		srv := api.NewServer(cfg, sessions, issuer, allowed, m)

		server := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           srv.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      cfg.ChatKit.Timeout + 10*time.Second,
			IdleTimeout:       60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info().Msgf("Starting server on %s...", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server crashed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

// logStartupWarnings reports configuration that lets the server start but
// makes some requests fail.
func logStartupWarnings(cfg config.Config, allowed origin.AllowList) {
	if allowed.Empty() {
		log.Warn().Msgf("%s is empty: every browser request with an Origin header will be rejected",
			config.EnvAllowedOrigins)
	} else {
		log.Info().Strs("origins", cfg.AllowedOrigins).Msg("Allowed origins loaded")
	}
	if missing := cfg.ChatKit.Missing(); len(missing) > 0 {
		log.Warn().Strs("missing", missing).Msg("ChatKit sessions are not configured")
	}
	if missing := cfg.Tableau.Missing(); len(missing) > 0 {
		log.Warn().Strs("missing", missing).Msg("Tableau tokens are not configured")
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", config.DefaultPort, "port to listen on (env: PORT)")
	_ = viper.BindPFlag(config.PortKey, serveCmd.Flags().Lookup("port"))
}

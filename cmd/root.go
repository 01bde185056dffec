// Package cmd holds the portal command line: the REST API, the web client
// and an offline checklist renderer.
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"personalportal/config"
	"personalportal/pkg/logger"
)

var (
	// Global flags
	envFile  string
	logLevel string
)

const shutdownTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Personal portal: notes, checklists, recipes and pictures",
	Long: `portal serves a personal content store.

  portal api      runs the REST API backed by Postgres
  portal web      runs the browser client that talks to the API
  portal render   renders a checklist JSON file to PDF offline`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load before the process environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(apiCmd, webCmd, renderCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration and starts the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	var missing *config.MissingEnvFileError
	if err != nil && !errors.As(err, &missing) {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger.Init(cfg.LogLevel)
	if missing != nil {
		logger.Sugar.Infof("No %s file found, using environment variables from OS", missing.Path)
	}
	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// serve runs srv until ctx is cancelled, then drains it.
func serve(ctx context.Context, srv *http.Server) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Sugar.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Sugar.Infof("Shutting down %s", srv.Addr)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

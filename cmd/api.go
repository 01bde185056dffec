package cmd

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"personalportal/config/database"
	"personalportal/router"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the REST API",
	Args:  cobra.NoArgs,
	RunE:  runAPI,
}

func runAPI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           router.Setup(db, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv)
}

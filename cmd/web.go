package cmd

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"personalportal/internal/web"
	"personalportal/internal/web/apiclient"
	"personalportal/internal/web/session"
	"personalportal/socket"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Run the browser client",
	Long: `Runs the server-rendered client. It keeps one signed-in session for the
whole process and pushes session changes to open tabs over /ws.`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func runWeb(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sess := session.New()
	api := apiclient.New(cfg.APIBaseURL)
	api.Token = sess.Token

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	hub := socket.NewHub(sess)
	go hub.Run(ctx)

	server, err := web.NewServer(api, sess, hub)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv)
}

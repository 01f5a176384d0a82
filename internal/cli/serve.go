// internal/cli/serve.go
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/propwatch/baliscrape/internal/api"
	"github.com/propwatch/baliscrape/internal/export"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serves the scraping pipeline over HTTP. Scrape requests run
synchronously and return the full property payload when the run finishes.`,
	Example: `  # Serve on the default address
  baliscrape serve

  # Serve on a custom port
  baliscrape serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	application := GetApp()

	addr := serveAddr
	if addr == "" {
		addr = application.Config.APIAddr
	}

	handlers := api.NewHandlers(
		application,
		export.SaveWorkbook,
		application.Config.SheetName,
		application.Config.ExportPath,
	)
	server := api.NewServer(addr, handlers)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Interrupt received, draining requests")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("Shutdown did not complete cleanly")
		}
	}()

	return server.Start()
}

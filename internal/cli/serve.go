package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/douessay/internal/license"
	"github.com/ppiankov/douessay/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the grading HTTP API",
	Long: `Serve starts the HTTP API:
  POST /v1/grade      grade an essay
  POST /v1/assess     accuracy-testing view, optional teacher targets
  POST /v1/agreement  compare system and teacher scores
  GET  /healthz       liveness

With --require-license, requests must carry an X-License-Key header.

Example:
  douessay serve --addr :8080 --grammar --grammar-url http://localhost:8081`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var requireLicense bool

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default: server.addr)")
	serveCmd.Flags().BoolVar(&requireLicense, "require-license", false, "enforce license keys and daily limits")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the grammar result cache")
	serveCmd.Flags().Bool("grammar", false, "check grammar with LanguageTool")
	serveCmd.Flags().String("grammar-url", "", "LanguageTool base URL")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	if requireLicense {
		cfg.Server.RequireLicense = true
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store license.Store
	if cfg.Server.RequireLicense {
		registry, err := license.Open(ctx, cfg.License)
		if err != nil {
			return fmt.Errorf("open license store: %w", err)
		}
		if c, ok := registry.(io.Closer); ok {
			defer c.Close()
		}
		store = registry
		log.Info("license enforcement enabled", "driver", cfg.License.Driver)
	}

	return server.New(newGrader(cfg, log), store, cfg.Server, log).ListenAndServe(ctx)
}

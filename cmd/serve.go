package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	web "github.com/applytrack/applytrack/frontend"
	"github.com/applytrack/applytrack/internal/config"
	"github.com/applytrack/applytrack/internal/fixtures"
	"github.com/applytrack/applytrack/internal/frontend"
	"github.com/applytrack/applytrack/internal/log"
	"github.com/applytrack/applytrack/internal/tracing"
)

const shutdownTimeout = 5 * time.Second

var serveOpen bool

// openBrowser opens the served URL. It can be overridden in tests.
var openBrowser = frontend.OpenBrowser

// listen opens the server socket. It can be overridden in tests.
var listen = net.Listen

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the fixtures as a read-only JSON API",
	Long: `Serve the demo data over HTTP with the static web build at /.

Endpoints:
  GET /api/applications[?status=&company=]
  GET /api/applications/{id}
  GET /api/contacts
  GET /api/timeline
  GET /api/analytics

Every other method is rejected with 405. With --trace each request is
recorded as an OpenTelemetry span (stdout, file or otlp).`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default "+config.Defaults().Serve.Addr+")")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the web build in a browser")
	serveCmd.Flags().String("trace", "", "span exporter: none, stdout, file or otlp")
	_ = v.BindPFlag(config.KeyServeAddr, serveCmd.Flags().Lookup("addr"))
	_ = v.BindPFlag(config.KeyTracingExporter, serveCmd.Flags().Lookup("trace"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cleanup, err := initLogging(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer cleanup()

	ds, err := loadFixtures()
	if err != nil {
		return err
	}
	static, err := fs.Sub(web.DistFS(), "dist")
	if err != nil {
		return fmt.Errorf("opening web build: %w", err)
	}
	h := frontend.NewHandler(ds, static, version)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.New(ctx, tracing.Config{
		Exporter:       cfg.Tracing.Exporter,
		FilePath:       cfg.Tracing.File,
		Endpoint:       cfg.Tracing.Endpoint,
		ServiceName:    "applytrack",
		ServiceVersion: version,
	}, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(flushCtx); err != nil {
			log.ErrorErr(log.CatServer, "flushing traces", err)
		}
	}()

	watchFixtures(ctx, func(ds *fixtures.Dataset, err error) {
		if err != nil {
			log.ErrorErr(log.CatServer, "reload failed, still serving previous data", err)
			return
		}
		h.SetDataset(ds)
		log.Info(log.CatServer, "serving reloaded fixtures", "applications", len(ds.Applications()))
	})

	ln, err := listen("tcp", cfg.Serve.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Serve.Addr, err)
	}
	srv := &http.Server{
		Handler:           frontend.LogRequests(frontend.Trace(tp.Tracer("applytrack/frontend"), h.Routes())),
		ReadHeaderTimeout: 5 * time.Second,
	}

	url := "http://" + ln.Addr().String() + "/"
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Serving %s fixtures on %s (ctrl+c to stop)\n", fixturesSource(), url)
	if serveOpen {
		if err := openBrowser(url); err != nil {
			_, _ = fmt.Fprintf(out, "Open %s in your browser\n", url)
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.Info(log.CatServer, "server stopped")
	return nil
}

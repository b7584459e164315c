package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/vincenteof/site/internal/config"
	"github.com/vincenteof/site/internal/logger"
	"github.com/vincenteof/site/internal/pages"
	"github.com/vincenteof/site/internal/render"
	"github.com/vincenteof/site/internal/server"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "site",
		Usage: "Personal site of Vincenteof",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   config.DefaultLogLevel,
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "title",
				Value:   config.DefaultTitle,
				Usage:   "Document title of the site",
				EnvVars: []string{"SITE_TITLE"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Serve the site over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
				},
				Action: runServe,
			},
			{
				Name:  "render",
				Usage: "Render the home page to a static HTML file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Value:   config.DefaultOutput,
						Usage:   "Output file, - for stdout",
					},
				},
				Action: runRender,
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	site := pages.NewSite(c.String("title"))
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           server.New(site, slog.Default()),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runRender(c *cli.Context) error {
	ctx := render.LoggingContext(c.Context, slog.Default())
	site := pages.NewSite(c.String("title"))

	path := c.String("out")
	if path == config.DefaultOutput {
		return writeHome(ctx, os.Stdout, site)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := writeHome(ctx, f, site); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	slog.Info("rendered home page", "path", path)
	return nil
}

func writeHome(ctx context.Context, out io.Writer, site *pages.Site) error {
	if err := render.Write(ctx, out, site, pages.NewHomePage()); err != nil {
		return fmt.Errorf("failed to render home page: %w", err)
	}
	return nil
}

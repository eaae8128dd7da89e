package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/phenrril/fashionshop/internal/app"
	"github.com/phenrril/fashionshop/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI().RunContext(ctx, os.Args); err != nil {
		zlog.Fatal().Err(err).Msg("fashionshop")
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "fashionshop",
		Usage: "tienda de moda: catálogo, carrito y panel admin",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "levanta la consola local (JSON + websocket)",
				Action: withApp(true, serve),
			},
			{
				Name:   "products",
				Usage:  "actualiza y lista el catálogo",
				Action: withApp(false, listProducts),
			},
			cartCommand(),
			adminCommand(),
		},
	}
}

// withApp loads config and the app, runs fn and releases everything.
// When start is set the stored admin session is resumed too.
func withApp(start bool, fn func(c *cli.Context, a *app.App) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		config.SetupLogging(cfg.LogLevel, cfg.LogFormat)

		a, err := app.NewApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if start {
			if err := a.Start(c.Context); err != nil {
				return err
			}
		} else {
			a.Load(c.Context)
		}
		return fn(c, a)
	}
}

func serve(c *cli.Context, a *app.App) error {
	server := &http.Server{Addr: a.Config.HTTPAddr, Handler: a.HTTPHandler()}

	errc := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", a.Config.HTTPAddr).Msg("consola escuchando")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-c.Context.Done():
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

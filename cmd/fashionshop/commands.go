package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/phenrril/fashionshop/internal/app"
	"github.com/phenrril/fashionshop/internal/domain"
	"github.com/phenrril/fashionshop/internal/usecase"
)

func listProducts(c *cli.Context, a *app.App) error {
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNOMBRE\tCATEGORÍA\tPRECIO\n")
	for _, p := range a.Catalog.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.Price)
	}
	fmt.Fprintf(tw, "\nfuente: %s\n", a.Catalog.Source())
	return tw.Flush()
}

func arg(c *cli.Context, i int, name string) (string, error) {
	if c.NArg() <= i {
		return "", errors.Wrapf(domain.ErrValidation, "falta %s", name)
	}
	return c.Args().Get(i), nil
}

func printCart(c *cli.Context, a *app.App) error {
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNOMBRE\tCANT\tPRECIO\tSUBTOTAL\n")
	for _, it := range a.Cart.Items() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", it.ID, it.Name, it.Quantity, it.Price, it.Price.Times(it.Quantity))
	}
	fmt.Fprintf(tw, "\nunidades: %d\ttotal: %s\n", a.Cart.TotalCount(), a.Cart.Subtotal())
	return tw.Flush()
}

func cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "carrito local",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Action: withApp(false, printCart),
			},
			{
				Name:      "add",
				ArgsUsage: "<producto>",
				Action: withApp(false, func(c *cli.Context, a *app.App) error {
					id, err := arg(c, 0, "producto")
					if err != nil {
						return err
					}
					if err := a.Cart.Add(c.Context, id); err != nil {
						return err
					}
					return printCart(c, a)
				}),
			},
			{
				Name:      "qty",
				ArgsUsage: "<producto> <delta>",
				Action: withApp(false, func(c *cli.Context, a *app.App) error {
					id, err := arg(c, 0, "producto")
					if err != nil {
						return err
					}
					raw, err := arg(c, 1, "delta")
					if err != nil {
						return err
					}
					delta, err := strconv.Atoi(raw)
					if err != nil {
						return errors.Wrapf(domain.ErrValidation, "delta %q", raw)
					}
					if err := a.Cart.ChangeQuantity(c.Context, id, delta); err != nil {
						return err
					}
					return printCart(c, a)
				}),
			},
			{
				Name:      "remove",
				ArgsUsage: "<producto>",
				Action: withApp(false, func(c *cli.Context, a *app.App) error {
					id, err := arg(c, 0, "producto")
					if err != nil {
						return err
					}
					if err := a.Cart.Remove(c.Context, id); err != nil {
						return err
					}
					return printCart(c, a)
				}),
			},
			{
				Name: "clear",
				Action: withApp(false, func(c *cli.Context, a *app.App) error {
					if err := a.Cart.Clear(c.Context); err != nil {
						return err
					}
					return printCart(c, a)
				}),
			},
		},
	}
}

// watchLogger prints each completed refresh of the dashboard.
type watchLogger struct {
	last usecase.PollSnapshot
}

func (w *watchLogger) OnSnapshot(s usecase.PollSnapshot) {
	if s.LastRefresh.Equal(w.last.LastRefresh) {
		zlog.Debug().Int("countdown", s.Countdown).Str("state", string(s.State)).Msg("tick")
		return
	}
	w.last = s
	ev := zlog.Info().Int("orders", len(s.Orders)).Int("countdown", s.Countdown)
	if s.Stats != nil {
		ev = ev.Int("pending", s.Stats.PendingOrders).Int("today", s.Stats.TodayOrders).Str("revenue", s.Stats.TotalRevenue.String())
	}
	ev.Msg("panel actualizado")
}

func (w *watchLogger) OnError(err error) {
	zlog.Warn().Err(err).Msg("falló la actualización, se reintenta en el próximo ciclo")
}

func adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "panel de pedidos",
		Subcommands: []*cli.Command{
			{
				Name:  "watch",
				Usage: "conecta y refresca el panel hasta Ctrl+C",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Usage: "api key admin (si no, la guardada)", EnvVars: []string{"ADMIN_API_KEY"}},
				},
				Action: withApp(false, func(c *cli.Context, a *app.App) error {
					obs := &watchLogger{}
					a.Poller.Subscribe(obs)
					defer a.Poller.Unsubscribe(obs)
					key := c.String("key")
					if key == "" {
						key = a.Poller.Key(c.Context)
					}
					if err := a.Poller.Connect(c.Context, key); err != nil {
						return err
					}
					<-c.Context.Done()
					return nil
				}),
			},
			{
				Name:      "status",
				ArgsUsage: "<pedido> <estado>",
				Action: withApp(false, func(c *cli.Context, a *app.App) error {
					id, err := arg(c, 0, "pedido")
					if err != nil {
						return err
					}
					st, err := arg(c, 1, "estado")
					if err != nil {
						return err
					}
					return a.Admin.UpdateStatus(c.Context, id, st)
				}),
			},
			{
				Name:      "show",
				ArgsUsage: "<pedido>",
				Action: withApp(false, func(c *cli.Context, a *app.App) error {
					id, err := arg(c, 0, "pedido")
					if err != nil {
						return err
					}
					d, err := a.Admin.Order(c.Context, id)
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintf(tw, "pedido %s\t%s\t%s\t%s\n", d.Order.ID, d.Order.DisplayName(), d.Order.DisplayPhone(), d.Order.Status.Label())
					for _, it := range d.Items {
						fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", it.ID, it.FullName, it.Quantity, it.Price, it.LineTotal)
					}
					fmt.Fprintf(tw, "\nunidades: %d\ttotal: %s\n", d.TotalQuantity, d.Total)
					return tw.Flush()
				}),
			},
			{
				Name:      "delete",
				ArgsUsage: "<pedido>",
				Action: withApp(false, func(c *cli.Context, a *app.App) error {
					id, err := arg(c, 0, "pedido")
					if err != nil {
						return err
					}
					err = a.Admin.DeleteOrder(c.Context, id)
					if errors.Is(err, domain.ErrFeatureUnavailable) {
						fmt.Fprintln(c.App.Writer, "el servidor no permite borrar pedidos")
						return nil
					}
					return err
				}),
			},
			{
				Name:  "export",
				Usage: "exporta los pedidos a xlsx",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: "pedidos.xlsx"},
				},
				Action: withApp(false, func(c *cli.Context, a *app.App) error {
					path := c.String("out")
					f, err := os.Create(path)
					if err != nil {
						return errors.Wrap(err, "crear archivo")
					}
					n, err := a.Admin.Export(c.Context, f)
					if cerr := f.Close(); err == nil {
						err = cerr
					}
					if err != nil {
						_ = os.Remove(path)
						return err
					}
					zlog.Info().Int("pedidos", n).Str("out", path).Msg("exportado")
					return nil
				}),
			},
			{
				Name:  "logout",
				Usage: "olvida la api key guardada",
				Action: withApp(false, func(c *cli.Context, a *app.App) error {
					return a.Poller.Forget(c.Context)
				}),
			},
		},
	}
}

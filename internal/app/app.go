package app

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/phenrril/fashionshop/internal/adapters/apiclient"
	"github.com/phenrril/fashionshop/internal/adapters/export/xlsx"
	"github.com/phenrril/fashionshop/internal/adapters/httpserver"
	"github.com/phenrril/fashionshop/internal/adapters/repo/postgres"
	"github.com/phenrril/fashionshop/internal/adapters/storage/localfs"
	"github.com/phenrril/fashionshop/internal/config"
	"github.com/phenrril/fashionshop/internal/domain"
	"github.com/phenrril/fashionshop/internal/usecase"
)

// App is the single context object: it owns the store, the product cache,
// the cart and the poller, and hands them to the CLI and the console server.
type App struct {
	Config    config.Config
	DB        *gorm.DB
	Store     domain.KVStore
	API       *apiclient.Client
	Catalog   *usecase.Catalog
	Cart      *usecase.CartUC
	Favorites *usecase.FavoritesUC
	Orders    *usecase.OrderView
	Poller    *usecase.Poller
	Admin     *usecase.AdminUC
	Hub       *httpserver.Hub
}

func NewApp(cfg config.Config) (*App, error) {
	a := &App{Config: cfg}

	if strings.TrimSpace(cfg.StorageDSN) != "" {
		db, err := gorm.Open(gormpg.Open(cfg.StorageDSN), &gorm.Config{})
		if err != nil {
			return nil, errors.Wrap(err, "conectar postgres")
		}
		repo := postgres.NewKVRepo(db)
		if err := repo.Migrate(); err != nil {
			return nil, errors.Wrap(err, "migrar kv_entries")
		}
		a.DB = db
		a.Store = repo
		log.Info().Msg("almacenamiento local en postgres")
	} else {
		store, err := localfs.New(cfg.StorageDir)
		if err != nil {
			return nil, err
		}
		a.Store = store
		log.Info().Str("dir", cfg.StorageDir).Msg("almacenamiento local en disco")
	}

	var opts []apiclient.Option
	if cfg.APIBearerToken != "" {
		opts = append(opts, apiclient.WithBearerToken(cfg.APIBearerToken))
	}
	a.API = apiclient.New(cfg.APIBaseURL, cfg.APITimeout, opts...)

	a.Catalog = usecase.NewCatalog(a.API)
	a.Cart = usecase.NewCartUC(a.Store, a.Catalog)
	a.Favorites = usecase.NewFavoritesUC(a.Store)
	a.Orders = usecase.NewOrderView(a.Catalog)
	a.Poller = usecase.NewPoller(a.API, a.Store, usecase.PollerConfig{Tick: cfg.PollTick, Countdown: cfg.Countdown()})
	a.Admin = usecase.NewAdminUC(a.API, a.Poller, a.Orders, xlsx.New())
	a.Hub = httpserver.NewHub(a.Poller)
	a.Poller.Subscribe(a.Hub)

	return a, nil
}

// Load fills the product cache and reads the cart and favorites. It never
// fails: a broken backend yields the fallback catalog.
func (a *App) Load(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		src := a.Catalog.Refresh(ctx)
		log.Info().Str("source", string(src)).Int("products", a.Catalog.Len()).Msg("catálogo cargado")
		return nil
	})
	g.Go(func() error {
		a.Cart.Load(ctx)
		return nil
	})
	g.Go(func() error {
		a.Favorites.Load(ctx)
		return nil
	})
	_ = g.Wait()
}

// Start loads local state and resumes polling with the stored key or, on a
// first run, with ADMIN_API_KEY.
func (a *App) Start(ctx context.Context) error {
	a.Load(ctx)
	ok, err := a.Poller.Restore(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo restaurar la sesión admin")
	}
	if !ok && a.Config.AdminAPIKey != "" {
		return a.Poller.Connect(ctx, a.Config.AdminAPIKey)
	}
	return nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Catalog, a.Cart, a.Favorites, a.Poller, a.Admin, a.Hub)
}

func (a *App) Close() {
	a.Poller.Disconnect()
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

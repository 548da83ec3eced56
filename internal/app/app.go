package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/escrow-ledger/internal/config"
	"github.com/fsdevblog/escrow-ledger/internal/metrics"
	"github.com/fsdevblog/escrow-ledger/internal/repository/kvrepo"
	"github.com/fsdevblog/escrow-ledger/internal/repository/pgrepo"
	"github.com/fsdevblog/escrow-ledger/internal/repository/redisrepo"
	"github.com/fsdevblog/escrow-ledger/internal/service"
	"github.com/fsdevblog/escrow-ledger/internal/transport/api"
	"github.com/fsdevblog/escrow-ledger/internal/transport/delivery"
	"github.com/fsdevblog/escrow-ledger/internal/transport/delivery/client"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
	"github.com/fsdevblog/escrow-ledger/pkg/uow"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.WithFields(logrus.Fields{
		"address":        a.Config.RunAddress,
		"store":          a.Config.StoreDriver,
		"delivery":       a.Config.DeliveryTarget,
		"defaultCourier": a.Config.DefaultCourier,
	}).Info("Starting app")

	store, storeErr := a.openStore(notifyCtx)
	if storeErr != nil {
		return fmt.Errorf("app run: %s", storeErr.Error())
	}
	defer func() {
		if err := store.Close(); err != nil {
			a.Logger.WithError(err).Error("close store")
		}
	}()

	unitOfWork := uow.NewUnitOfWork(store)
	if regErr := kvrepo.Register(unitOfWork); regErr != nil {
		return fmt.Errorf("app run: %s", regErr.Error())
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	services, sErr := service.Factory(unitOfWork, service.FactoryArgs{
		Metrics:        m,
		JWTSecret:      []byte(a.Config.JWTSecret),
		SeedBalance:    a.Config.SeedBalance,
		AdminAccounts:  a.Config.AdminAccounts,
		DefaultCourier: a.Config.DefaultCourier,
		OutboxEnabled:  a.Config.DeliveryTarget != config.DeliveryNone,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:          a.Logger,
		IdentityService: services.Identity,
		CatalogService:  services.Catalog,
		ShipmentService: services.Shipments,
		LedgerService:   services.Ledger,
		NotifyService:   services.Notifications,
		JWTSecretKey:    []byte(a.Config.JWTSecret),
		MetricsHandler:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	srv := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: api.DefaultServiceTimeout,
	}

	var processor *delivery.Processor
	if a.Config.DeliveryTarget != config.DeliveryNone {
		deliveryClient, closeClient, clientErr := a.deliveryClient()
		if clientErr != nil {
			return fmt.Errorf("app run: %s", clientErr.Error())
		}
		defer closeClient()

		processor = delivery.New(services.Notifications, deliveryClient, a.Logger).
			SetWorkers(a.Config.DeliveryWorkers).
			SetLimitPerIteration(50). //nolint:mnd
			SetMetrics(m)
	}

	g, gCtx := errgroup.WithContext(notifyCtx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gCtx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx) //nolint:wrapcheck
	})

	if processor != nil {
		g.Go(func() error {
			return processor.Run(gCtx)
		})
	}

	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck
	}
	return notifyCtx.Err() //nolint:wrapcheck
}

// openStore открывает хранилище выбранного драйвера. Для Postgres дополнительно применяются миграции.
func (a *App) openStore(ctx context.Context) (kvstore.Store, error) {
	switch a.Config.StoreDriver {
	case config.StorePostgres:
		conn, connErr := pgrepo.Connect(ctx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
		if connErr != nil {
			return nil, fmt.Errorf("open store: %w", connErr)
		}
		return kvstore.NewPostgresStore(conn), nil
	case config.StoreRedis:
		rdb, connErr := redisrepo.Connect(ctx, a.Config.RedisURL, a.Logger)
		if connErr != nil {
			return nil, fmt.Errorf("open store: %w", connErr)
		}
		return kvstore.NewRedisStore(rdb), nil
	default:
		return kvstore.NewMemoryStore(), nil
	}
}

func (a *App) deliveryClient() (delivery.Client, func(), error) {
	switch a.Config.DeliveryTarget {
	case config.DeliveryKafka:
		kc, err := client.NewKafka(a.Config.KafkaBrokers, a.Config.KafkaTopic)
		if err != nil {
			return nil, nil, fmt.Errorf("delivery client: %w", err)
		}
		return kc, kc.Close, nil
	default:
		return client.NewWebhook(a.Config.WebhookURL), func() {}, nil
	}
}

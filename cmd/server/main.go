package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"pizzeria-backend/internal/catalog"
	"pizzeria-backend/internal/config"
	"pizzeria-backend/internal/connections/database"
	"pizzeria-backend/internal/connections/rabbitmq"
	"pizzeria-backend/internal/httpx"
	"pizzeria-backend/internal/invoice"
	"pizzeria-backend/internal/kitchen"
	"pizzeria-backend/internal/logger"
	"pizzeria-backend/internal/notify"
	"pizzeria-backend/internal/orders"
	"pizzeria-backend/internal/party"
	"pizzeria-backend/internal/repository"
	"pizzeria-backend/internal/tracking"
)

func main() {
	mode := flag.String("mode", "", "order-service | kitchen-worker | tracking-service | notification-subscriber")
	port := flag.Int("port", 0, "http port for services that expose HTTP")
	configPath := flag.String("config", "", "path to config.yaml")
	workerName := flag.String("worker-name", "kitchen-1", "kitchen-worker: unique worker name")
	prefetch := flag.Int("prefetch", 1, "kitchen-worker: RabbitMQ prefetch")
	prepSeconds := flag.Int("prep-seconds", 0, "kitchen-worker: simulated preparation time")
	flag.Parse()

	if *mode == "" {
		fmt.Fprintln(os.Stderr, "--mode is required: order-service | kitchen-worker | tracking-service | notification-subscriber")
		os.Exit(2)
	}

	lg := logger.New(*mode)
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, lg, *mode, *port, *configPath, *workerName, *prefetch, *prepSeconds); err != nil {
		lg.Error("fatal", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, lg *zap.Logger, mode string, port int, configPath, workerName string, prefetch, prepSeconds int) error {
	if configPath == "" {
		var err error
		if configPath, err = config.Find(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	mq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return err
	}
	defer mq.Close()
	if err := mq.DeclareAll(); err != nil {
		return err
	}

	m := repository.NewManager(pool)
	svc := orders.NewService(orders.Deps{
		Store:      repository.NewOrdersPG(m),
		Tx:         m,
		Resolver:   catalog.NewResolver(repository.NewCatalogPG(m), cfg.Catalog, lg),
		Parties:    party.NewService(repository.NewPartyPG(m)),
		Ledger:     invoice.NewLedger(repository.NewInvoicePG(m)),
		Events:     notify.NewPublisher(mq),
		Courier:    notify.NewCourierNotifier(mq, lg),
		DefaultFee: cfg.Delivery.DefaultFee,
		Logger:     lg,
	})

	switch mode {
	case "order-service":
		if port == 0 {
			port = cfg.HTTP.Port
		}
		r := newRouter()
		orders.NewHandler(svc, lg).Register(r)
		lg.Info("service_started", zap.Int("port", port))
		return httpx.New(":"+strconv.Itoa(port), r).Run(ctx)

	case "tracking-service":
		if port == 0 {
			port = cfg.HTTP.Port + 2
		}
		r := newRouter()
		tracking.NewHandler(svc, lg).Register(r)
		lg.Info("service_started", zap.Int("port", port))
		return httpx.New(":"+strconv.Itoa(port), r).Run(ctx)

	case "kitchen-worker":
		lg.Info("service_started", zap.String("worker", workerName))
		w := kitchen.NewWorker(workerName, prefetch, time.Duration(prepSeconds)*time.Second, mq, svc, lg)
		return w.Run(ctx)

	case "notification-subscriber":
		lg.Info("service_started")
		return notify.NewSubscriber(mq, lg).Run(ctx)

	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	return r
}

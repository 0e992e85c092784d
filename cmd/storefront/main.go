package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/freight"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/migrations"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// a missing .env is fine outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "storefront stopped", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if cfg.DB.RunMigrations {
		if err := migrations.Up(cfg.DB.DSN); err != nil {
			return fmt.Errorf("migrations.Up: %w", err)
		}
		log.Info(ctx, "migrations applied")
	}

	pool, err := newPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := session.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("session.NewRedisClient: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warn(ctx, "closing redis client", err)
		}
	}()

	sessions, err := session.NewStore(redisClient, cfg.Session.TTL)
	if err != nil {
		return fmt.Errorf("session.NewStore: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var calculator port.FreightCalculator
	if cfg.Freight.Enabled {
		client, err := freight.NewClient(cfg.Freight.OriginPostalCode,
			freight.WithBaseURL(cfg.Freight.BaseURL),
			freight.WithTimeout(cfg.Freight.Timeout),
			freight.WithServiceCode(cfg.Freight.ServiceCode),
			freight.WithMetrics(freight.NewMetrics(reg)),
		)
		if err != nil {
			return fmt.Errorf("freight.NewClient: %w", err)
		}
		calculator = client
	} else {
		log.Warn(ctx, "freight quoting disabled", nil)
	}

	unit, err := cfg.Store.Unit()
	if err != nil {
		return err
	}

	var (
		carts     = repository.NewCart(pool)
		orders    = repository.NewOrder(pool)
		products  = repository.NewProduct(pool)
		users     = repository.NewUser(pool)
		addresses = repository.NewAddress(pool)
	)

	cartService, err := service.NewCartService(service.CartServiceParams{
		Carts:            carts,
		Products:         products,
		Addresses:        addresses,
		Orders:           orders,
		Freight:          calculator,
		Logger:           log,
		Currency:         unit,
		OriginPostalCode: cfg.Freight.OriginPostalCode,
		ServiceCode:      cfg.Freight.ServiceCode,
	})
	if err != nil {
		return fmt.Errorf("service.NewCartService: %w", err)
	}

	orderService, err := service.NewOrderService(service.OrderServiceParams{
		Orders:    orders,
		Carts:     carts,
		Users:     users,
		Addresses: addresses,
		Logger:    log,
		GraceDays: cfg.Order.GraceDays,
	})
	if err != nil {
		return fmt.Errorf("service.NewOrderService: %w", err)
	}

	authService, err := service.NewAuthService(users, carts, sessions, log)
	if err != nil {
		return fmt.Errorf("service.NewAuthService: %w", err)
	}

	handler, err := httpapi.NewRouter(httpapi.Deps{
		Carts:    cartService,
		Orders:   orderService,
		Auth:     authService,
		Sessions: sessions,
		Users:    users,
		Logger:   log,
		Metrics:  httpapi.NewMetrics(reg),
		Gatherer: reg,
		Checks: map[string]httpapi.HealthCheck{
			"postgres": pool.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
		Cookie: httpapi.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			TTL:    cfg.Session.TTL,
		},
	})
	if err != nil {
		return fmt.Errorf("httpapi.NewRouter: %w", err)
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(log.WithField(ctx, "addr", srv.Addr), "http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}
	return nil
}

func newPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return pool, nil
}

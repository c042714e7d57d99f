// Package bootstrap opens the storage selected by the configuration and
// builds the repositories and services shared by the binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/segyhp/dealer-loans/internal/config"
	"github.com/segyhp/dealer-loans/internal/repository"
	"github.com/segyhp/dealer-loans/internal/service"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds the opened storage and the repositories built on it.
type App struct {
	Config *config.Config
	Log    *logrus.Logger
	Store  repository.TableStore
	Redis  *redis.Client // nil when the cache is disabled

	Loans       repository.LoanRepository
	Applicants  repository.PotentialBorrowerRepository
	Borrowers   repository.BorrowerRepository
	Dealerships repository.DealershipRepository

	closers []func() error
}

// Open connects the configured store and, when enabled, the Redis cache in
// front of the loan repository.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	store, err := app.openStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	app.Loans = repository.NewLoanRepository(store)
	app.Applicants = repository.NewPotentialBorrowerRepository(store)
	app.Borrowers = repository.NewBorrowerRepository(store)
	app.Dealerships = repository.NewDealershipRepository(store)

	if cfg.Redis.Enabled {
		app.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		app.closers = append(app.closers, app.Redis.Close)
		if err := app.Redis.Ping(ctx).Err(); err != nil {
			// The cache falls back to storage on every failure.
			log.WithError(err).Warn("Redis unreachable, loans will be read from storage")
		}
		app.Loans = repository.NewCachedLoanRepository(app.Loans, app.Redis, cfg.Redis.TTL, log)
	}

	log.WithFields(logrus.Fields{
		"storage_driver": cfg.Storage.Driver,
		"cache_enabled":  cfg.Redis.Enabled,
	}).Info("Storage opened")
	return app, nil
}

func (a *App) openStore(ctx context.Context) (repository.TableStore, error) {
	switch a.Config.Storage.Driver {
	case config.DriverCSV:
		if err := os.MkdirAll(a.Config.Storage.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		return repository.NewCSVStore(a.Config.Storage.Dir), nil

	case config.DriverPostgres:
		db, err := initDB(a.Config)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		store := repository.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, nil

	case config.DriverMemory:
		return repository.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", a.Config.Storage.Driver)
	}
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

// Close releases the connections opened by Open.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) LoanService() *service.LoanService {
	return service.NewLoanService(a.Loans, a.Applicants, a.Borrowers, a.Dealerships, a.Config.GetIDStrategy(), a.Log)
}

func (a *App) PaymentService() *service.PaymentService {
	return service.NewPaymentService(a.Loans, a.Log)
}

func (a *App) DealershipService() *service.DealershipService {
	return service.NewDealershipService(a.Dealerships, a.Log)
}

func (a *App) BorrowerService() *service.BorrowerService {
	return service.NewBorrowerService(a.Borrowers, a.Applicants, a.Log)
}

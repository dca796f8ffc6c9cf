package di

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	feedService "github.com/reshetovitsme/quote-feed/internal/modules/feed/service"
	quoteRepo "github.com/reshetovitsme/quote-feed/internal/modules/quote/repository"
	quoteService "github.com/reshetovitsme/quote-feed/internal/modules/quote/service"
	"github.com/reshetovitsme/quote-feed/internal/shared/config"
	"github.com/reshetovitsme/quote-feed/internal/shared/database"
	"github.com/reshetovitsme/quote-feed/internal/shared/errors"
	httpServer "github.com/reshetovitsme/quote-feed/internal/transport/http"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const shutdownTimeout = 10 * time.Second

// Setup initializes the dependency injection container. Providers are lazy;
// nothing touches disk until the first Invoke.
func Setup(logger *slog.Logger) (do.Injector, error) {
	injector := do.New()

	do.ProvideValue(injector, logger)

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Database (sqlite driver only)
	do.Provide(injector, func(i do.Injector) (*sql.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*slog.Logger](i)

		db, err := database.Open(context.Background(), cfg.DatabasePath)
		if err != nil {
			return nil, oops.With("database_path", cfg.DatabasePath, "context", "failed to open database").Wrap(err)
		}
		if err := database.Migrate(db, log); err != nil {
			_ = db.Close()
			return nil, oops.With("database_path", cfg.DatabasePath, "context", "failed to migrate database").Wrap(err)
		}
		return db, nil
	})

	// Register Quote Repository
	do.Provide(injector, func(i do.Injector) (quoteRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)

		switch cfg.StorageDriver {
		case config.StorageDriverSqlite:
			db, err := do.Invoke[*sql.DB](i)
			if err != nil {
				return nil, err
			}
			return quoteRepo.NewSQLiteStorage(db), nil
		case config.StorageDriverFile:
			repo, err := quoteRepo.NewFileStorage(cfg.StoragePath)
			if err != nil {
				return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize quote repository").Wrap(err)
			}
			return repo, nil
		default:
			return nil, oops.With("storage_driver", cfg.StorageDriver).Wrap(errors.ErrUnsupportedStorage)
		}
	})

	// Register Quote Service
	do.Provide(injector, func(i do.Injector) (*quoteService.Service, error) {
		repo, err := do.Invoke[quoteRepo.Repository](i)
		if err != nil {
			return nil, err
		}
		log := do.MustInvoke[*slog.Logger](i)
		return quoteService.New(repo, quoteService.WithLogger(log)), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		quotes, err := do.Invoke[*quoteService.Service](i)
		if err != nil {
			return nil, err
		}
		return feedService.New(quotes, feedService.Branding{
			Title:       cfg.FeedTitle,
			Description: cfg.FeedDescription,
			ItemTitle:   cfg.FeedItemTitle,
		}), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		quotes, err := do.Invoke[*quoteService.Service](i)
		if err != nil {
			return nil, err
		}
		feeds, err := do.Invoke[*feedService.Service](i)
		if err != nil {
			return nil, err
		}
		server := httpServer.New(cfg, quotes, feeds)
		server.SetLogger(do.MustInvoke[*slog.Logger](i))
		return server, nil
	})

	return injector, nil
}

// Seed stores the sample quotes when the store is empty and seeding is
// enabled.
func Seed(ctx context.Context, injector do.Injector) error {
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return err
	}
	if !cfg.SeedOnEmpty {
		return nil
	}

	quotes, err := do.Invoke[*quoteService.Service](injector)
	if err != nil {
		return err
	}
	_, err = quotes.SeedIfEmpty(ctx)
	return err
}

// Shutdown gracefully shuts down all services that were started
func Shutdown(injector do.Injector) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	invoked := lo.Map(injector.ListInvokedServices(), func(d do.ServiceDescription, _ int) string {
		return d.Service
	})

	var errs []error

	// Stop the HTTP server before the store it reads from
	if lo.Contains(invoked, do.NameOf[*httpServer.Server]()) {
		if err := do.ShutdownWithContext[*httpServer.Server](ctx, injector); err != nil {
			errs = append(errs, oops.With("context", "failed to stop http server").Wrap(err))
		}
	}

	if lo.Contains(invoked, do.NameOf[*sql.DB]()) {
		db := do.MustInvoke[*sql.DB](injector)
		if err := db.Close(); err != nil {
			errs = append(errs, oops.With("context", "failed to close database").Wrap(err))
		}
	}

	return oops.Join(errs...)
}

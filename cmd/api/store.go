package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raviram02/HostelBite/internal/config"
	"github.com/Raviram02/HostelBite/internal/handler"
	"github.com/Raviram02/HostelBite/internal/infra/db"
	"github.com/Raviram02/HostelBite/internal/infra/mongostore"
	infraRepo "github.com/Raviram02/HostelBite/internal/infra/repository"
	repo "github.com/Raviram02/HostelBite/internal/repository"
)

// stores is one backend's repositories behind the shared interfaces.
type stores struct {
	orders   repo.OrderRepository
	carts    repo.CartRepository
	products repo.ProductRepository
	audits   repo.AuditLogRepository
	tx       repo.TransactionManager

	ping    handler.Pinger
	migrate func(ctx context.Context) error
	close   func() error
}

func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres, config.StoreDriverSQLite:
		gdb, err := db.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", cfg.StoreDriver, err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		logger.Info("store connected", "driver", cfg.StoreDriver)

		return &stores{
			orders:   infraRepo.NewOrderGormRepository(gdb),
			carts:    infraRepo.NewCartGormRepository(gdb),
			products: infraRepo.NewProductGormRepository(gdb),
			audits:   infraRepo.NewAuditLogGormRepository(gdb),
			tx:       infraRepo.NewTxManagerGorm(gdb),
			ping:     handler.PingFunc(sqlDB.PingContext),
			migrate:  func(context.Context) error { return db.AutoMigrate(gdb) },
			close:    sqlDB.Close,
		}, nil

	case config.StoreDriverMongo:
		store, err := mongostore.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("store connected", "driver", cfg.StoreDriver, "database", cfg.MongoDatabase, "transactions", store.SupportsTransactions)

		return &stores{
			orders:   mongostore.NewOrderRepository(store.DB),
			carts:    mongostore.NewCartRepository(store.DB),
			products: mongostore.NewProductRepository(store.DB),
			audits:   mongostore.NewAuditLogRepository(store.DB),
			tx:       mongostore.NewTxManager(store),
			ping:     store,
			migrate:  func(ctx context.Context) error { return mongostore.EnsureIndexes(ctx, store.DB) },
			close:    func() error { return store.Close(context.Background()) },
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

package db

import (
	"fmt"

	"github.com/Raviram02/HostelBite/internal/config"
	"github.com/Raviram02/HostelBite/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the relational store selected by STORE_DRIVER.
func Connect(cfg config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(cfg)),
	}

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		return gorm.Open(postgres.Open(cfg.DatabaseURL), gcfg)
	case config.StoreDriverSQLite:
		return OpenSQLite(cfg.DatabaseURL, gcfg)
	default:
		return nil, fmt.Errorf("store driver %q is not relational", cfg.StoreDriver)
	}
}

// OpenSQLite is used for local development and tests. A single connection keeps
// in-memory databases alive and serializes writers.
func OpenSQLite(dsn string, gcfg *gorm.Config) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return gdb, nil
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Cart{},
		&model.CartItem{},
		&model.AuditLog{},
	)
}

func logLevel(cfg config.Config) logger.LogLevel {
	if cfg.LogLevel == "debug" {
		return logger.Info
	}
	return logger.Warn
}

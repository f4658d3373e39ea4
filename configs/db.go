package configs

import (
	"fmt"

	"restaurant/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// ConnectionDB opens the configured database and keeps it as the package default.
func ConnectionDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBSource)
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gormCfg := &gorm.Config{}
	if cfg.IsProduction() {
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	database, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	db = database
	return db, nil
}

// SetupDatabase migrates every table the app owns.
func SetupDatabase(database *gorm.DB) error {
	return database.AutoMigrate(
		&entity.User{},
		&entity.Customer{},
		&entity.MenuItem{},
		&entity.Table{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Reservation{},
		&entity.Inventory{},
	)
}

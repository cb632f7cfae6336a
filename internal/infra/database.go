package infra

import (
	"fmt"

	"briqtrack/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for every entity table.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates all tables. Shared with the e2e suite,
// which runs it against a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.RawMaterial{},
		&model.StockMovement{},
		&model.Supplier{},
		&model.SupplyLog{},
		&model.PurchaseOrder{},
		&model.Machine{},
		&model.MachineUsage{},
		&model.Product{},
		&model.Customer{},
		&model.Action{},
		&model.User{},
	)
}

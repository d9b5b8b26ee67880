package database

import (
	"fmt"

	"github.com/ardiwinata/cuepos/internal/config"
	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Msg("connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		// Accounts and settings
		&entity.User{},
		&entity.Outlet{},
		&entity.AuditLog{},

		// Catalog
		&entity.Category{},
		&entity.Unit{},
		&entity.Product{},

		// Billiard
		&entity.BilliardTable{},
		&entity.PricelistPackage{},
		&entity.TableSession{},
		&entity.SessionFnbItem{},

		// POS
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.KdsOrder{},
		&entity.KdsItem{},

		// Cash management
		&entity.Shift{},
		&entity.CashMovement{},

		// Inventory
		&entity.Supplier{},
		&entity.Purchase{},
		&entity.PurchaseItem{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// SeedDefaultData seeds the outlet profile, the admin account, the billiard
// tables and the standard pricelist on first boot. Existing rows are left
// untouched.
func SeedDefaultData(db *gorm.DB) error {
	log.Info().Msg("seeding default data")

	if err := seedOutlet(db); err != nil {
		return err
	}
	if err := seedAdmin(db); err != nil {
		return err
	}
	if err := seedTables(db); err != nil {
		return err
	}
	return seedPricelist(db)
}

func seedOutlet(db *gorm.DB) error {
	var count int64
	db.Model(&entity.Outlet{}).Count(&count)
	if count > 0 {
		return nil
	}
	return db.Create(&entity.Outlet{
		Name:          "Cue Palace Billiard",
		Address:       "Jl. Raya Serpong No. 88, Tangerang Selatan",
		Phone:         "021-5550088",
		TaxPercent:    0,
		ReceiptHeader: "Cue Palace Billiard & Cafe",
		ReceiptFooter: "Terima kasih atas kunjungan Anda",
	}).Error
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&entity.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	if err := db.Create(&entity.User{
		Name:         "Administrator",
		Email:        "admin@cuepos.local",
		PasswordHash: string(hash),
		Role:         enum.RoleAdmin,
		IsActive:     true,
	}).Error; err != nil {
		return err
	}

	log.Info().Str("email", "admin@cuepos.local").Msg("default admin user created")
	return nil
}

func seedTables(db *gorm.DB) error {
	var count int64
	db.Model(&entity.BilliardTable{}).Count(&count)
	if count > 0 {
		return nil
	}

	var tables []entity.BilliardTable
	for i := 1; i <= 8; i++ {
		tables = append(tables, entity.BilliardTable{
			Name:      fmt.Sprintf("Table %d", i),
			TableType: enum.TableTypePool,
			Group:     "Main Hall",
			IsActive:  true,
			Status:    enum.TableStatusFree,
		})
	}
	for i := 1; i <= 2; i++ {
		tables = append(tables, entity.BilliardTable{
			Name:      fmt.Sprintf("Snooker %d", i),
			TableType: enum.TableTypeSnooker,
			Group:     "Snooker Room",
			IsActive:  true,
			Status:    enum.TableStatusFree,
		})
	}
	for i := 1; i <= 2; i++ {
		tables = append(tables, entity.BilliardTable{
			Name:      fmt.Sprintf("VIP %d", i),
			TableType: enum.TableTypeVIP,
			Group:     "VIP Room",
			IsActive:  true,
			Status:    enum.TableStatusFree,
		})
	}
	return db.Create(&tables).Error
}

func seedPricelist(db *gorm.DB) error {
	var count int64
	db.Model(&entity.PricelistPackage{}).Count(&count)
	if count > 0 {
		return nil
	}

	packages := []entity.PricelistPackage{
		{
			Name:           "Regular Pool - Per Hour",
			TableType:      enum.TableTypePool,
			Unit:           enum.PricingUnitPerHour,
			PricePerUnit:   50000,
			Rounding:       enum.RoundingUp15,
			GraceMinutes:   2,
			MinBillMinutes: 30,
			IsActive:       true,
		},
		{
			Name:           "Pool Happy Hour - Per 15 Min",
			TableType:      enum.TableTypePool,
			Unit:           enum.PricingUnitPer15Minutes,
			PricePerUnit:   10000,
			Rounding:       enum.RoundingUp5,
			GraceMinutes:   2,
			MinBillMinutes: 15,
			IsActive:       true,
		},
		{
			Name:           "Snooker - Per Hour",
			TableType:      enum.TableTypeSnooker,
			Unit:           enum.PricingUnitPerHour,
			PricePerUnit:   60000,
			Rounding:       enum.RoundingUp15,
			GraceMinutes:   2,
			MinBillMinutes: 30,
			IsActive:       true,
		},
		{
			Name:           "VIP Experience - Per Hour",
			TableType:      enum.TableTypeVIP,
			Unit:           enum.PricingUnitPerHour,
			PricePerUnit:   75000,
			Rounding:       enum.RoundingUp10,
			GraceMinutes:   0,
			MinBillMinutes: 60,
			IsActive:       true,
		},
	}
	return db.Create(&packages).Error
}

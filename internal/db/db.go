package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/trainer-scheduler/internal/config"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

// At most one session per trainer and start instant may hold the slot.
const activeSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_trainer_active_slot
	ON sessions (trainer_id, start_time)
	WHERE status IN ('available', 'requested', 'scheduled', 'confirmed')
`

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err = gorm.Open(sqlite.Open(cfg.DBUrl), gcfg)
	case config.DriverPostgres, "":
		gcfg.PrepareStmt = true
		db, err = gorm.Open(postgres.Open(cfg.DBUrl), gcfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		// sqlite has no row locks; one connection serializes every transaction
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Client{},
		&models.ClientTrainerAssignment{},
		&models.Session{},
		&models.CreditTransaction{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return fmt.Errorf("failed to create slot index: %w", err)
	}

	return nil
}

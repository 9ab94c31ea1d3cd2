package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/turnera-api/internal/config"
	"github.com/BruksfildServices01/turnera-api/internal/infra/repository"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// confirmedSlotIndexSQL keeps one active confirmed appointment per doctor,
// office and instant. Soft-deleted rows do not hold the slot.
var confirmedSlotIndexSQL = fmt.Sprintf(`
	CREATE UNIQUE INDEX IF NOT EXISTS %s
	ON appointments (doctor_id, office_id, date_time)
	WHERE state = 'confirmado' AND active = true
`, repository.ConfirmedSlotIndex)

// Migrate creates or updates the schema and the partial indexes gorm tags
// cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Specialty{},
		&models.Coverage{},
		&models.Insurer{},
		&models.Doctor{},
		&models.Patient{},
		&models.Office{},
		&models.Schedule{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(confirmedSlotIndexSQL).Error; err != nil {
		return fmt.Errorf("create %s: %w", repository.ConfirmedSlotIndex, err)
	}

	return nil
}

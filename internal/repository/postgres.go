package repository

import (
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/medtrack/diabetes-monitor/internal/config"
	"github.com/medtrack/diabetes-monitor/internal/domain"
	"github.com/medtrack/diabetes-monitor/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	pingAttempts = 5
	pingDelay    = 2 * time.Second
)

// PostgresDB is the shared database handle. It owns the bounded connection
// pool; components receive it from the composition root instead of reaching
// for a global.
type PostgresDB struct {
	db *gorm.DB
}

// NewPostgresDB connects to PostgreSQL, configures the connection pool and
// brings the schema up to date.
func NewPostgresDB(cfg config.DBConfig) (*PostgresDB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	// The database may still be starting up; retry the first ping.
	err = retry.Do(
		sqlDB.Ping,
		retry.Attempts(pingAttempts),
		retry.Delay(pingDelay),
		retry.DelayType(retry.FixedDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("database did not become reachable: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.Patient{},
		&domain.Measurement{},
		&domain.Alert{},
		&domain.InsulinRecommendationRule{},
		&domain.InsulinRecord{},
		&domain.DietType{},
		&domain.ExerciseType{},
		&domain.DailyTrackingEntry{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := RunSeedMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to seed reference data: %w", err)
	}

	logger.Info("Database connection established and migrations completed")
	return &PostgresDB{db: db}, nil
}

// GetDB returns the underlying GORM database instance
func (p *PostgresDB) GetDB() *gorm.DB {
	return p.db
}

// Close releases all pooled connections.
func (p *PostgresDB) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package postgres

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shortener-analytics/internal/config"
	"shortener-analytics/internal/domain"
	"shortener-analytics/pkg/logger"
)

const (
	connectAttempts = 5
	connectBackoff  = 5 * time.Second
)

// gormWriter wraps our logger to implement gorm's logger.Writer interface
type gormWriter struct {
	logger *logger.Logger
}

// Printf implements the logger.Writer interface
func (w *gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Warnf(format, args...)
}

// NewGormLogger bridges gorm's slow query and error output into our logger
func NewGormLogger(log *logger.Logger) gormlogger.Interface {
	return gormlogger.New(
		&gormWriter{logger: log},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Connect opens the PostgreSQL pool with retries and sizes it from cfg
func Connect(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger:                 NewGormLogger(log),
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
			TranslateError:         true,
		})
		if err == nil {
			break
		}

		log.Warnw("Failed to connect to database, retrying", "attempt", attempt, "error", err)
		if attempt < connectAttempts {
			time.Sleep(connectBackoff)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Infow("Database connection established", "host", cfg.DBHost, "database", cfg.DBName)
	return db, nil
}

// Migrate creates or updates the link and click tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Link{}, &domain.ClickEvent{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campus/config"
	"campus/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for cfg.DBDriver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(SQLiteDSN(cfg.DBName)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// SQLiteDSN turns a file path (or ":memory:") into a DSN with foreign keys on.
func SQLiteDSN(name string) string {
	if name == ":memory:" {
		name = "file::memory:"
	}
	sep := "?"
	if strings.Contains(name, "?") {
		sep = "&"
	}
	return name + sep + "_foreign_keys=on"
}

// ParseLogLevel maps DB_LOG_LEVEL onto gorm's logger levels.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// NewGormLogger routes gorm's SQL logging through zap.
func NewGormLogger(log *zap.Logger, level logger.LogLevel) logger.Interface {
	return logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Open opens a gorm connection with the settings every driver shares.
// TranslateError makes unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of the driver.
func Open(dialector gorm.Dialector, log *zap.Logger, level logger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(log, level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ConnectDb establishes the connection described by cfg, tunes the pool and
// runs migrations.
func ConnectDb(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := Open(dialector, log, ParseLogLevel(cfg.DBLogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}

	if err := ConfigurePool(db, cfg.DBDriver, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns); err != nil {
		return nil, err
	}

	log.Info("Connected to database", zap.String("driver", cfg.DBDriver), zap.String("name", cfg.DBName))

	if err := RunMigrations(db, log); err != nil {
		return nil, err
	}

	return db, nil
}

// ConfigurePool sets up connection pooling. sqlite allows a single writer,
// and an in-memory database lives only as long as its connection, so sqlite
// is pinned to one connection.
func ConfigurePool(db *gorm.DB, driver string, maxOpen, maxIdle int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if driver == "sqlite" {
		maxOpen, maxIdle = 1, 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(0)
	return nil
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info("Migrations completed successfully.")
	return nil
}

// Ping checks that the database answers within ctx.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ecostock/ecostock-api/internal/config"
	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/migrations"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the connection pool and waits for the database to answer.
// The ping is retried with exponential backoff until cfg.ConnectTimeout elapses.
func NewDatabase(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, config.ErrMissingDatabaseURL
	}

	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	if err := pingWithRetry(ctx, sqlDB, cfg.ConnectTimeoutDuration(), log); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)

	return db, nil
}

func pingWithRetry(ctx context.Context, sqlDB *sql.DB, budget time.Duration, log *zap.Logger) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = budget

	return backoff.RetryNotify(
		func() error { return sqlDB.PingContext(ctx) },
		backoff.WithContext(b, ctx),
		func(err error, next time.Duration) {
			log.Warn("Database not reachable yet, retrying",
				zap.Error(err),
				zap.Duration("retry_in", next),
			)
		},
	)
}

// Migrate applies the embedded goose migrations
func Migrate(db *gorm.DB, dialect string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// AutoMigrate creates the schema from the domain models (tests and local development)
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Categoria{},
		&domain.Empresa{},
		&domain.Troca{},
		&domain.Comunicacao{},
		&domain.Usuario{},
	)
}

// HealthCheckWithStats pings the database and returns pool statistics
func HealthCheckWithStats(ctx context.Context, db *gorm.DB) (sql.DBStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return sql.DBStats{}, fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return sql.DBStats{}, err
	}
	return sqlDB.Stats(), nil
}

// serverTimeLayouts covers drivers that return CURRENT_TIMESTAMP as text
var serverTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// ServerTime asks the database for its current time. Postgres returns a
// timestamp, SQLite returns UTC text.
func ServerTime(ctx context.Context, db *gorm.DB) (time.Time, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get database instance: %w", err)
	}

	var raw any
	if err := sqlDB.QueryRowContext(ctx, "SELECT CURRENT_TIMESTAMP").Scan(&raw); err != nil {
		return time.Time{}, err
	}

	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case []byte:
		return parseServerTime(string(v))
	case string:
		return parseServerTime(v)
	default:
		return time.Time{}, fmt.Errorf("unexpected CURRENT_TIMESTAMP type %T", raw)
	}
}

func parseServerTime(raw string) (time.Time, error) {
	for _, layout := range serverTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable CURRENT_TIMESTAMP %q", raw)
}

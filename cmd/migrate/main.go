package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/ecostock/ecostock-api/internal/config"
	"github.com/ecostock/ecostock-api/internal/logger"
	"github.com/ecostock/ecostock-api/internal/repository"
	"github.com/ecostock/ecostock-api/internal/service"
	"github.com/ecostock/ecostock-api/migrations"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const usage = "usage: migrate [up|down|status|version|create <name>|hash-passwords]"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.URL == "" {
		return config.ErrMissingDatabaseURL
	}

	args := os.Args[1:]
	if len(args) == 0 {
		return errors.New(usage)
	}
	command := args[0]
	arguments := args[1:]

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if command == "hash-passwords" {
		return hashPasswords(cfg, db)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	// create writes a new file to disk, everything else reads the embedded set
	const migrationsDir = "./migrations"
	if command != "create" {
		goose.SetBaseFS(migrations.FS)
	}

	switch command {
	case "up":
		if err := goose.Up(db, "."); err != nil {
			return fmt.Errorf("failed to run up migrations: %w", err)
		}
		fmt.Println("Migrations applied successfully")

	case "down":
		if err := goose.Down(db, "."); err != nil {
			return fmt.Errorf("failed to run down migration: %w", err)
		}
		fmt.Println("Migration rolled back successfully")

	case "status":
		if err := goose.Status(db, "."); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}

	case "version":
		if err := goose.Version(db, "."); err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}

	case "create":
		if len(arguments) == 0 {
			return fmt.Errorf("create requires a migration name")
		}
		if err := goose.Create(db, migrationsDir, arguments[0], "sql"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		fmt.Printf("Migration created: %s\n", arguments[0])

	default:
		return fmt.Errorf("unknown command: %s\n%s", command, usage)
	}

	return nil
}

// hashPasswords replaces plaintext admin passwords with bcrypt hashes
func hashPasswords(cfg *config.Config, sqlDB *sql.DB) error {
	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	authService := service.NewAuthService(repository.NewUsuarioRepository(db), log)
	n, err := authService.HashPlaintextPasswords(context.Background())
	if err != nil {
		return fmt.Errorf("failed to hash passwords: %w", err)
	}
	log.Info("Plaintext passwords hashed", zap.Int("updated", n))
	fmt.Printf("Hashed %d password(s)\n", n)
	return nil
}

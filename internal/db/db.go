package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rajatkhanna/invoice-api/internal/config"
	"github.com/rajatkhanna/invoice-api/internal/models"
)

// ConnectAndMigrate opens the configured database and brings the schema up.
// With MIGRATIONS=1 (postgres only) SQL migrations in ./migrations run via
// golang-migrate; otherwise AutoMigrate keeps dev and test setups simple.
func ConnectAndMigrate(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	switch cfg.DBDriver {
	case "postgres":
		// Postgres may still be starting alongside us; retry briefly.
		for i := 0; i < 10; i++ {
			conn, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), gormCfg)
			if err == nil {
				break
			}
			time.Sleep(2 * time.Second)
		}
	case "sqlite", "":
		conn, err = gorm.Open(sqlite.Open(cfg.DatabaseDSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if migrationsRequested() {
		if cfg.DBDriver != "postgres" {
			return nil, fmt.Errorf("SQL migrations require DB_DRIVER=postgres")
		}
		if err := runSQLMigrations(cfg.DatabaseDSN); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(conn); err != nil {
			return nil, err
		}
	}
	return conn, nil
}

// AutoMigrate creates or updates the invoicing tables.
func AutoMigrate(conn *gorm.DB) error {
	for _, m := range []any{&models.Client{}, &models.Invoice{}} {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

func migrationsRequested() bool {
	v := strings.ToLower(os.Getenv("MIGRATIONS"))
	return v == "1" || v == "true" || v == "yes"
}

// runSQLMigrations executes migrations in ./migrations using the file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

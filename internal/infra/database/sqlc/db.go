package sqlc

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"city-api/pkg/log"
	"city-api/pkg/resource"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the connection settings read from app.db.*
type Config struct {
	Driver     string
	Host       string
	Port       string
	Username   string
	Password   string
	Database   string
	Schema     string
	SSLMode    string
	SQLitePath string
}

// ConfigFromProperties reads the database settings from application properties
func ConfigFromProperties() Config {
	return Config{
		Driver:     resource.GetStringOrDefault("app.db.driver", DriverPostgres),
		Host:       resource.GetString("app.db.host"),
		Port:       resource.GetString("app.db.port"),
		Username:   resource.GetString("app.db.username"),
		Password:   resource.GetString("app.db.password"),
		Database:   resource.GetString("app.db.database"),
		Schema:     resource.GetStringOrDefault("app.db.schema", "public"),
		SSLMode:    resource.GetStringOrDefault("app.db.ssl-mode", "disable"),
		SQLitePath: resource.GetStringOrDefault("app.db.sqlite-path", "data/cities.db"),
	}
}

// DSN builds the data source name for the configured driver
func (c Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode, c.Schema)
}

// Open connects to the database and applies pending migrations
func Open(ctx context.Context, config Config) (*sql.DB, error) {
	if config.Driver != DriverPostgres && config.Driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	if config.Driver == DriverSQLite {
		if dir := filepath.Dir(config.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
	}

	db, err := sql.Open(config.Driver, config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	if config.Driver == DriverSQLite {
		// SQLite serializes writers, a single connection avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	if err := NewMigrator(db, config.Driver).MigrateUp(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}

	log.Info("database ready", zap.String("driver", config.Driver))
	return db, nil
}

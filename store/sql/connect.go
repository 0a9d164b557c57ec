package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// ConnectionConfig carries the settings the persistence client needs to open
// and identify one database connection.
type ConnectionConfig struct {
	Driver         string
	DSN            string
	Debug          bool
	PingTimeout    time.Duration
	OtelIdentifier string
}

func (c ConnectionConfig) GetDebug() bool {
	return c.Debug
}

func (c ConnectionConfig) GetDriver() string {
	return c.Driver
}

func (c ConnectionConfig) GetServer() string {
	return c.DSN
}

func (c ConnectionConfig) GetPingTimeout() time.Duration {
	if c.PingTimeout <= 0 {
		return 5 * time.Second
	}
	return c.PingTimeout
}

func (c ConnectionConfig) GetOtelIdentifier() string {
	if strings.TrimSpace(c.OtelIdentifier) == "" {
		return "go-wallet-accounts"
	}
	return c.OtelIdentifier
}

// Connect opens the configured database and wraps it in a persistence client
// with the matching bun dialect. Callers own the returned client and should
// Close it when done.
func Connect(cfg ConnectionConfig) (*persistence.Client, error) {
	driver := strings.TrimSpace(cfg.Driver)
	if driver == "" {
		driver = DriverPostgres
		cfg.Driver = driver
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("sqlstore: connection dsn is required")
	}

	sqlDB, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s connection: %w", driver, err)
	}

	var client *persistence.Client
	switch driver {
	case DriverPostgres:
		client, err = persistence.New(cfg, sqlDB, pgdialect.New())
	case DriverSQLite:
		// Shared-cache in-memory databases need a single connection or
		// concurrent writers deadlock.
		if strings.Contains(cfg.DSN, "mode=memory") {
			sqlDB.SetMaxOpenConns(1)
		}
		client, err = persistence.New(cfg, sqlDB, sqlitedialect.New())
	default:
		err = fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return client, nil
}

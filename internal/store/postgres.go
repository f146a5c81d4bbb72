package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/eaglebank/signup-service/internal/config"
	"github.com/lib/pq"
)

// Open connects to Postgres as the service role and verifies the connection.
func Open(ctx context.Context, cfg config.StoreConfig) (*sql.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// DSN turns the store URL into a lib/pq key/value connection string and injects the
// service key as the password unless the URL already carries one.
func DSN(cfg config.StoreConfig) (string, error) {
	dsn := strings.TrimSpace(cfg.URL)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		kv, err := pq.ParseURL(dsn)
		if err != nil {
			return "", fmt.Errorf("invalid store URL: %w", err)
		}
		dsn = kv
	}
	if hasPassword(dsn) || cfg.ServiceKey == "" {
		return dsn, nil
	}
	return dsn + " password=" + quoteValue(cfg.ServiceKey), nil
}

func hasPassword(kv string) bool {
	return strings.HasPrefix(kv, "password=") || strings.Contains(kv, " password=")
}

func quoteValue(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

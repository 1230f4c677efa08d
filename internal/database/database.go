package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"todo-api/internal/config"
)

const (
	initAttempts   = 3
	initRetryDelay = 2 * time.Second
)

// created_at and updated_at are server-assigned; updated_at refreshes on
// every UPDATE so the service never computes timestamps itself.
const createTableQuery = `
CREATE TABLE IF NOT EXISTS todos (
	id INT AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT,
	completed BOOLEAN DEFAULT FALSE,
	created_at TIMESTAMP NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// dsn builds the driver config. TLS is disabled for this deployment profile
// and connection attempts are bounded by cfg.ConnectTimeout. ClientFoundRows
// makes RowsAffected count matched rows, otherwise a no-op update is
// indistinguishable from an absent id.
func dsn(cfg config.DBConfig, withName bool) string {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = cfg.Addr()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	if withName {
		mc.DBName = cfg.Name
	}
	mc.Timeout = cfg.ConnectTimeout
	mc.ParseTime = true
	mc.ClientFoundRows = true
	return mc.FormatDSN()
}

// Connect opens a handle to the service database and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(cfg, true))
	if err != nil {
		return nil, fmt.Errorf("mysql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	return db, nil
}

// Init creates the database and the todos table if absent. dropTable drops
// the table first — test fixtures only, never safe against live traffic.
//
// Runs up to 3 attempts with a constant 2s delay. Each attempt opens and
// closes its own handles, so nothing leaks across retries; on exhaustion
// the last error is returned and callers treat it as fatal to startup.
func Init(ctx context.Context, cfg config.DBConfig, dropTable bool, log *zap.Logger) error {
	attempt := 0
	op := func() error {
		attempt++
		if err := initOnce(ctx, cfg, dropTable); err != nil {
			log.Warn("database init failed",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", initAttempts),
				zap.Error(err))
			return err
		}
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(initRetryDelay), initAttempts-1),
		ctx,
	)
	if err := backoff.Retry(op, bo); err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	log.Info("database initialized", zap.String("database", cfg.Name))
	return nil
}

func initOnce(ctx context.Context, cfg config.DBConfig, dropTable bool) error {
	// Connect without a database selected so it can be created first.
	admin, err := sql.Open("mysql", dsn(cfg, false))
	if err != nil {
		return fmt.Errorf("mysql open: %w", err)
	}
	defer admin.Close()

	if _, err := admin.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS "+cfg.Name); err != nil {
		return fmt.Errorf("create database %s: %w", cfg.Name, err)
	}

	db, err := sql.Open("mysql", dsn(cfg, true))
	if err != nil {
		return fmt.Errorf("mysql open %s: %w", cfg.Name, err)
	}
	defer db.Close()

	if dropTable {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS todos"); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

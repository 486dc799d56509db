// Package database provisions the test database a run needs, if any.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"regexp"

	"github.com/go-sql-driver/mysql"

	"quietest/internal/config"
)

// validName limits names to what can be safely quoted in CREATE DATABASE
var validName = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// DatabaseManager manages the test database
type DatabaseManager struct {
	config *config.Config
}

// NewDatabaseManager creates a new DatabaseManager
func NewDatabaseManager(cfg *config.Config) *DatabaseManager {
	return &DatabaseManager{config: cfg}
}

// DSN returns the server DSN (no database selected) from DB_* variables in
// the environment or the project's .env file
func (dm *DatabaseManager) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = dm.getenv("DB_USERNAME", "root")
	cfg.Passwd = dm.getenv("DB_PASSWORD", "")
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(dm.getenv("DB_HOST", "127.0.0.1"), dm.getenv("DB_PORT", "3306"))
	return cfg.FormatDSN()
}

// EnsureDatabase creates the named database if it does not exist yet.
// It reports whether the database had to be created.
func (dm *DatabaseManager) EnsureDatabase(ctx context.Context, name string) (bool, error) {
	if !IsValidDatabaseName(name) {
		return false, fmt.Errorf("invalid database name: %q", name)
	}

	db, err := sql.Open("mysql", dm.DSN())
	if err != nil {
		return false, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return false, fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := databaseExists(ctx, db, name)
	if err != nil {
		return false, fmt.Errorf("failed to check database %s: %w", name, err)
	}
	if exists {
		return false, nil
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return false, fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return true, nil
}

// IsValidDatabaseName reports whether name is a plain identifier
func IsValidDatabaseName(name string) bool {
	return validName.MatchString(name)
}

func databaseExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, name).Scan(&exists)
	return exists, err
}

func (dm *DatabaseManager) getenv(key, fallback string) string {
	if value := dm.config.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// DB represents the database connection
type DB struct {
	*sql.DB
	logger *logrus.Logger
}

// Config represents database configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN builds the lib/pq connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// NewDB creates a new database connection
func NewDB(config *Config, logger *logrus.Logger) (*DB, error) {
	return Open(config.DSN(), logger)
}

// Open connects with a DSN or postgres:// URL
func Open(dsn string, logger *logrus.Logger) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 接続をテスト
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// 接続プールの設定
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("データベースに接続しました")

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	db.logger.Info("データベース接続を閉じています")
	return db.DB.Close()
}

// schema は起動時に適用するDDL（何度実行しても同じ結果になる）
var schema = []string{
	`CREATE TABLE IF NOT EXISTS journals (
		id UUID PRIMARY KEY,
		date DATE NOT NULL UNIQUE,
		weather VARCHAR(20),
		weather_comment VARCHAR(20) NOT NULL DEFAULT '',
		feeling VARCHAR(20),
		feeling_comment VARCHAR(30) NOT NULL DEFAULT '',
		contents TEXT NOT NULL DEFAULT '',
		image_ids TEXT[] NOT NULL DEFAULT '{}',
		memo VARCHAR(100) NOT NULL DEFAULT '',
		saved BOOLEAN NOT NULL DEFAULT FALSE,
		locked BOOLEAN NOT NULL DEFAULT FALSE,
		registered_on TIMESTAMPTZ NOT NULL,
		modified_on TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name VARCHAR(20) NOT NULL,
		color_type VARCHAR(20) NOT NULL,
		order_no INTEGER NOT NULL DEFAULT 0,
		removed BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id UUID PRIMARY KEY,
		category_id UUID NOT NULL,
		contents VARCHAR(30) NOT NULL,
		memo VARCHAR(50) NOT NULL DEFAULT '',
		is_period BOOLEAN NOT NULL DEFAULT FALSE,
		start_date_time TIMESTAMP NOT NULL,
		end_date_time TIMESTAMP NOT NULL,
		start_date DATE NOT NULL,
		status VARCHAR(20) NOT NULL,
		registered_on TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_start_date ON todos (start_date)`,
	`CREATE TABLE IF NOT EXISTS anniversaries (
		id UUID PRIMARY KEY,
		date_type VARCHAR(10) NOT NULL,
		date DATE NOT NULL,
		name VARCHAR(30) NOT NULL,
		weight VARCHAR(10) NOT NULL,
		registered_on TIMESTAMPTZ NOT NULL,
		modified_on TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		name VARCHAR(50) NOT NULL DEFAULT '',
		birth_date DATE,
		phone_number VARCHAR(30) NOT NULL DEFAULT '',
		remark VARCHAR(200) NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		notification_time VARCHAR(5) NOT NULL DEFAULT '21:00',
		is_dark BOOLEAN NOT NULL DEFAULT FALSE,
		font_type VARCHAR(20) NOT NULL DEFAULT '',
		registered_on TIMESTAMPTZ NOT NULL,
		modified_on TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate creates the tables and indexes when they do not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	db.logger.Info("スキーマを適用しました")
	return nil
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Config アプリケーション設定
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	S3       S3Config
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Service  ServiceConfig
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port        string
	Mode        string
	CORSOrigins string
}

// LogConfig ログ設定
type LogConfig struct {
	Level          string
	Directory      string
	UploadEnabled  bool
	UploadMaxAge   time.Duration
	UploadInterval time.Duration
}

// S3Config S3設定
type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	UseSSL          bool
}

// DatabaseConfig データベース設定。Driverが"memory"の場合はDBに接続しない
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	Migrate  bool
}

// AuthConfig 認証設定
type AuthConfig struct {
	Password      string
	JWTSecret     string
	JWTExpiresIn  time.Duration
	AttemptLimit  int
	AttemptWindow time.Duration
}

// RedisConfig Redis設定（ログイン試行回数の保存先）
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// ServiceConfig サービス固有の設定
type ServiceConfig struct {
	StartDate       string
	Timezone        string
	CalendarPadding bool
}

// LoadConfig 環境変数から設定を読み込み
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			Mode:        getEnv("GIN_MODE", "release"),
			CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Log: LogConfig{
			Level:          getEnv("LOG_LEVEL", "info"),
			Directory:      getEnv("LOG_DIRECTORY", "logs"),
			UploadEnabled:  getBoolEnv("LOG_UPLOAD_ENABLED", false),
			UploadMaxAge:   getDurationEnv("LOG_UPLOAD_MAX_AGE", 24*time.Hour),
			UploadInterval: getDurationEnv("LOG_UPLOAD_INTERVAL", 1*time.Hour),
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", "http://localhost:9000"), // MinIO用のデフォルト
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "lifelog-logs"),
			UseSSL:          getBoolEnv("S3_USE_SSL", false),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "memory"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getIntEnv("DB_PORT", 5432),
			User:     getEnv("DB_USER", "lifelog_user"),
			Password: getEnv("DB_PASSWORD", "lifelog_password"),
			Name:     getEnv("DB_NAME", "lifelog_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Migrate:  getBoolEnv("DB_MIGRATE", true),
		},
		Auth: AuthConfig{
			Password:      getEnv("APP_PASSWORD", ""),
			JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
			JWTExpiresIn:  getDurationEnv("JWT_EXPIRES_IN", 24*time.Hour),
			AttemptLimit:  getIntEnv("PASSWORD_ATTEMPT_LIMIT", 5),
			AttemptWindow: getDurationEnv("PASSWORD_ATTEMPT_WINDOW", 10*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Service: ServiceConfig{
			StartDate:       getEnv("SERVICE_START_DATE", "2025-01-01"),
			Timezone:        getEnv("SERVICE_TIMEZONE", "Asia/Seoul"),
			CalendarPadding: getBoolEnv("CALENDAR_PADDING", true),
		},
	}
}

// Location 設定されたタイムゾーンを返す（不正な値ならUTC）
func (c ServiceConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv 環境変数をintで取得
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getBoolEnv 環境変数をboolで取得
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv 環境変数をtime.Durationで取得
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Auth    AuthConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Email   EmailConfig
	Billing BillingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds the single-operator login credentials. The password is a
// bcrypt hash, never plaintext.
type AuthConfig struct {
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"`
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for exported workbook uploads.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// BillingConfig holds invoice editor defaults.
type BillingConfig struct {
	DefaultGSTRate float64 `mapstructure:"default_gst_rate"`
}

// Load reads configuration from environment variables with the BILLFORGE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billforge")
	v.SetDefault("db.password", "billforge_secret")
	v.SetDefault("db.name", "billforge_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Auth defaults (bcrypt hash of "admin", development only)
	v.SetDefault("auth.email", "admin@billforge.local")
	v.SetDefault("auth.password_hash", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "billforge")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "billforge-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@billforge.local")
	v.SetDefault("email.from_name", "BillForge")

	// Billing defaults
	v.SetDefault("billing.default_gst_rate", 18.0)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "BILLFORGE_SERVER_PORT",
		"server.read_timeout":      "BILLFORGE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "BILLFORGE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "BILLFORGE_SERVER_ENVIRONMENT",
		"db.host":                  "BILLFORGE_DB_HOST",
		"db.port":                  "BILLFORGE_DB_PORT",
		"db.user":                  "BILLFORGE_DB_USER",
		"db.password":              "BILLFORGE_DB_PASSWORD",
		"db.name":                  "BILLFORGE_DB_NAME",
		"db.sslmode":               "BILLFORGE_DB_SSLMODE",
		"db.max_open":              "BILLFORGE_DB_MAX_OPEN",
		"db.max_idle":              "BILLFORGE_DB_MAX_IDLE",
		"auth.email":               "BILLFORGE_AUTH_EMAIL",
		"auth.password_hash":       "BILLFORGE_AUTH_PASSWORD_HASH",
		"jwt.secret":               "BILLFORGE_JWT_SECRET",
		"jwt.access_expiry":        "BILLFORGE_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":       "BILLFORGE_JWT_REFRESH_EXPIRY",
		"jwt.issuer":               "BILLFORGE_JWT_ISSUER",
		"s3.region":                "BILLFORGE_S3_REGION",
		"s3.bucket":                "BILLFORGE_S3_BUCKET",
		"s3.endpoint":              "BILLFORGE_S3_ENDPOINT",
		"s3.access_key":            "BILLFORGE_S3_ACCESS_KEY",
		"s3.secret_key":            "BILLFORGE_S3_SECRET_KEY",
		"s3.presign_expiry":        "BILLFORGE_S3_PRESIGN_EXPIRY",
		"log.level":                "BILLFORGE_LOG_LEVEL",
		"log.format":               "BILLFORGE_LOG_FORMAT",
		"cors.allowed_origins":     "BILLFORGE_CORS_ALLOWED_ORIGINS",
		"email.provider":           "BILLFORGE_EMAIL_PROVIDER",
		"email.region":             "BILLFORGE_EMAIL_REGION",
		"email.from_address":       "BILLFORGE_EMAIL_FROM_ADDRESS",
		"email.from_name":          "BILLFORGE_EMAIL_FROM_NAME",
		"billing.default_gst_rate": "BILLFORGE_BILLING_DEFAULT_GST_RATE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLFORGE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLFORGE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Auth = AuthConfig{
		Email:        v.GetString("auth.email"),
		PasswordHash: v.GetString("auth.password_hash"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Billing = BillingConfig{
		DefaultGSTRate: v.GetFloat64("billing.default_gst_rate"),
	}

	return cfg, nil
}

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
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Email  EmailConfig
	Trash  TrashConfig
	Render RenderConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// TrashConfig holds soft-delete retention and purge worker settings.
type TrashConfig struct {
	RetentionDays    int `mapstructure:"retention_days"`
	PurgeIntervalMin int `mapstructure:"purge_interval_min"`
}

// Retention returns the retention window as a duration.
func (t *TrashConfig) Retention() time.Duration {
	return time.Duration(t.RetentionDays) * 24 * time.Hour
}

// RenderConfig holds document rendering settings.
type RenderConfig struct {
	FontFamily string `mapstructure:"font_family"`
	Currency   string `mapstructure:"currency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
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

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds settings for the bucket archived PDFs are stored in.
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

// Load reads configuration from environment variables with the PREVENTIVI_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PREVENTIVI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "preventivi")
	v.SetDefault("db.password", "preventivi_secret")
	v.SetDefault("db.name", "preventivi_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "preventivi")

	// S3 defaults
	v.SetDefault("s3.region", "eu-south-1")
	v.SetDefault("s3.bucket", "preventivi-pdf")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-south-1")
	v.SetDefault("email.from_address", "noreply@preventivi.local")
	v.SetDefault("email.from_name", "Preventivi")

	// Trash defaults
	v.SetDefault("trash.retention_days", 30)
	v.SetDefault("trash.purge_interval_min", 60)

	// Render defaults
	v.SetDefault("render.font_family", "Helvetica")
	v.SetDefault("render.currency", "EUR")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "PREVENTIVI_SERVER_PORT",
		"server.read_timeout":      "PREVENTIVI_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "PREVENTIVI_SERVER_WRITE_TIMEOUT",
		"server.environment":       "PREVENTIVI_SERVER_ENVIRONMENT",
		"db.host":                  "PREVENTIVI_DB_HOST",
		"db.port":                  "PREVENTIVI_DB_PORT",
		"db.user":                  "PREVENTIVI_DB_USER",
		"db.password":              "PREVENTIVI_DB_PASSWORD",
		"db.name":                  "PREVENTIVI_DB_NAME",
		"db.sslmode":               "PREVENTIVI_DB_SSLMODE",
		"db.max_open":              "PREVENTIVI_DB_MAX_OPEN",
		"db.max_idle":              "PREVENTIVI_DB_MAX_IDLE",
		"jwt.secret":               "PREVENTIVI_JWT_SECRET",
		"jwt.access_expiry":        "PREVENTIVI_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":       "PREVENTIVI_JWT_REFRESH_EXPIRY",
		"jwt.issuer":               "PREVENTIVI_JWT_ISSUER",
		"s3.region":                "PREVENTIVI_S3_REGION",
		"s3.bucket":                "PREVENTIVI_S3_BUCKET",
		"s3.endpoint":              "PREVENTIVI_S3_ENDPOINT",
		"s3.access_key":            "PREVENTIVI_S3_ACCESS_KEY",
		"s3.secret_key":            "PREVENTIVI_S3_SECRET_KEY",
		"s3.presign_expiry":        "PREVENTIVI_S3_PRESIGN_EXPIRY",
		"log.level":                "PREVENTIVI_LOG_LEVEL",
		"log.format":               "PREVENTIVI_LOG_FORMAT",
		"cors.allowed_origins":     "PREVENTIVI_CORS_ALLOWED_ORIGINS",
		"email.provider":           "PREVENTIVI_EMAIL_PROVIDER",
		"email.region":             "PREVENTIVI_EMAIL_REGION",
		"email.from_address":       "PREVENTIVI_EMAIL_FROM_ADDRESS",
		"email.from_name":          "PREVENTIVI_EMAIL_FROM_NAME",
		"trash.retention_days":     "PREVENTIVI_TRASH_RETENTION_DAYS",
		"trash.purge_interval_min": "PREVENTIVI_TRASH_PURGE_INTERVAL_MIN",
		"render.font_family":       "PREVENTIVI_RENDER_FONT_FAMILY",
		"render.currency":          "PREVENTIVI_RENDER_CURRENCY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Container platforms set a PORT env var. Use it if PREVENTIVI_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PREVENTIVI_SERVER_PORT") == "" {
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

	cfg.Trash = TrashConfig{
		RetentionDays:    v.GetInt("trash.retention_days"),
		PurgeIntervalMin: v.GetInt("trash.purge_interval_min"),
	}
	if cfg.Trash.RetentionDays <= 0 {
		return nil, fmt.Errorf("trash.retention_days must be positive, got %d", cfg.Trash.RetentionDays)
	}

	cfg.Render = RenderConfig{
		FontFamily: v.GetString("render.font_family"),
		Currency:   v.GetString("render.currency"),
	}

	return cfg, nil
}

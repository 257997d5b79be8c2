package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// devJWTSecret is only accepted when APP_MODE=dev
const devJWTSecret = "dev_secret_change_me"

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	CORSOrigin string
	Database   DatabaseConfig
	JWT        JWTConfig
	Upload     UploadConfig
	Seed       SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	MaxOpenConns int
	MaxIdleConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	ExpireDays int
}

// Expiry returns the token lifetime
func (j JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpireDays) * 24 * time.Hour
}

// UploadConfig holds image upload configuration
type UploadConfig struct {
	Dir   string
	MaxMB int
}

// MaxBytes returns the upload size limit in bytes
func (u UploadConfig) MaxBytes() int64 {
	return int64(u.MaxMB) << 20
}

// SeedConfig describes an optional warden account created on boot in dev
type SeedConfig struct {
	WardenEmail    string
	WardenPassword string
	WardenName     string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", cfg.AppMode)
	return cfg, nil
}

// FromEnv builds a Config from the current environment only
func FromEnv() (*Config, error) {
	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	jwtCfg, err := loadJWTConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppMode:    appMode,
		Port:       getEnv("PORT", "5000"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),
		Database:   loadDatabaseConfig(),
		JWT:        jwtCfg,
		Upload: UploadConfig{
			Dir:   getEnv("UPLOAD_DIR", "uploads"),
			MaxMB: getEnvInt("UPLOAD_MAX_MB", 5),
		},
		Seed: SeedConfig{
			WardenEmail:    strings.ToLower(strings.TrimSpace(getEnv("SEED_WARDEN_EMAIL", ""))),
			WardenPassword: getEnv("SEED_WARDEN_PASSWORD", ""),
			WardenName:     getEnv("SEED_WARDEN_NAME", "Hostel Warden"),
		},
	}

	// Production refuses to start without a secret
	if cfg.JWT.Secret == "" {
		if cfg.IsProd() {
			return nil, fmt.Errorf("JWT_SECRET is required when APP_MODE=prod")
		}
		cfg.JWT.Secret = devJWTSecret
	}

	return cfg, nil
}

// loadDatabaseConfig loads database config
func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         getEnv("DB_PORT", "3306"),
		User:         getEnv("DB_USER", "root"),
		Password:     getEnv("DB_PASSWORD", ""),
		DBName:       getEnv("DB_NAME", "hostel_complaints"),
		MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
	}
}

// loadJWTConfig loads JWT config. An unset secret is left empty.
func loadJWTConfig() (JWTConfig, error) {
	days := getEnvInt("JWT_EXPIRE_DAYS", 7)
	if days < 1 {
		return JWTConfig{}, fmt.Errorf("invalid JWT_EXPIRE_DAYS: %d", days)
	}

	return JWTConfig{
		Secret:     getEnv("JWT_SECRET", ""),
		ExpireDays: days,
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable, falling back on parse errors
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		log.Printf("⚠️ Invalid %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return n
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// Package config загружает настройки сервиса из окружения и .env.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	// StoreFile хранит коллекцию в JSON-файле.
	StoreFile = "file"
	// StorePostgres хранит коллекцию одним JSONB-документом в PostgreSQL.
	StorePostgres = "postgres"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort      string        `env:"SERVER_PORT" envDefault:"8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Хранилище
	StoreDriver string `env:"STORE_DRIVER" envDefault:"file"`
	UsersFile   string `env:"USERS_FILE" envDefault:"var/users.json"`
	DatabaseDSN string `env:"DB_DSN"`

	// Проверки ранней версии API: формат и уникальность email, уникальность имени.
	StrictValidation bool `env:"STRICT_VALIDATION" envDefault:"false"`

	Auth struct {
		AccountsFile      string        `env:"AUTH_ACCOUNTS_FILE" envDefault:"var/accounts.json"`
		AdminLogin        string        `env:"AUTH_ADMIN_LOGIN"`
		AdminPasswordHash string        `env:"AUTH_ADMIN_PASSWORD_HASH"`
		JWTSecret         string        `env:"AUTH_JWT_SECRET"`
		JWTIssuer         string        `env:"AUTH_JWT_ISSUER" envDefault:"user-directory-service"`
		JWTTTL            time.Duration `env:"AUTH_JWT_TTL" envDefault:"1h"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreFile:
		if c.UsersFile == "" {
			return errors.New("USERS_FILE must not be empty")
		}
	case StorePostgres:
		if c.DatabaseDSN == "" {
			return errors.New("DB_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (use %q or %q)", c.StoreDriver, StoreFile, StorePostgres)
	}

	if (c.Auth.AdminLogin == "") != (c.Auth.AdminPasswordHash == "") {
		return errors.New("AUTH_ADMIN_LOGIN and AUTH_ADMIN_PASSWORD_HASH must be set together")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/bytes"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port      string `yaml:"port"`
		BodyLimit string `yaml:"body_limit"`
	} `yaml:"server"`

	Database struct {
		URL             string `yaml:"url"`
		MaxConns        int    `yaml:"max_conns"`
		MinConns        int    `yaml:"min_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		AutoMigrate     bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	Ingest struct {
		// RowTransaction wraps each row's student and account upserts in one
		// transaction. Off by default: rows are two independent statements.
		RowTransaction bool   `yaml:"row_transaction"`
		ImportBaseDir  string `yaml:"import_base_dir"`
	} `yaml:"ingest"`

	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
}

// Load builds the configuration from defaults, an optional YAML file, an
// optional .env file and the process environment, in that order.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", configPath, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Server.Port = "8080"
	cfg.Server.BodyLimit = "10M"

	cfg.Database.MaxConns = 10
	cfg.Database.MinConns = 1
	cfg.Database.ConnMaxLifetime = "1h"

	cfg.Ingest.ImportBaseDir = "."

	cfg.Logging.Level = "info"
	cfg.Logging.Pretty = false
}

func applyEnv(cfg *Config) error {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.BodyLimit = getEnv("BODY_LIMIT", cfg.Server.BodyLimit)
	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)
	cfg.Database.ConnMaxLifetime = getEnv("DB_CONN_MAX_LIFETIME", cfg.Database.ConnMaxLifetime)
	cfg.Ingest.ImportBaseDir = getEnv("IMPORT_BASE_DIR", cfg.Ingest.ImportBaseDir)
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)

	var err error
	if cfg.Database.MaxConns, err = getEnvInt("DB_MAX_CONNS", cfg.Database.MaxConns); err != nil {
		return err
	}
	if cfg.Database.MinConns, err = getEnvInt("DB_MIN_CONNS", cfg.Database.MinConns); err != nil {
		return err
	}
	if cfg.Database.AutoMigrate, err = getEnvBool("DB_AUTO_MIGRATE", cfg.Database.AutoMigrate); err != nil {
		return err
	}
	if cfg.Ingest.RowTransaction, err = getEnvBool("INGEST_ROW_TRANSACTION", cfg.Ingest.RowTransaction); err != nil {
		return err
	}
	if cfg.Logging.Pretty, err = getEnvBool("LOG_PRETTY", cfg.Logging.Pretty); err != nil {
		return err
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("server port is required")
	}
	if _, err := bytes.Parse(c.Server.BodyLimit); err != nil {
		return fmt.Errorf("server body_limit %q: %w", c.Server.BodyLimit, err)
	}
	if c.Database.MaxConns <= 0 {
		return errors.New("database max_conns must be positive")
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return errors.New("database min_conns must be between 0 and max_conns")
	}
	if _, err := time.ParseDuration(c.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("database conn_max_lifetime: %w", err)
	}
	return nil
}

// RequireDatabase reports an error when no database URL is configured.
func (c *Config) RequireDatabase() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

func (c *Config) ConnMaxLifetime() time.Duration {
	d, _ := time.ParseDuration(c.Database.ConnMaxLifetime)
	return d
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

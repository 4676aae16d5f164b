package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var defaults = map[string]interface{}{
	"app.name":                 "explorer",
	"app.environment":          "development",
	"server.port":              8080,
	"server.shutdown_timeout":  "5s",
	"source.kind":              SourceFile,
	"source.path":              "Datafiniti_Fast_Food_Restaurants.csv",
	"source.s3.bucket":         "",
	"source.s3.key":            "",
	"source.s3.region":         "",
	"source.postgres.host":     "",
	"source.postgres.port":     5432,
	"source.postgres.database": "",
	"source.postgres.user":     "",
	"source.postgres.password": "",
	"source.postgres.sslmode":  "disable",
	"source.postgres.table":    "locations",
	"logging.level":            "info",
	"logging.format":           "json",
}

// Load reads configuration from path, or from config.yaml in ./configs or
// the working directory when path is empty. Environment variables override
// file values, e.g. SOURCE_KIND or SERVER_PORT. A .env file is honoured.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// applyDefaults fills values that depend on other settings.
func applyDefaults(cfg *Config) {
	cfg.Source.Kind = strings.ToLower(strings.TrimSpace(cfg.Source.Kind))
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = SourceFile
	}
	if cfg.Logging.Format == "" {
		if cfg.App.Environment == "development" {
			cfg.Logging.Format = "console"
		} else {
			cfg.Logging.Format = "json"
		}
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", cfg.Server.Port)
	}

	switch cfg.Source.Kind {
	case SourceFile:
		if cfg.Source.Path == "" {
			return fmt.Errorf("source.path is required")
		}
	case SourceS3:
		if cfg.Source.S3.Bucket == "" || cfg.Source.S3.Key == "" {
			return fmt.Errorf("source.s3.bucket and source.s3.key are required")
		}
	case SourcePostgres:
		if cfg.Source.Postgres.Host == "" {
			return fmt.Errorf("source.postgres.host is required")
		}
		if cfg.Source.Postgres.Database == "" {
			return fmt.Errorf("source.postgres.database is required")
		}
		if cfg.Source.Postgres.Table == "" {
			return fmt.Errorf("source.postgres.table is required")
		}
	default:
		return fmt.Errorf("unknown source.kind %q", cfg.Source.Kind)
	}
	return nil
}

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	AdminPassword string
	BaseURL       string
	ConfigFile    string
}

// FileConfig mirrors Config for the optional YAML file.
type FileConfig struct {
	Port          int    `yaml:"port"`
	DatabaseURL   string `yaml:"database_url"`
	DatabaseType  string `yaml:"database_type"`
	AdminPassword string `yaml:"admin_password"`
	BaseURL       string `yaml:"base_url"`
}

// LoadFile reads a YAML config file.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fc, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file: %w", err)
	}
	return fc, nil
}

// ParseFlags resolves configuration. Flags win over environment variables,
// which win over the YAML file.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("tokenpoll", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (file path for sqlite)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in token links")
	fs.StringVar(&cfg.ConfigFile, "c", "", "Path to YAML config file")

	// Secret (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CONFIG_FILE")
	}
	var file FileConfig
	if cfg.ConfigFile != "" {
		fc, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		file = fc
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = 3000 // default
		}
	}

	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), file.DatabaseType, DatabaseSQLite)
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), file.DatabaseURL)
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "data.db"
	}

	// Secret - MUST be provided
	cfg.AdminPassword = firstNonEmpty(cfg.AdminPassword, os.Getenv("ADMIN_PASSWORD"), file.AdminPassword)
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}

	cfg.BaseURL = firstNonEmpty(cfg.BaseURL, os.Getenv("APP_BASE_URL"), file.BaseURL,
		"http://localhost:"+strconv.Itoa(cfg.Port))

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

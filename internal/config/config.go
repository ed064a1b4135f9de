package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Identity provider names accepted by auth_mode.
const (
	AuthStub     = "stub"
	AuthPassword = "password"
)

type Config struct {
	Port           string        `yaml:"port"`
	DBDriver       string        `yaml:"db_driver"` // sqlite | mysql
	DBDSN          string        `yaml:"db_dsn"`
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
	CampusDomain   string        `yaml:"campus_domain"`
	AuthMode       string        `yaml:"auth_mode"` // stub | password
	TickerInterval time.Duration `yaml:"ticker_interval"`
	TemplatesDir   string        `yaml:"templates_dir"`
}

func Defaults() Config {
	return Config{
		Port:           "8080",
		DBDriver:       "sqlite",
		DBDSN:          "unimart.db", // sqlite file in project root
		LogFile:        "./unimart.log",
		LogLevel:       "info",
		CampusDomain:   "@pccegoa.edu.in",
		AuthMode:       AuthStub,
		TickerInterval: 20 * time.Second,
		TemplatesDir:   "./web/templates",
	}
}

// Load resolves defaults, then the YAML file named by UNIMART_CONFIG, then the environment.
func Load() (Config, error) {
	cfg := Defaults()
	if path := os.Getenv("UNIMART_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.mergeEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Port, "PORT")
	set(&c.DBDriver, "DB_DRIVER")
	set(&c.DBDSN, "DB_DSN")
	set(&c.LogFile, "LOG_FILE")
	set(&c.LogLevel, "LOG_LEVEL")
	set(&c.CampusDomain, "CAMPUS_DOMAIN")
	set(&c.AuthMode, "AUTH_MODE")
	set(&c.TemplatesDir, "TEMPLATES_DIR")
	if v := strings.TrimSpace(getenv("TICKER_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TICKER_INTERVAL: %w", err)
		}
		c.TickerInterval = d
	}
	return nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}
	switch c.AuthMode {
	case AuthStub, AuthPassword:
	default:
		return fmt.Errorf("unsupported auth_mode %q", c.AuthMode)
	}
	if !strings.HasPrefix(c.CampusDomain, "@") {
		return fmt.Errorf("campus_domain must start with @, got %q", c.CampusDomain)
	}
	if c.TickerInterval <= 0 {
		return fmt.Errorf("ticker_interval must be positive")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SourceAPI    = "api"
	SourceSQL    = "sql"
	SourceDuckDB = "duckdb"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Billing   BillingConfig   `mapstructure:"billing"`
	Directory DirectoryConfig `mapstructure:"directory"`

	// Profile names a section of the ini file at ProfilesPath.
	Profile      string `mapstructure:"profile"`
	ProfilesPath string `mapstructure:"profiles_path"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type BillingConfig struct {
	Source      string        `mapstructure:"source"`
	APIEndpoint string        `mapstructure:"api_endpoint"`
	Token       string        `mapstructure:"token"`
	Timeout     time.Duration `mapstructure:"timeout"`
	DSN         string        `mapstructure:"dsn"`
	DuckDBPath  string        `mapstructure:"duckdb_path"`
}

type DirectoryConfig struct {
	APIEndpoint string        `mapstructure:"api_endpoint"`
	Token       string        `mapstructure:"token"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("billing.source", SourceAPI)
	v.SetDefault("billing.timeout", 30*time.Second)
	v.SetDefault("billing.duckdb_path", "statements.db")
	v.SetDefault("directory.timeout", 30*time.Second)
}

// LoadConfig reads the YAML file at path, if any, with STATEMENTS_ prefixed
// environment overrides (STATEMENTS_BILLING_API_ENDPOINT, ...).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("statements")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"server.host", "server.port",
		"billing.source", "billing.api_endpoint", "billing.token", "billing.dsn", "billing.duckdb_path",
		"directory.api_endpoint", "directory.token",
		"profile", "profiles_path",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Billing.Source {
	case SourceAPI:
		if c.Billing.APIEndpoint == "" {
			errs = append(errs, errors.New("billing.api_endpoint is required for the api source"))
		}
	case SourceSQL:
		if c.Billing.DSN == "" {
			errs = append(errs, errors.New("billing.dsn is required for the sql source"))
		}
	case SourceDuckDB:
		if c.Billing.DuckDBPath == "" {
			errs = append(errs, errors.New("billing.duckdb_path is required for the duckdb source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown billing.source %q", c.Billing.Source))
	}
	if c.Directory.APIEndpoint == "" {
		errs = append(errs, errors.New("directory.api_endpoint is required"))
	}
	return errors.Join(errs...)
}

// Addr is the host:port the web server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

func (c *Config) Addr() string {
	return c.Server.Addr()
}

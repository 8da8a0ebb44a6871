package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Database  DatabaseConfig  `yaml:"database"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GatewayConfig points at the remote market-stand API.
// BaseURL is the backend root; "/api" is appended by APIBaseURL.
type GatewayConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DatabaseConfig contains connection settings for the status-check store
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Driver   string `yaml:"driver"` // "mysql" or "postgres"
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// CORSConfig lists origins allowed to call /api endpoints
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	Enabled              bool          `yaml:"enabled"`
	ClientName           string        `yaml:"client_name"`
	ProbeGateway         string        `yaml:"probe_gateway"`
	RecordHeartbeat      string        `yaml:"record_heartbeat"`
	PruneStatusChecks    string        `yaml:"prune_status_checks"`
	StatusCheckRetention time.Duration `yaml:"status_check_retention"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Config from YAML bytes, applies environment overrides and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables.
// MYSQL_* names take precedence over the generic DB_* ones.
func (c *Config) overrideWithEnv() {
	// Gateway
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.Gateway.BaseURL = val
	}
	if val := os.Getenv("GATEWAY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.Gateway.Timeout = d
		}
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Database
	if val := os.Getenv("DB_DRIVER"); val != "" {
		c.Database.Driver = val
	}
	if val := firstEnv("MYSQL_HOST", "DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := firstEnv("MYSQL_PORT", "DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := firstEnv("MYSQL_USER", "DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := firstEnv("MYSQL_PASSWORD", "DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := firstEnv("MYSQL_DATABASE", "DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// CORS
	if val := os.Getenv("CORS_ORIGINS"); val != "" {
		c.CORS.AllowedOrigins = splitList(val)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Gateway validation
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway base URL is required")
	}
	u, err := url.Parse(c.Gateway.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid gateway base URL: %q", c.Gateway.BaseURL)
	}
	if c.Gateway.Timeout < 0 {
		return fmt.Errorf("gateway timeout must not be negative")
	}
	if c.Gateway.Timeout == 0 {
		c.Gateway.Timeout = 10 * time.Second
	}

	// Database validation
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Database.Enabled {
		switch c.Database.Driver {
		case "mysql":
			if c.Database.Port == 0 {
				c.Database.Port = 3306
			}
		case "postgres":
			if c.Database.Port == 0 {
				c.Database.Port = 5432
			}
			if c.Database.SSLMode == "" {
				c.Database.SSLMode = "disable"
			}
		default:
			return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
		}
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}

	// Scheduler defaults
	if c.Scheduler.ClientName == "" {
		c.Scheduler.ClientName = "market-stand-admin"
	}
	if c.Scheduler.ProbeGateway == "" {
		c.Scheduler.ProbeGateway = "0 */1 * * * *" // every minute
	}
	if c.Scheduler.RecordHeartbeat == "" {
		c.Scheduler.RecordHeartbeat = "0 */5 * * * *" // every 5 minutes
	}
	if c.Scheduler.PruneStatusChecks == "" {
		c.Scheduler.PruneStatusChecks = "0 0 3 * * *" // 3 AM UTC
	}
	if c.Scheduler.StatusCheckRetention == 0 {
		c.Scheduler.StatusCheckRetention = 30 * 24 * time.Hour
	}

	return nil
}

// APIBaseURL returns the gateway base URL with "/api" appended
func (c *Config) APIBaseURL() string {
	return strings.TrimRight(c.Gateway.BaseURL, "/") + "/api"
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseDSN returns a connection string for the configured driver
func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == "postgres" {
		return fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Database,
			c.Database.SSLMode,
		)
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
	)
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if val := os.Getenv(k); val != "" {
			return val
		}
	}
	return ""
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" envconfig:"SERVER"`
	Security   SecurityConfig   `yaml:"security" envconfig:"SECURITY"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Validation ValidationConfig `yaml:"validation" envconfig:"VALIDATION"`
	Analytics  AnalyticsConfig  `yaml:"analytics" envconfig:"ANALYTICS"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"60s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains CORS and rate-limit configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"20"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"10"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// ValidationConfig tunes the ingestion-validation pipeline. The required
// column list is injectable here so the validator is schema-pluggable
// without code edits.
type ValidationConfig struct {
	RequiredColumns []string `yaml:"required_columns" envconfig:"REQUIRED_COLUMNS" default:"InvoiceNo,InvoiceDate,PULAU,PRODUCT_CATEGORY,Quantity"`
	MaxFileSize     int64    `yaml:"max_file_size" envconfig:"MAX_FILE_SIZE" default:"52428800"`
	MinRows         int      `yaml:"min_rows" envconfig:"MIN_ROWS" default:"100"`
	MinCategories   int      `yaml:"min_categories" envconfig:"MIN_CATEGORIES" default:"3"`
	MinRegions      int      `yaml:"min_regions" envconfig:"MIN_REGIONS" default:"2"`
	// DuplicatePolicy: "allow" or "reject". One invoice usually spans
	// several line items, so allow is the default.
	DuplicatePolicy string `yaml:"duplicate_policy" envconfig:"DUPLICATE_POLICY" default:"allow"`
	// RegionPolicy: "off", "warn" or "reject".
	RegionPolicy string   `yaml:"region_policy" envconfig:"REGION_POLICY" default:"warn"`
	Regions      []string `yaml:"regions" envconfig:"REGIONS" default:"JAWA,SUMATERA,BALI,KALIMANTAN,SULAWESI,PAPUA,NTT,NTB"`
}

// AnalyticsConfig points at the remote forecasting/MBA service that
// receives validated files.
type AnalyticsConfig struct {
	Enabled bool          `yaml:"enabled" envconfig:"ENABLED" default:"false"`
	BaseURL string        `yaml:"base_url" envconfig:"BASE_URL" default:"http://localhost:8000"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"5m"`
}

// Load loads configuration from environment variables and, when present,
// a config file. Environment variables win.
func Load() (*Config, error) {
	cfg := Default()

	if path := configFilePath(); path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		*cfg = *fileCfg
	}

	if err := envconfig.Process("DATANIAGA", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFromFile loads configuration from a YAML file on top of defaults.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if len(c.Validation.RequiredColumns) == 0 {
		return fmt.Errorf("at least one required column must be configured")
	}
	if c.Validation.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive")
	}
	switch c.Validation.DuplicatePolicy {
	case "allow", "reject":
	default:
		return fmt.Errorf("invalid duplicate policy: %q", c.Validation.DuplicatePolicy)
	}
	switch c.Validation.RegionPolicy {
	case "off", "warn", "reject":
	default:
		return fmt.Errorf("invalid region policy: %q", c.Validation.RegionPolicy)
	}
	if c.Analytics.Enabled && c.Analytics.BaseURL == "" {
		return fmt.Errorf("analytics base URL is required when forwarding is enabled")
	}
	return nil
}

// configFilePath returns the first config file found in the usual spots.
func configFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     60 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     20,
				Burst:   10,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
		Validation: ValidationConfig{
			RequiredColumns: []string{"InvoiceNo", "InvoiceDate", "PULAU", "PRODUCT_CATEGORY", "Quantity"},
			MaxFileSize:     50 * 1024 * 1024,
			MinRows:         100,
			MinCategories:   3,
			MinRegions:      2,
			DuplicatePolicy: "allow",
			RegionPolicy:    "warn",
			Regions:         []string{"JAWA", "SUMATERA", "BALI", "KALIMANTAN", "SULAWESI", "PAPUA", "NTT", "NTB"},
		},
		Analytics: AnalyticsConfig{
			Enabled: false,
			BaseURL: "http://localhost:8000",
			Timeout: 5 * time.Minute,
		},
	}
}

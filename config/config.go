package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	StoreBolt     = "bolt"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Channel list encodings
const (
	EncodingJSON = "json"
	EncodingYAML = "yaml"
)

// Config holds the complete application configuration
type Config struct {
	// HTTP server settings
	HTTP struct {
		Address string `yaml:"address"`
		Port    string `yaml:"port"`
	} `yaml:"http"`

	// Preference store settings
	Store struct {
		Driver      string `yaml:"driver"`
		Path        string `yaml:"path"`
		DatabaseURL string `yaml:"database_url"`
		Encoding    string `yaml:"encoding"`
	} `yaml:"store"`

	// Player settings. An empty command selects the logging player.
	Player struct {
		Command     string        `yaml:"command"`
		Args        []string      `yaml:"args"`
		StopTimeout time.Duration `yaml:"stop_timeout"`
	} `yaml:"player"`

	// LogLevel is one of DEBUG, INFO, WARN, ERROR
	LogLevel string `yaml:"log_level"`
}

var validLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	var errors []string

	// Validate HTTP settings
	if c.HTTP.Address == "" {
		errors = append(errors, "HTTP address is required")
	}
	if c.HTTP.Port == "" {
		errors = append(errors, "HTTP port is required")
	}

	// Validate store settings
	switch c.Store.Driver {
	case StoreBolt:
		if c.Store.Path == "" {
			errors = append(errors, "Store path is required for the bolt driver")
		}
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			errors = append(errors, "Database URL is required for the postgres driver")
		}
	case StoreMemory:
	default:
		errors = append(errors, fmt.Sprintf("Store driver must be one of: %s, %s, %s", StoreBolt, StorePostgres, StoreMemory))
	}

	if c.Store.Encoding != EncodingJSON && c.Store.Encoding != EncodingYAML {
		errors = append(errors, fmt.Sprintf("Store encoding must be one of: %s, %s", EncodingJSON, EncodingYAML))
	}

	// Validate player settings
	if c.Player.StopTimeout <= 0 {
		errors = append(errors, "Player stop timeout must be positive")
	}

	if !validLogLevels[c.LogLevel] {
		errors = append(errors, "LogLevel must be one of: DEBUG, INFO, WARN, ERROR")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Default returns a Config with sensible default values
func Default() *Config {
	cfg := &Config{}

	// HTTP defaults
	cfg.HTTP.Address = "127.0.0.1"
	cfg.HTTP.Port = "8080"

	// Store defaults
	cfg.Store.Driver = StoreBolt
	cfg.Store.Path = "iptv-player.db"
	cfg.Store.Encoding = EncodingJSON

	// Player defaults
	cfg.Player.Command = "mpv"
	cfg.Player.Args = []string{"--fs", "--really-quiet"}
	cfg.Player.StopTimeout = 5 * time.Second

	cfg.LogLevel = "INFO"

	return cfg
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Load reads the configuration and validates it
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read loads configuration from a file (if present) and applies environment
// variable overrides without validating the result. Callers that apply
// further overrides must call Validate themselves.
func Read() (*Config, error) {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	// Try to load from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		// File doesn't exist, use defaults
		cfg = Default()
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return cfg, nil
}

// envParser is a helper for parsing environment variables with validation
type envParser struct {
	errors []string
}

// parseString copies a non-empty environment variable into target
func (p *envParser) parseString(envName string, target *string) {
	if val := os.Getenv(envName); val != "" {
		*target = val
	}
}

// parseDuration parses a duration environment variable, ensuring it's positive
func (p *envParser) parseDuration(envName string, target *time.Duration) {
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	duration, err := time.ParseDuration(val)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("%s: invalid duration format (use '5s', '1m', etc.)", envName))
		return
	}

	if duration <= 0 {
		p.errors = append(p.errors, fmt.Sprintf("%s must be positive", envName))
		return
	}

	*target = duration
}

// parseFields splits a whitespace-separated environment variable into target
func (p *envParser) parseFields(envName string, target *[]string) {
	if val, ok := os.LookupEnv(envName); ok {
		*target = strings.Fields(val)
	}
}

// parseEnum parses an enum environment variable from a set of valid values
func (p *envParser) parseEnum(envName string, target *string, validValues []string, normalize func(string) string) {
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	normalized := normalize(val)
	for _, v := range validValues {
		if v == normalized {
			*target = normalized
			return
		}
	}

	p.errors = append(p.errors, fmt.Sprintf("%s must be one of: %s", envName, strings.Join(validValues, ", ")))
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) error {
	parser := &envParser{}

	// HTTP settings
	parser.parseString("HTTP_ADDRESS", &cfg.HTTP.Address)
	parser.parseString("HTTP_PORT", &cfg.HTTP.Port)

	// Store settings
	parser.parseEnum("STORE_DRIVER", &cfg.Store.Driver, []string{StoreBolt, StorePostgres, StoreMemory}, strings.ToLower)
	if val := os.Getenv("DB_PATH"); val != "" {
		absPath, err := validateStorePath(val)
		if err != nil {
			return err
		}
		cfg.Store.Path = absPath
	}
	parser.parseString("DATABASE_URL", &cfg.Store.DatabaseURL)
	parser.parseEnum("CHANNEL_ENCODING", &cfg.Store.Encoding, []string{EncodingJSON, EncodingYAML}, strings.ToLower)

	// Player settings
	if val, ok := os.LookupEnv("PLAYER_COMMAND"); ok {
		cfg.Player.Command = strings.TrimSpace(val)
	}
	parser.parseFields("PLAYER_ARGS", &cfg.Player.Args)
	parser.parseDuration("PLAYER_STOP_TIMEOUT", &cfg.Player.StopTimeout)

	parser.parseEnum("LOG_LEVEL", &cfg.LogLevel, []string{"DEBUG", "INFO", "WARN", "ERROR"}, strings.ToUpper)

	if len(parser.errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(parser.errors, "\n  - "))
	}

	return nil
}

// validateStorePath validates and normalizes the bolt database path
func validateStorePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("store path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve absolute path for store: %w", err)
		}
		return absPath, nil
	}

	return path, nil
}

// Print writes the configuration to w. The database URL is not
// printed since it may carry credentials.
func (c *Config) Print(w io.Writer) {
	fmt.Fprintf(w, "httpAddress: %v\n", c.HTTP.Address)
	fmt.Fprintf(w, "httpPort: %v\n", c.HTTP.Port)
	fmt.Fprintf(w, "storeDriver: %v\n", c.Store.Driver)
	fmt.Fprintf(w, "storePath: %v\n", c.Store.Path)
	fmt.Fprintf(w, "channelEncoding: %v\n", c.Store.Encoding)
	fmt.Fprintf(w, "playerCommand: %v\n", c.Player.Command)
	fmt.Fprintf(w, "playerArgs: %v\n", strings.Join(c.Player.Args, " "))
	fmt.Fprintf(w, "playerStopTimeout: %v\n", c.Player.StopTimeout)
	fmt.Fprintf(w, "logLevel: %v\n", c.LogLevel)
}

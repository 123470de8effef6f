// Package config loads runtime configuration for tuiomouse.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultHost       = "0.0.0.0"
	defaultPort       = 3333
	defaultDataDir    = "./data"
	defaultConfigFile = "tuiomouse.yaml"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
)

// Config holds runtime configuration values.
type Config struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	StatusAddr string `yaml:"status_addr"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
	DataDir    string `yaml:"-"`
	ConfigPath string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:       defaultHost,
		Port:       defaultPort,
		LogLevel:   defaultLogLevel,
		LogFormat:  defaultLogFormat,
		DataDir:    defaultDataDir,
		ConfigPath: filepath.Join(defaultDataDir, defaultConfigFile),
	}
}

// Load reads configuration from the YAML file, <DATA_DIR>/.env and environment variables.
func Load() (Config, error) {
	cfg := Default()
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ConfigPath = envString("CONFIG_PATH", filepath.Join(cfg.DataDir, defaultConfigFile))
	if err := loadYAMLFile(cfg.ConfigPath, &cfg); err != nil {
		return Config{}, err
	}

	cfg.Host = envString("TUIO_HOST", cfg.Host)
	cfg.StatusAddr = envString("STATUS_ADDR", cfg.StatusAddr)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(envString("LOG_FORMAT", cfg.LogFormat))

	port, err := envInt("TUIO_PORT", cfg.Port)
	if err != nil {
		return Config{}, err
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be 0-65535, got %d", c.Port)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a known level", c.LogLevel)
	}
	return nil
}

// ApplyArgs applies the optional positional port argument.
// On error the previous port is kept.
func (c *Config) ApplyArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	port, err := ParsePort(args[0])
	if err != nil {
		return err
	}
	c.Port = port
	return nil
}

// ParsePort parses a UDP port number.
func ParsePort(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("port value %q not recognized: %w", raw, err)
	}
	if value < 0 || value > 65535 {
		return 0, fmt.Errorf("port value %q out of range", raw)
	}
	return value, nil
}

// ListenAddr returns the host:port the TUIO client binds.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// loadYAMLFile overlays values from a YAML file. Missing files are ignored.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// loadEnvFile loads KEY=VALUE pairs from a .env file without replacing non-empty variables.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if current, exists := os.LookupEnv(key); !exists || strings.TrimSpace(current) == "" {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}

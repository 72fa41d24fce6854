package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	configDirName  = "contextmenu"
	configFileName = "config.toml"

	// DefaultBridgeAddr is the loopback address the invoke bridge listens on.
	DefaultBridgeAddr = "127.0.0.1:47864"
)

// Environment overrides.
const (
	EnvConfigPath  = "CONTEXTMENU_CONFIG_PATH"
	EnvBackend     = "CONTEXTMENU_BACKEND"
	EnvDebug       = "CONTEXTMENU_DEBUG"
	EnvBridgeAddr  = "CONTEXTMENU_BRIDGE_ADDR"
	EnvBridgeToken = "CONTEXTMENU_BRIDGE_TOKEN"
	EnvSecret      = "CONTEXTMENU_SECRET"
	EnvMetricsAddr = "CONTEXTMENU_METRICS_ADDR"
)

// Config represents the settings file.
type Config struct {
	Backend     string  `toml:"backend"`
	Debug       bool    `toml:"debug"`
	RejectEmpty bool    `toml:"reject_empty"`
	Bridge      Bridge  `toml:"bridge"`
	Metrics     Metrics `toml:"metrics"`
}

// Bridge configures the loopback invoke bridge.
type Bridge struct {
	Listen string `toml:"listen"`
	Token  string `toml:"token,omitempty"`
	Secret string `toml:"secret,omitempty"`
}

// Metrics configures the Prometheus endpoint. An empty Listen disables it.
type Metrics struct {
	Listen string `toml:"listen,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Backend: "stub",
		Bridge:  Bridge{Listen: DefaultBridgeAddr},
	}
}

// Path returns the resolved configuration file path.
func Path() (string, error) {
	if custom := strings.TrimSpace(os.Getenv(EnvConfigPath)); custom != "" {
		return custom, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determine user config dir: %w", err)
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

// Load reads the configuration from Path and applies environment overrides.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if _, err := toml.Decode(string(raw), cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.Bridge.Listen == "" {
		cfg.Bridge.Listen = DefaultBridgeAddr
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory when needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tempFile, path)
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		cfg.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDebug)); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvDebug, err)
		}
		cfg.Debug = parsed
	}
	if v := strings.TrimSpace(os.Getenv(EnvBridgeAddr)); v != "" {
		cfg.Bridge.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBridgeToken)); v != "" {
		cfg.Bridge.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSecret)); v != "" {
		cfg.Bridge.Secret = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMetricsAddr)); v != "" {
		cfg.Metrics.Listen = v
	}
	return nil
}

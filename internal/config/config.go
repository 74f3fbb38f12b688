package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SMARTNOTE"

// Config holds the unified application configuration
type Config struct {
	DataDir     string         `mapstructure:"data_dir"`
	DefaultSort string         `mapstructure:"default_sort"`
	Debug       bool           `mapstructure:"debug"`
	Storage     StorageConfig  `mapstructure:"storage"`
	Autosave    AutosaveConfig `mapstructure:"autosave"`
	AI          AIConfig       `mapstructure:"ai"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"`
}

type AutosaveConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type AIConfig struct {
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	ConfigFile string
	DataDir    string
	Backend    string
	Debug      bool
}

func setDefaults(v *viper.Viper) error {
	defaultDir, err := GetDefaultDir()
	if err != nil {
		return err
	}
	v.SetDefault("data_dir", defaultDir)
	v.SetDefault("default_sort", "date-desc")
	v.SetDefault("debug", false)
	v.SetDefault("storage.backend", "file")
	v.SetDefault("autosave.delay", "800ms")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.timeout", "30s")
	return nil
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	if err := setDefaults(v); err != nil {
		return nil, err
	}

	configPath := flags.ConfigFile
	if configPath == "" {
		configPath, _ = getConfigPath()
	}
	if configPath != "" {
		if err := loadFile(v, expandPath(configPath)); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ai.api_key", envPrefix+"_AI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, err
	}

	if flags.DataDir != "" {
		v.Set("data_dir", flags.DataDir)
	}
	if flags.Backend != "" {
		v.Set("storage.backend", flags.Backend)
	}
	if flags.Debug {
		v.Set("debug", true)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.DataDir = expandPath(cfg.DataDir)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("invalid storage.backend %q (want file or sqlite)", c.Storage.Backend)
	}
	if c.Autosave.Delay <= 0 {
		return fmt.Errorf("autosave.delay must be positive, got %s", c.Autosave.Delay)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %s", c.AI.Timeout)
	}
	return nil
}

func loadFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	return v.ReadInConfig()
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "smartnote"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "smartnote", "config.yaml"), nil
}

// EnsureDirs creates the data directory if missing
func (c *Config) EnsureDirs() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// HasAPIKey reports whether AI features can reach the remote service
func (c *Config) HasAPIKey() bool {
	return c.AI.APIKey != ""
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	v := viper.New()
	if err := setDefaults(v); err != nil {
		return err
	}
	return v.SafeWriteConfigAs(configPath)
}

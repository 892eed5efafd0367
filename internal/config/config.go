package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	// Language of the generated report, "en" or "da"
	Language string `yaml:"language"`
	// Profile names the caller profile used to tailor the script
	Profile string `yaml:"profile"`

	CacheTTL          time.Duration `yaml:"cache_ttl"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`

	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

const (
	LanguageEnglish = "en"
	LanguageDanish  = "da"
)

func DefaultConfig() *Config {
	return &Config{
		Provider:          "gemini",
		Model:             "gemini-2.5-flash",
		Language:          LanguageEnglish,
		Profile:           "ensure",
		CacheTTL:          30 * time.Minute,
		RequestsPerMinute: 10,
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "intelligenn"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file. It returns (nil, nil) when no file exists yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a config file, filling unset fields from DefaultConfig.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides provider and model from the environment and fills an
// empty Gemini key from GEMINI_API_KEY or API_KEY.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("INTELLIGENN_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("INTELLIGENN_MODEL"); v != "" {
		c.Model = v
	}
	if c.APIKey == "" && c.Provider == "gemini" {
		for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
			if v := os.Getenv(name); v != "" {
				c.APIKey = v
				break
			}
		}
	}
}

// LogFile returns the configured log path or the default under ConfigDir.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "intelligenn.log"), nil
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

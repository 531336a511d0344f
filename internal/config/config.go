// Package config loads and saves the tuitioncast TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all tuitioncast configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Regression RegressionConfig `toml:"regression"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds dataset locations.
type GeneralConfig struct {
	DataDir           string `toml:"data_dir"`
	OverallFile       string `toml:"overall_file"`
	GraduateFile      string `toml:"graduate_file"`
	UndergraduateFile string `toml:"undergraduate_file"`
	NoCache           bool   `toml:"no_cache"`
}

// RegressionConfig holds the training parameters of the regression pipeline.
type RegressionConfig struct {
	ModelName string  `toml:"model_name"`
	BaseYear  int     `toml:"base_year"`
	TestSize  float64 `toml:"test_size"`
	Seed      int64   `toml:"seed"`
	OutlierK  float64 `toml:"outlier_k"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DataDir:           "archive",
			OverallFile:       "overall_tuition.csv",
			GraduateFile:      "tuition_graduate.csv",
			UndergraduateFile: "undergraduate_package.csv",
		},
		Regression: RegressionConfig{
			ModelName: "default",
			BaseYear:  2000,
			TestSize:  0.3,
			Seed:      42,
			OutlierK:  1.5,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tuitioncast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tuitioncast")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the regression pipeline cannot run with.
func (c Config) Validate() error {
	if c.Regression.TestSize <= 0 || c.Regression.TestSize >= 1 {
		return fmt.Errorf("config: regression.test_size must be in (0, 1), got %g", c.Regression.TestSize)
	}
	if c.Regression.OutlierK < 0 {
		return fmt.Errorf("config: regression.outlier_k must not be negative, got %g", c.Regression.OutlierK)
	}
	if c.Regression.ModelName == "" {
		return fmt.Errorf("config: regression.model_name is empty")
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

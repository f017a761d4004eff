// Package config loads and persists gitvault settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Defaults applied when no config file or environment override exists.
const (
	DefaultGitBinary        = "git"
	DefaultSevenZipBinary   = "7z"
	DefaultGPGBinary        = "gpg"
	DefaultOutputDir        = "./"
	DefaultCompressionLevel = 9
)

// EnvPrefix is the prefix of environment overrides, e.g. GITVAULT_OUTPUT_DIR.
const EnvPrefix = "GITVAULT"

const configName = "gitvault"

// Config holds tool locations and archive defaults. Command-line flags
// override whatever is loaded here.
type Config struct {
	GitBinary        string   `mapstructure:"git_binary" yaml:"git_binary"`
	SevenZipBinary   string   `mapstructure:"sevenzip_binary" yaml:"sevenzip_binary"`
	GPGBinary        string   `mapstructure:"gpg_binary" yaml:"gpg_binary"`
	OutputDir        string   `mapstructure:"output_dir" yaml:"output_dir"`
	CompressionLevel int      `mapstructure:"compression_level" yaml:"compression_level"`
	Recipients       []string `mapstructure:"recipients" yaml:"recipients,omitempty"`
	KeepArchive      bool     `mapstructure:"keep_archive" yaml:"keep_archive"`
}

// Dir returns the directory holding the global config file.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(base, configName), nil
}

// Load reads gitvault.yaml from the global config directory and the current
// directory, applying GITVAULT_ environment overrides. A missing config file
// is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	v.SetDefault("git_binary", DefaultGitBinary)
	v.SetDefault("sevenzip_binary", DefaultSevenZipBinary)
	v.SetDefault("gpg_binary", DefaultGPGBinary)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("compression_level", DefaultCompressionLevel)
	v.SetDefault("recipients", []string{})
	v.SetDefault("keep_archive", false)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	// Recipients arrive as a comma-separated string when set via environment.
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes cfg to gitvault.yaml in the global config directory, creating
// the directory as needed. Keys in an existing file that this version does
// not know about are preserved.
func Save(cfg *Config) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	path := filepath.Join(dir, configName+".yaml")

	existing := map[string]interface{}{}
	if content, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(content, &existing); err != nil {
			return "", fmt.Errorf("parsing existing config: %w", err)
		}
	}

	existing["git_binary"] = cfg.GitBinary
	existing["sevenzip_binary"] = cfg.SevenZipBinary
	existing["gpg_binary"] = cfg.GPGBinary
	existing["output_dir"] = cfg.OutputDir
	existing["compression_level"] = cfg.CompressionLevel
	existing["keep_archive"] = cfg.KeepArchive
	if len(cfg.Recipients) > 0 {
		existing["recipients"] = cfg.Recipients
	} else {
		delete(existing, "recipients")
	}

	content, err := yaml.Marshal(existing)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	return path, nil
}

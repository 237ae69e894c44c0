/*
Package config manages TOML config for the ranagrams engine.

InitConfig handles automatic config file creation and loading with
fallback to defaults. LoadConfig and SaveConfig provide direct fs for
runtime changes.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Engine     EngineConfig     `toml:"engine"`
	Dictionary DictionaryConfig `toml:"dictionary"`
	CLI        CliConfig        `toml:"cli"`
}

// EngineConfig has search-engine related options.
type EngineConfig struct {
	SlopFactor    int  `toml:"slop_factor"`
	CacheEnabled  bool `toml:"cache_enabled"`
	MaxCacheAlpha int  `toml:"max_cache_alphabet"`
}

// DictionaryConfig holds dictionary loading options.
type DictionaryConfig struct {
	MinWordLength  int  `toml:"min_word_length"`
	BuildAuxIndex  bool `toml:"build_aux_index"`
	RejectDupWords bool `toml:"reject_duplicate_words"`
}

// CliConfig holds CLI interface options.
type CliConfig struct {
	DefaultThreads int    `toml:"default_threads"`
	DefaultFormat  string `toml:"default_format"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			SlopFactor:    3,
			CacheEnabled:  true,
			MaxCacheAlpha: 38,
		},
		Dictionary: DictionaryConfig{
			MinWordLength:  1,
			BuildAuxIndex:  true,
			RejectDupWords: false,
		},
		CLI: CliConfig{
			DefaultThreads: 0, // 0 means use runtime.NumCPU()
			DefaultFormat:  "text",
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			return nil, err
		}
		log.Debugf("created default config file at: ( %s )", configPath)
		return cfg, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("failed to load config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Errorf("failed to decode config file: %v", err)
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		log.Errorf("failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	encoder := toml.NewEncoder(file)
	return encoder.Encode(cfg)
}

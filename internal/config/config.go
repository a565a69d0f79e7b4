// Package config handles loading tasklist.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amonks/tasklist/internal/paths"
)

// ProjectFileName is the per-directory config file name.
const ProjectFileName = "tasklist.toml"

// Environment variables that override file settings.
const (
	EnvAddr     = "TASKLIST_ADDR"
	EnvLogLevel = "TASKLIST_LOG_LEVEL"
)

// Config represents the tasklist.toml configuration file.
type Config struct {
	Server Server `toml:"server"`
	Log    Log    `toml:"log"`
	Store  Store  `toml:"store"`
}

// Server contains server and client connection settings.
type Server struct {
	// Addr is the listen address for tl serve and the dial address for
	// every other command.
	Addr string `toml:"addr"`
}

// Log contains logging settings.
type Log struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// Store contains settings for the in-memory store.
type Store struct {
	// Seed controls whether tl serve starts with the sample todos.
	Seed *bool `toml:"seed"`
}

// SeedEnabled reports whether the store should be seeded. Unset means true.
func (s Store) SeedEnabled() bool {
	return s.Seed == nil || *s.Seed
}

// Load loads configuration from the global config file and projectDir,
// then applies environment overrides. Missing files yield an empty config.
func Load(projectDir string) (*Config, error) {
	globalPath, err := GlobalPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(projectDir, ProjectFileName))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	applyEnv(merged)
	return merged, nil
}

// GlobalPath returns the location of the per-user config file.
func GlobalPath() (string, error) {
	dir, err := paths.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %s", path, undecoded[0])
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Server.Addr = mergeString(projectMeta.IsDefined("server", "addr"), projectCfg.Server.Addr, globalCfg.Server.Addr)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	merged.Log.JSON = globalCfg.Log.JSON
	if projectMeta.IsDefined("log", "json") {
		merged.Log.JSON = projectCfg.Log.JSON
	}
	if projectMeta.IsDefined("store", "seed") {
		merged.Store.Seed = boolPtr(*projectCfg.Store.Seed)
	} else if globalMeta.IsDefined("store", "seed") {
		merged.Store.Seed = boolPtr(*globalCfg.Store.Seed)
	}

	return &merged
}

func applyEnv(cfg *Config) {
	if value := strings.TrimSpace(os.Getenv(EnvAddr)); value != "" {
		cfg.Server.Addr = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvLogLevel)); value != "" {
		cfg.Log.Level = value
	}
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func boolPtr(value bool) *bool {
	return &value
}

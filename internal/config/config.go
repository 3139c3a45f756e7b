// Package config loads jcraft's project configuration from
// .jcraft/config.yaml, merging it over built-in defaults the way the
// teacher's .cx/config.yaml loader does.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the jcraft configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the jcraft configuration directory.
const ConfigDirName = ".jcraft"

// Config holds all jcraft configuration.
type Config struct {
	Scan   ScanConfig   `yaml:"scan"`
	Solver SolverConfig `yaml:"solver"`
	Output OutputConfig `yaml:"output"`
	Cache  CacheConfig  `yaml:"cache"`
}

// ScanConfig controls which jars and source roots feed the bytecode view.
type ScanConfig struct {
	Jars        []string `yaml:"jars"`
	SourceRoots []string `yaml:"source_roots"`
	JarURLs     []string `yaml:"jar_urls"`
}

// SolverConfig mirrors solver.Config's budget knobs so they can be tuned
// per project instead of only via CLI flags.
type SolverConfig struct {
	NumberOfTrials int   `yaml:"trials"`
	CostLimit      int   `yaml:"cost_limit"`
	DepthLimit     int   `yaml:"depth_limit"`
	MinCost        int   `yaml:"min_cost"`
	Seed           int64 `yaml:"seed"`
}

// OutputConfig controls the emitted compilation unit's shape.
type OutputConfig struct {
	PackageName string `yaml:"package_name"`
	ClassName   string `yaml:"class_name"`
}

// CacheConfig controls the sqlite-backed miner index cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ErrConfigNotFound is returned when no config file can be found.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .jcraft/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking
// up the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path, merges it with defaults,
// and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .jcraft directory by walking up from startDir.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .jcraft directory if it doesn't exist.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are within the solver's accepted
// ranges.
func Validate(cfg *Config) error {
	if cfg.Solver.NumberOfTrials <= 0 {
		return fmt.Errorf("%w: solver.trials must be positive, got %d",
			ErrInvalidConfig, cfg.Solver.NumberOfTrials)
	}
	if cfg.Solver.CostLimit <= 0 {
		return fmt.Errorf("%w: solver.cost_limit must be positive, got %d",
			ErrInvalidConfig, cfg.Solver.CostLimit)
	}
	if cfg.Solver.DepthLimit <= 0 {
		return fmt.Errorf("%w: solver.depth_limit must be positive, got %d",
			ErrInvalidConfig, cfg.Solver.DepthLimit)
	}
	if cfg.Solver.MinCost < 0 {
		return fmt.Errorf("%w: solver.min_cost must be non-negative, got %d",
			ErrInvalidConfig, cfg.Solver.MinCost)
	}
	if cfg.Output.PackageName == "" {
		return fmt.Errorf("%w: output.package_name must not be empty", ErrInvalidConfig)
	}
	if cfg.Output.ClassName == "" {
		return fmt.Errorf("%w: output.class_name must not be empty", ErrInvalidConfig)
	}
	return nil
}

// SaveDefault writes the default configuration to .jcraft/config.yaml in
// workDir. Creates the .jcraft directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# jcraft configuration\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}

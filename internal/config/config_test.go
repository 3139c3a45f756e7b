package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Solver.NumberOfTrials != 1000 {
		t.Errorf("expected trials 1000, got %d", cfg.Solver.NumberOfTrials)
	}
	if cfg.Solver.CostLimit != 50 {
		t.Errorf("expected cost_limit 50, got %d", cfg.Solver.CostLimit)
	}
	if cfg.Solver.DepthLimit != 25 {
		t.Errorf("expected depth_limit 25, got %d", cfg.Solver.DepthLimit)
	}
	if cfg.Output.PackageName != "org.example" {
		t.Errorf("expected package_name org.example, got %s", cfg.Output.PackageName)
	}
	if cfg.Output.ClassName != "Main" {
		t.Errorf("expected class_name Main, got %s", cfg.Output.ClassName)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default config", func(c *Config) {}, false},
		{"zero trials", func(c *Config) { c.Solver.NumberOfTrials = 0 }, true},
		{"negative cost limit", func(c *Config) { c.Solver.CostLimit = -1 }, true},
		{"zero depth limit", func(c *Config) { c.Solver.DepthLimit = 0 }, true},
		{"negative min cost", func(c *Config) { c.Solver.MinCost = -1 }, true},
		{"empty package name", func(c *Config) { c.Output.PackageName = "" }, true},
		{"empty class name", func(c *Config) { c.Output.ClassName = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	defaults := DefaultConfig()

	t.Run("empty loaded uses all defaults", func(t *testing.T) {
		loaded := &Config{}
		merged := Merge(loaded, defaults)

		if merged.Solver.NumberOfTrials != defaults.Solver.NumberOfTrials {
			t.Errorf("expected trials %d, got %d", defaults.Solver.NumberOfTrials, merged.Solver.NumberOfTrials)
		}
		if merged.Output.PackageName != defaults.Output.PackageName {
			t.Errorf("expected package %s, got %s", defaults.Output.PackageName, merged.Output.PackageName)
		}
	})

	t.Run("loaded values take precedence", func(t *testing.T) {
		loaded := &Config{
			Solver: SolverConfig{CostLimit: 80},
			Output: OutputConfig{PackageName: "com.example.gen"},
		}
		merged := Merge(loaded, defaults)

		if merged.Solver.CostLimit != 80 {
			t.Errorf("expected cost_limit 80, got %d", merged.Solver.CostLimit)
		}
		if merged.Output.PackageName != "com.example.gen" {
			t.Errorf("expected package com.example.gen, got %s", merged.Output.PackageName)
		}

		// Unset values should use defaults
		if merged.Solver.DepthLimit != defaults.Solver.DepthLimit {
			t.Errorf("expected default depth limit %d, got %d", defaults.Solver.DepthLimit, merged.Solver.DepthLimit)
		}
		if merged.Output.ClassName != defaults.Output.ClassName {
			t.Errorf("expected default class name %s, got %s", defaults.Output.ClassName, merged.Output.ClassName)
		}
	})
}

func TestFindConfigDir(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "jcraft-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	projectDir := filepath.Join(tmpDir, "project")
	subDir := filepath.Join(projectDir, "subdir")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}

	t.Run("no config dir returns error", func(t *testing.T) {
		_, err := FindConfigDir(subDir)
		if err == nil {
			t.Error("expected error when no .jcraft directory exists")
		}
	})

	configDir := filepath.Join(projectDir, ConfigDirName)
	if err := os.Mkdir(configDir, 0755); err != nil {
		t.Fatal(err)
	}

	t.Run("finds config dir in current directory", func(t *testing.T) {
		found, err := FindConfigDir(projectDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if found != configDir {
			t.Errorf("expected %s, got %s", configDir, found)
		}
	})

	t.Run("finds config dir in parent directory", func(t *testing.T) {
		found, err := FindConfigDir(subDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if found != configDir {
			t.Errorf("expected %s, got %s", configDir, found)
		}
	})
}

func TestEnsureConfigDir(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "jcraft-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("creates config directory", func(t *testing.T) {
		dir, err := EnsureConfigDir(tmpDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		expectedDir := filepath.Join(tmpDir, ConfigDirName)
		if dir != expectedDir {
			t.Errorf("expected %s, got %s", expectedDir, dir)
		}

		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("config directory not created: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})

	t.Run("returns existing directory", func(t *testing.T) {
		dir, err := EnsureConfigDir(tmpDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		expectedDir := filepath.Join(tmpDir, ConfigDirName)
		if dir != expectedDir {
			t.Errorf("expected %s, got %s", expectedDir, dir)
		}
	})
}

func TestLoadFromPath(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "jcraft-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("loads valid config file", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		content := `
scan:
  jars: [libs/guava.jar]
solver:
  cost_limit: 80
output:
  package_name: com.example.gen
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromPath(configPath)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		if len(cfg.Scan.Jars) != 1 || cfg.Scan.Jars[0] != "libs/guava.jar" {
			t.Errorf("expected jars [libs/guava.jar], got %v", cfg.Scan.Jars)
		}
		if cfg.Solver.CostLimit != 80 {
			t.Errorf("expected cost_limit 80, got %d", cfg.Solver.CostLimit)
		}
		if cfg.Output.PackageName != "com.example.gen" {
			t.Errorf("expected package com.example.gen, got %s", cfg.Output.PackageName)
		}

		if cfg.Solver.NumberOfTrials != 1000 {
			t.Errorf("expected default trials 1000, got %d", cfg.Solver.NumberOfTrials)
		}
		if cfg.Output.ClassName != "Main" {
			t.Errorf("expected default class name Main, got %s", cfg.Output.ClassName)
		}
	})

	t.Run("returns defaults for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromPath(filepath.Join(tmpDir, "nonexistent.yaml"))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		defaults := DefaultConfig()
		if cfg.Output.PackageName != defaults.Output.PackageName {
			t.Errorf("expected default package, got %s", cfg.Output.PackageName)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("invalid: yaml: content"), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadFromPath(configPath)
		if err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("returns error for invalid config values", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "bad-values.yaml")
		content := `
solver:
  cost_limit: -5
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadFromPath(configPath)
		if err == nil {
			t.Error("expected error for invalid cost_limit")
		}
	})
}

func TestLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "jcraft-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("returns defaults when no config dir exists", func(t *testing.T) {
		cfg, err := Load(tmpDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		defaults := DefaultConfig()
		if cfg.Output.PackageName != defaults.Output.PackageName {
			t.Errorf("expected default config")
		}
	})

	t.Run("loads config from .jcraft directory", func(t *testing.T) {
		configDir := filepath.Join(tmpDir, ConfigDirName)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			t.Fatal(err)
		}

		content := `
output:
  package_name: gen.out
`
		configPath := filepath.Join(configDir, ConfigFileName)
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(tmpDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		if cfg.Output.PackageName != "gen.out" {
			t.Errorf("expected package gen.out, got %s", cfg.Output.PackageName)
		}
	})
}

func TestSaveDefault(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "jcraft-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("creates default config file", func(t *testing.T) {
		configPath, err := SaveDefault(tmpDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		expectedPath := filepath.Join(tmpDir, ConfigDirName, ConfigFileName)
		if configPath != expectedPath {
			t.Errorf("expected path %s, got %s", expectedPath, configPath)
		}

		cfg, err := LoadFromPath(configPath)
		if err != nil {
			t.Errorf("failed to load saved config: %v", err)
		}

		defaults := DefaultConfig()
		if cfg.Output.PackageName != defaults.Output.PackageName {
			t.Errorf("saved config doesn't match defaults")
		}
	})

	t.Run("fails if config already exists", func(t *testing.T) {
		_, err := SaveDefault(tmpDir)
		if err == nil {
			t.Error("expected error when config already exists")
		}
	})
}

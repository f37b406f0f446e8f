package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"TargetLanguage", cfg.TargetLanguage, "c"},
		{"OutputDir", cfg.OutputDir, "gen"},
		{"EntryDepth", cfg.EntryDepth, 6},
		{"Workers", cfg.Workers, 4},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("DefaultConfig().%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *Config
		wantErr     bool
		errContains string
	}{
		{
			name:    "valid defaults",
			cfg:     DefaultConfig(),
			wantErr: false,
		},
		{
			name: "unsupported target language",
			cfg: &Config{
				TargetLanguage: "rust",
				OutputDir:      "gen",
				EntryDepth:     6,
				Workers:        4,
			},
			wantErr:     true,
			errContains: "invalid target_language",
		},
		{
			name: "empty output dir",
			cfg: &Config{
				TargetLanguage: "c",
				OutputDir:      "",
				EntryDepth:     6,
				Workers:        4,
			},
			wantErr:     true,
			errContains: "output_dir must not be empty",
		},
		{
			name: "non-positive entry depth",
			cfg: &Config{
				TargetLanguage: "c",
				OutputDir:      "gen",
				EntryDepth:     0,
				Workers:        4,
			},
			wantErr:     true,
			errContains: "entry_depth must be positive",
		},
		{
			name: "non-positive workers",
			cfg: &Config{
				TargetLanguage: "c",
				OutputDir:      "gen",
				EntryDepth:     6,
				Workers:        -1,
			},
			wantErr:     true,
			errContains: "workers must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error containing %q, got nil", tt.errContains)
				} else if !contains(err.Error(), tt.errContains) {
					t.Errorf("Error = %q, should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		checkCfg    func(*testing.T, *Config)
		wantErr     bool
		errContains string
	}{
		{
			name: "load valid config from file",
			configYAML: `
target_language: c
output_dir: build/generated
entry_depth: 10
workers: 8
verbose: true
`,
			checkCfg: func(t *testing.T, cfg *Config) {
				if cfg.OutputDir != "build/generated" {
					t.Errorf("OutputDir = %v, want build/generated", cfg.OutputDir)
				}
				if cfg.EntryDepth != 10 {
					t.Errorf("EntryDepth = %v, want 10", cfg.EntryDepth)
				}
				if cfg.Workers != 8 {
					t.Errorf("Workers = %v, want 8", cfg.Workers)
				}
				if !cfg.Verbose {
					t.Error("Verbose = false, want true")
				}
			},
			wantErr: false,
		},
		{
			name: "partial file keeps defaults",
			configYAML: `
workers: 2
`,
			checkCfg: func(t *testing.T, cfg *Config) {
				if cfg.Workers != 2 {
					t.Errorf("Workers = %v, want 2", cfg.Workers)
				}
				if cfg.EntryDepth != 6 {
					t.Errorf("EntryDepth = %v, want 6 (default)", cfg.EntryDepth)
				}
				if cfg.TargetLanguage != "c" {
					t.Errorf("TargetLanguage = %v, want c (default)", cfg.TargetLanguage)
				}
			},
			wantErr: false,
		},
		{
			name: "invalid yaml",
			configYAML: `
output_dir: gen
  invalid: indent
`,
			wantErr:     true,
			errContains: "failed to parse",
		},
		{
			name: "invalid target language in file",
			configYAML: `
target_language: fortran
`,
			wantErr:     true,
			errContains: "invalid target_language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.configYAML), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}

			cfg, err := LoadFromFile(configPath)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error containing %q, got nil", tt.errContains)
				} else if !contains(err.Error(), tt.errContains) {
					t.Errorf("Error = %q, should contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if tt.checkCfg != nil {
				tt.checkCfg(t, cfg)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	envKeys := []string{
		"GCO_TARGET_LANGUAGE",
		"GCO_OUTPUT_DIR",
		"GCO_ENTRY_DEPTH",
		"GCO_WORKERS",
		"GCO_VERBOSE",
	}

	tests := []struct {
		name    string
		envVars map[string]string
		check   func(*testing.T, *Config)
	}{
		{
			name: "override output dir",
			envVars: map[string]string{
				"GCO_OUTPUT_DIR": "/tmp/oracles",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.OutputDir != "/tmp/oracles" {
					t.Errorf("OutputDir = %v, want /tmp/oracles", cfg.OutputDir)
				}
			},
		},
		{
			name: "override numeric values",
			envVars: map[string]string{
				"GCO_ENTRY_DEPTH": "12",
				"GCO_WORKERS":     "16",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.EntryDepth != 12 {
					t.Errorf("EntryDepth = %v, want 12", cfg.EntryDepth)
				}
				if cfg.Workers != 16 {
					t.Errorf("Workers = %v, want 16", cfg.Workers)
				}
			},
		},
		{
			name: "override verbose with 1",
			envVars: map[string]string{
				"GCO_VERBOSE": "1",
			},
			check: func(t *testing.T, cfg *Config) {
				if !cfg.Verbose {
					t.Error("Verbose = false, want true (from '1')")
				}
			},
		},
		{
			name: "invalid int ignored",
			envVars: map[string]string{
				"GCO_WORKERS": "not-an-int",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Workers != 4 {
					t.Errorf("Workers = %v, want 4 (default)", cfg.Workers)
				}
			},
		},
		{
			name: "negative values ignored",
			envVars: map[string]string{
				"GCO_ENTRY_DEPTH": "-3",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.EntryDepth != 6 {
					t.Errorf("EntryDepth = %v, want 6 (default)", cfg.EntryDepth)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range envKeys {
				os.Unsetenv(k)
			}
			for k, v := range tt.envVars {
				os.Setenv(k, v)
				defer os.Unsetenv(k)
			}

			cfg := DefaultConfig()
			applyEnvOverrides(cfg)

			tt.check(t, cfg)
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"0", 0},
		{"100", 100},
		{"512", 512},
		{"invalid", 0},
		{"", 0},
		{"abc123", 0},
		{"10.5", 10}, // Will parse 10 from 10.5
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseInt(tt.input)
			if result != tt.expected {
				t.Errorf("parseInt(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfigSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "dirs", "config.yaml")

	cfg := &Config{
		TargetLanguage: "c",
		OutputDir:      "out",
		EntryDepth:     9,
		Workers:        2,
		Verbose:        true,
	}

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatalf("Config file was not created at %s", configPath)
	}

	loadedCfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}

	if *loadedCfg != *cfg {
		t.Errorf("Round trip mismatch: got %+v, want %+v", loadedCfg, cfg)
	}
}

// Helper functions

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Project.SrcDir != "src" {
		t.Errorf("Expected src dir 'src', got %s", cfg.Project.SrcDir)
	}
	if len(cfg.Project.SourceExtensions) != 2 || cfg.Project.SourceExtensions[0] != ".ts" {
		t.Errorf("Unexpected source extensions: %v", cfg.Project.SourceExtensions)
	}
	if cfg.Limits.SuppressionFixCap != 20 {
		t.Errorf("Expected suppression fix cap 20, got %d", cfg.Limits.SuppressionFixCap)
	}
	if cfg.Limits.ImportFixCap != 15 {
		t.Errorf("Expected import fix cap 15, got %d", cfg.Limits.ImportFixCap)
	}
	if cfg.Limits.AnchorReportCap != 200 {
		t.Errorf("Expected anchor report cap 200, got %d", cfg.Limits.AnchorReportCap)
	}
	if len(cfg.Checker.Command) == 0 {
		t.Error("Expected a default checker command")
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		configJSON  string
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "overrides merge over defaults",
			configJSON: `{
				"project": {"root": "/work/forge-app"},
				"limits": {"import_fix_cap": 5}
			}`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Project.Root != "/work/forge-app" {
					t.Errorf("Expected overridden root, got %s", cfg.Project.Root)
				}
				if cfg.Limits.ImportFixCap != 5 {
					t.Errorf("Expected import fix cap 5, got %d", cfg.Limits.ImportFixCap)
				}
				if cfg.Limits.SuppressionFixCap != 20 {
					t.Errorf("Expected default suppression cap to survive, got %d", cfg.Limits.SuppressionFixCap)
				}
			},
		},
		{
			name: "checker command override",
			configJSON: `{
				"checker": {"command": ["npx", "tsc", "--noEmit"]}
			}`,
			check: func(t *testing.T, cfg *Config) {
				if len(cfg.Checker.Command) != 3 || cfg.Checker.Command[0] != "npx" {
					t.Errorf("Unexpected checker command: %v", cfg.Checker.Command)
				}
			},
		},
		{
			name:        "invalid json",
			configJSON:  `{"invalid": json}`,
			expectError: true,
		},
		{
			name:       "empty config keeps defaults",
			configJSON: `{}`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Project.SrcDir != "src" {
					t.Errorf("Expected default src dir, got %s", cfg.Project.SrcDir)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tsmend.json")
			if err := os.WriteFile(path, []byte(tt.configJSON), 0644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			cfg, err := LoadConfig(path)

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

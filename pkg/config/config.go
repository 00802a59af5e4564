package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Project ProjectConfig `json:"project"`
	Checker CheckerConfig `json:"checker"`
	Limits  LimitsConfig  `json:"limits"`
}

type ProjectConfig struct {
	Root             string   `json:"root"`
	SrcDir           string   `json:"src_dir"`
	ShimFile         string   `json:"shim_file"`
	SourceExtensions []string `json:"source_extensions"`
}

type CheckerConfig struct {
	Command []string `json:"command"`
}

// LimitsConfig names the per-run safety caps. Fix caps bound how many
// anchors a single run may mutate; report caps bound artifact size.
type LimitsConfig struct {
	AnchorReportCap    int `json:"anchor_report_cap"`
	RemainingReportCap int `json:"remaining_report_cap"`
	SuppressionFixCap  int `json:"suppression_fix_cap"`
	ImportFixCap       int `json:"import_fix_cap"`
	SkipReportCap      int `json:"skip_report_cap"`
	ImportScanWindow   int `json:"import_scan_window"`
}

func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			Root:             ".",
			SrcDir:           "src",
			ShimFile:         "src/types/forge-shims.d.ts",
			SourceExtensions: []string{".ts", ".tsx"},
		},
		Checker: CheckerConfig{
			Command: []string{"npm", "run", "type-check"},
		},
		Limits: LimitsConfig{
			AnchorReportCap:    200,
			RemainingReportCap: 220,
			SuppressionFixCap:  20,
			ImportFixCap:       15,
			SkipReportCap:      50,
			ImportScanWindow:   80,
		},
	}
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

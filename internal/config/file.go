package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors .quietest.yml. Pointer fields distinguish unset keys.
type fileConfig struct {
	Tool              string   `yaml:"tool"`
	BuildCommand      []string `yaml:"build_command"`
	TestCommand       []string `yaml:"test_command"`
	CoverageCommand   []string `yaml:"coverage_command"`
	ReportFormat      string   `yaml:"report_format"`
	ReportPath        *string  `yaml:"report_path"`
	Coverage          *bool    `yaml:"coverage"`
	CoverageFile      string   `yaml:"coverage_file"`
	Exclude           []string `yaml:"exclude"`
	HeartbeatInterval string   `yaml:"heartbeat_interval"`
	Database          string   `yaml:"database"`
	OutputDir         string   `yaml:"output_dir"`
	OutputFile        string   `yaml:"output_file"`
}

// readFile loads the config file, returning nil when it does not exist
func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &fc, nil
}

func (fc *fileConfig) apply(cfg *Config) error {
	if fc == nil {
		return nil
	}

	if fc.Tool != "" {
		cfg.Tool = fc.Tool
	}
	if fc.Coverage != nil {
		cfg.Coverage = *fc.Coverage
	}
	if fc.CoverageFile != "" {
		cfg.CoverageFile = fc.CoverageFile
	}
	if fc.HeartbeatInterval != "" {
		interval, err := time.ParseDuration(fc.HeartbeatInterval)
		if err != nil {
			return fmt.Errorf("invalid heartbeat_interval %q: %w", fc.HeartbeatInterval, err)
		}
		cfg.HeartbeatInterval = interval
	}
	if fc.Database != "" {
		cfg.Database = fc.Database
	}
	if fc.OutputDir != "" {
		cfg.OutputJSONDir = fc.OutputDir
	}
	if fc.OutputFile != "" {
		cfg.OutputJSONFile = fc.OutputFile
	}
	cfg.Exclude = append(cfg.Exclude, fc.Exclude...)
	return nil
}

func (fc *fileConfig) applyPipeline(cfg *Config) {
	if len(fc.BuildCommand) > 0 {
		cfg.BuildCommand = fc.BuildCommand
	}
	if len(fc.TestCommand) > 0 {
		cfg.TestCommand = fc.TestCommand
	}
	if len(fc.CoverageCommand) > 0 {
		cfg.CoverageCommand = fc.CoverageCommand
	}
	if fc.ReportFormat != "" {
		cfg.ReportFormat = fc.ReportFormat
	}
	if fc.ReportPath != nil {
		cfg.ReportPath = *fc.ReportPath
	}
}

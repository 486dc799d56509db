package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	Tool        string

	// Pipeline settings, resolved from the tool preset and the config file
	BuildCommand    []string
	TestCommand     []string
	CoverageCommand []string
	ReportFormat    string
	ReportPath      string

	// Coverage settings
	Coverage     bool
	CoverageFile string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Run settings
	HeartbeatInterval time.Duration
	Database          string
	Exclude           []string

	// Values from the project's .env file
	Env map[string]string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ShowAll   bool
	JSON      bool
	Exclude   []string
	Tool      string
	Coverage  bool
	Heartbeat time.Duration
	Database  string
	NoSave    bool
	Verbose   bool
	Filter    string
	Format    string
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:       DefaultProjectPath,
		Tool:              DefaultTool,
		CoverageFile:      DefaultCoverageFile,
		OutputJSONFile:    DefaultOutputJSONFile,
		OutputJSONDir:     DefaultOutputJSONDir,
		HeartbeatInterval: DefaultHeartbeatInterval,
		Env:               map[string]string{},
	}
}

// Load builds the configuration for the project at projectPath.
// Sources are applied in order: defaults, .quietest.yml, environment
// (including .env), flags. Exclusions from every source are merged.
func Load(projectPath string, flags Flags) (*Config, error) {
	cfg := New()
	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}
	cfg.Flags = flags

	env, err := readEnvFile(filepath.Join(cfg.ProjectPath, DefaultEnvFile))
	if err != nil {
		return nil, err
	}
	cfg.Env = env

	file, err := readFile(filepath.Join(cfg.ProjectPath, DefaultConfigFile))
	if err != nil {
		return nil, err
	}
	if err := file.apply(cfg); err != nil {
		return nil, err
	}

	if tool := cfg.Getenv(EnvTool); tool != "" {
		cfg.Tool = tool
	}
	cfg.Exclude = append(cfg.Exclude, splitList(cfg.Getenv(EnvExclude))...)

	// Apply flag overrides
	if flags.Tool != "" {
		cfg.Tool = flags.Tool
	}
	if flags.Coverage {
		cfg.Coverage = true
	}
	if flags.Heartbeat > 0 {
		cfg.HeartbeatInterval = flags.Heartbeat
	}
	if flags.Database != "" {
		cfg.Database = flags.Database
	}
	cfg.Exclude = dedupe(append(cfg.Exclude, flags.Exclude...))

	if err := cfg.resolvePipeline(file); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePipeline fills pipeline commands from the tool preset where the
// config file did not set them, then expands placeholders
func (c *Config) resolvePipeline(file *fileConfig) error {
	preset, ok := Presets[c.Tool]
	if !ok {
		return fmt.Errorf("unknown tool %q (expected one of: %s)", c.Tool, strings.Join(ToolNames(), ", "))
	}

	c.BuildCommand = preset.BuildCommand
	c.TestCommand = preset.TestCommand
	c.CoverageCommand = preset.CoverageCommand
	c.ReportFormat = preset.ReportFormat
	c.ReportPath = preset.ReportPath
	if file != nil {
		file.applyPipeline(c)
	}

	testCommand := append([]string{}, c.TestCommand...)
	if c.Coverage {
		testCommand = append(testCommand, preset.CoverageArgs...)
	} else {
		c.CoverageCommand = nil
	}

	c.BuildCommand = c.expand(c.BuildCommand)
	c.TestCommand = c.expand(testCommand)
	c.CoverageCommand = c.expand(c.CoverageCommand)
	return nil
}

func (c *Config) expand(command []string) []string {
	if command == nil {
		return nil
	}
	replacer := strings.NewReplacer(PlaceholderReport, c.ReportPath, PlaceholderCoverage, c.CoverageFile)
	expanded := make([]string, len(command))
	for i, arg := range command {
		expanded[i] = replacer.Replace(arg)
	}
	return expanded
}

// Getenv returns the process environment value for key, falling back to the
// project's .env file
func (c *Config) Getenv(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return c.Env[key]
}

// GetOutputPath returns the absolute path of the stored last run
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetReportPath returns the report file path relative to the project, or
// empty when the report is read from the test command's output
func (c *Config) GetReportPath() string {
	if c.ReportPath == "" || filepath.IsAbs(c.ReportPath) {
		return c.ReportPath
	}
	return filepath.Join(c.ProjectPath, c.ReportPath)
}

// GetCoverageFile returns the coverage file path when coverage is on and
// the tool does not choose the path itself
func (c *Config) GetCoverageFile() string {
	if !c.Coverage || len(c.CoverageCommand) > 0 {
		return ""
	}
	if filepath.IsAbs(c.CoverageFile) {
		return c.CoverageFile
	}
	return filepath.Join(c.ProjectPath, c.CoverageFile)
}

// ToolNames lists the supported tool presets, sorted
func ToolNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func readEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		// .env file might not exist, that's okay
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return env, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

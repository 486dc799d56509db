package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTool is the default tool preset
	DefaultTool = "go"
	// DefaultConfigFile is the per-project config file name
	DefaultConfigFile = ".quietest.yml"
	// DefaultEnvFile is the per-project env file name
	DefaultEnvFile = ".env"
	// DefaultOutputJSONFile is the file the last run is stored in
	DefaultOutputJSONFile = "last-run.json"
	// DefaultOutputJSONDir is the directory the last run is stored in
	DefaultOutputJSONDir = ".quietest"
	// DefaultCoverageFile is where coverage data is written when enabled
	DefaultCoverageFile = "coverage.out"
	// DefaultHeartbeatInterval is how often the heartbeat reports progress
	DefaultHeartbeatInterval = 30 * time.Second
)

// Env variables read from the environment or the project's .env file
const (
	EnvExclude = "QUIETEST_EXCLUDE"
	EnvTool    = "QUIETEST_TOOL"
)

// Placeholders expanded in preset and configured commands
const (
	PlaceholderReport   = "{report}"
	PlaceholderCoverage = "{coverage}"
)

// Preset holds the pipeline defaults for one build tool
type Preset struct {
	BuildCommand    []string
	TestCommand     []string
	ReportFormat    string
	ReportPath      string   // empty: the report is the test command's stdout
	CoverageArgs    []string // appended to the test command when coverage is on
	CoverageCommand []string // prints the coverage file path, if the tool picks it
}

// Presets are the supported tools
var Presets = map[string]Preset{
	"go": {
		BuildCommand: []string{"go", "build", "./..."},
		TestCommand:  []string{"go", "test", "-json", "./..."},
		ReportFormat: "gotest-json",
		CoverageArgs: []string{"-coverprofile=" + PlaceholderCoverage},
	},
	"swift": {
		BuildCommand:    []string{"swift", "build", "--build-tests"},
		// Swift 5.x only writes the xUnit report for parallel runs
		TestCommand:     []string{"swift", "test", "--parallel", "--xunit-output", PlaceholderReport},
		ReportFormat:    "xunit",
		ReportPath:      ".build/xunit.xml",
		CoverageArgs:    []string{"--enable-code-coverage"},
		CoverageCommand: []string{"swift", "test", "--show-codecov-path"},
	},
}

package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "kinscan"

	// ConfigFileName is the default config file name
	ConfigFileName = ".kinscan.toml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "KINSCAN"
)

// Analysis type constants
const (
	AnalysisComplexity = "complexity"
	AnalysisRecommend  = "recommend"
	AnalysisCheck      = "check"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Quality gate limits used by the check command
const (
	DefaultMaxNestingDepth   = 4
	DefaultMaxParameterCount = 5
)

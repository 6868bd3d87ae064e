package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// SortCriteria represents the criteria for sorting complexity results
type SortCriteria string

const (
	SortByComplexity SortCriteria = "complexity"
	SortByName       SortCriteria = "name"
	SortByRisk       SortCriteria = "risk"
)

// RiskLevel represents the complexity risk level
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// ComplexityRequest represents a request for complexity analysis
type ComplexityRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	ShowDetails  bool

	// Filtering and sorting
	MinComplexity int
	MaxComplexity int // 0 means no limit
	SortBy        SortCriteria

	// Risk thresholds (cyclomatic complexity)
	LowThreshold    int
	MediumThreshold int

	// Configuration
	ConfigPath string

	// Analysis options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// FunctionComplexity represents the metrics for a single function scope
type FunctionComplexity struct {
	// Function identification
	Name        string `json:"name"`
	FilePath    string `json:"file_path"`
	StartLine   int    `json:"start_line"`
	StartColumn int    `json:"start_column"`
	EndLine     int    `json:"end_line"`

	// Complexity metrics for this scope
	Metrics ComplexityMetrics `json:"metrics"`

	// Risk assessment against the configured thresholds
	RiskLevel RiskLevel `json:"risk_level"`
}

// FileComplexity represents the metrics for one analyzed file: the rounded
// per-function averages plus the individual function scopes
type FileComplexity struct {
	FilePath string `json:"file_path"`

	// Metrics are the file-level averages (rounded to nearest integer);
	// for files with no functions they hold the defined defaults
	Metrics ComplexityMetrics `json:"metrics"`

	// Functions are the per-scope measurements
	Functions []FunctionComplexity `json:"functions,omitempty"`

	// Estimated is true when the file could not be parsed and the
	// heuristic estimator produced the metrics
	Estimated bool `json:"estimated,omitempty"`
}

// ComplexitySummary represents aggregate statistics
type ComplexitySummary struct {
	TotalFunctions    int     `json:"total_functions"`
	FilesAnalyzed     int     `json:"files_analyzed"`
	AverageComplexity float64 `json:"average_complexity"`
	MaxComplexity     int     `json:"max_complexity"`
	MinComplexity     int     `json:"min_complexity"`

	// Risk distribution
	LowRiskFunctions    int `json:"low_risk_functions"`
	MediumRiskFunctions int `json:"medium_risk_functions"`
	HighRiskFunctions   int `json:"high_risk_functions"`
}

// ComplexityResponse represents the complete analysis result
type ComplexityResponse struct {
	// Analysis results
	Files     []FileComplexity     `json:"files"`
	Functions []FunctionComplexity `json:"functions"`
	Summary   ComplexitySummary    `json:"summary"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`

	// Metadata
	GeneratedAt string      `json:"generated_at"`
	Version     string      `json:"version"`
	Config      interface{} `json:"config,omitempty"`
}

// ComplexityService defines the core business logic for complexity analysis
type ComplexityService interface {
	// Analyze performs complexity analysis on the given request
	Analyze(ctx context.Context, req ComplexityRequest) (*ComplexityResponse, error)

	// AnalyzeFile analyzes a single JavaScript/TypeScript file
	AnalyzeFile(ctx context.Context, filePath string, req ComplexityRequest) (*ComplexityResponse, error)
}

// FileReader defines file discovery and reading operations used by the
// use-case layer
type FileReader interface {
	// CollectSourceFiles recursively finds all JavaScript/TypeScript files
	// in the given paths
	CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidSourceFile checks whether a path has a supported extension
	IsValidSourceFile(path string) bool

	// FileExists checks if a file exists
	FileExists(path string) (bool, error)
}

// OutputFormatter defines the interface for writing analysis results
type OutputFormatter interface {
	// Write writes the complexity response in the given format
	Write(response *ComplexityResponse, format OutputFormat, writer io.Writer) error

	// WriteRecommendations writes the recommendation response in the
	// given format
	WriteRecommendations(response *RecommendationResponse, format OutputFormat, writer io.Writer) error
}

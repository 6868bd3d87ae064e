package domain

// Severity represents how serious a violation is
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// severityRank orders severities for sorting: Low < Medium < High < Critical.
// Unknown severities rank below Low so malformed data sinks to the bottom.
var severityRank = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the ordinal position of the severity (higher = more severe).
// Unknown values return 0.
func (s Severity) Rank() int {
	return severityRank[s]
}

// IsValid returns true if the severity is one of the enumerated values
func (s Severity) IsValid() bool {
	_, ok := severityRank[s]
	return ok
}

// Principle identifies the design principle a violation is checked against
type Principle struct {
	// Name is the human-readable principle name (e.g. "Function Size")
	Name string `json:"name"`

	// Category groups related principles (e.g. "maintainability")
	Category string `json:"category"`
}

// SourceLocation represents a position in a source file
type SourceLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Violation represents a single rule violation reported by the external
// rule engine. Violations are consumed read-only by this core.
type Violation struct {
	// ID is unique within the owning file
	ID string `json:"id"`

	// Principle is the violated design principle
	Principle Principle `json:"principle"`

	// Severity classifies how serious the violation is
	Severity Severity `json:"severity"`

	// Location is the position of the violation in the file
	Location SourceLocation `json:"location"`

	// Description explains what is wrong
	Description string `json:"description"`

	// Suggestion proposes how to fix it
	Suggestion string `json:"suggestion"`

	// FilePath is the owning file. Populated by the violation aggregator
	// when per-file lists are flattened; empty while still attached to a
	// FileQuality.
	FilePath string `json:"file_path,omitempty"`
}

// ComplexityMetrics holds the complexity measurements for one scope, or the
// rounded per-file averages when attached to a FileQuality
type ComplexityMetrics struct {
	// CyclomaticComplexity is the McCabe decision-path count (>= 1)
	CyclomaticComplexity int `json:"cyclomatic_complexity"`

	// CognitiveComplexity is the nesting-weighted readability cost (>= 0)
	CognitiveComplexity int `json:"cognitive_complexity"`

	// NestingDepth is the maximum nesting level observed
	NestingDepth int `json:"nesting_depth"`

	// LineCount is the number of source lines covered
	LineCount int `json:"line_count"`

	// ParameterCount is the declared parameter count
	ParameterCount int `json:"parameter_count"`
}

// FileQuality represents the externally assembled quality record for one
// file: its score and violations come from the rule engine, its metrics
// from the complexity analyzer. Lifetime is a single analysis run.
type FileQuality struct {
	// FilePath is the unique key for the file
	FilePath string `json:"file_path"`

	// Score is the 0-10 quality score computed by the rule engine
	Score float64 `json:"score"`

	// Violations are the rule violations found in this file
	Violations []Violation `json:"violations"`

	// Metrics are the file-level complexity averages
	Metrics ComplexityMetrics `json:"metrics"`
}

// ViolationStats holds cross-cutting statistics over a flattened
// violation collection
type ViolationStats struct {
	// Total is the number of violations
	Total int `json:"total"`

	// BySeverity counts violations per severity level
	BySeverity map[Severity]int `json:"by_severity"`

	// ByCategory counts violations per principle category
	ByCategory map[string]int `json:"by_category"`
}

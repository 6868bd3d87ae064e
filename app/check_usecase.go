package app

import (
	"context"
	"fmt"
	"time"

	"github.com/terojleinonen/kinscan/domain"
	"github.com/terojleinonen/kinscan/internal/constants"
)

// CheckConfig holds the quality gate limits for the check use case
type CheckConfig struct {
	// Complexity thresholds
	LowThreshold    int
	MediumThreshold int

	// Gate limits; a function exceeding any limit is a gate failure
	MaxComplexity     int
	MaxNestingDepth   int
	MaxParameterCount int

	// File options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// DefaultCheckConfig returns the default gate limits
func DefaultCheckConfig() CheckConfig {
	return CheckConfig{
		LowThreshold:      9,
		MediumThreshold:   19,
		MaxComplexity:     19,
		MaxNestingDepth:   constants.DefaultMaxNestingDepth,
		MaxParameterCount: constants.DefaultMaxParameterCount,
		Recursive:         true,
	}
}

// GateFailure describes one function that exceeded a gate limit
type GateFailure struct {
	FunctionName string
	FilePath     string
	StartLine    int
	Metric       string
	Value        int
	Limit        int
}

// String renders a failure the way the check command prints it
func (f GateFailure) String() string {
	return fmt.Sprintf("%s:%d %s: %s %d exceeds limit %d",
		f.FilePath, f.StartLine, f.FunctionName, f.Metric, f.Value, f.Limit)
}

// CheckResult holds the outcome of a quality gate run
type CheckResult struct {
	Complexity *domain.ComplexityResponse
	Failures   []GateFailure
	Duration   time.Duration
}

// Passed reports whether every function stayed within the gate limits
func (r *CheckResult) Passed() bool {
	return len(r.Failures) == 0
}

// CheckUseCase runs complexity analysis and compares every function
// against the configured gate limits
type CheckUseCase struct {
	complexityUseCase *ComplexityUseCase
	fileHelper        *FileHelper
}

// NewCheckUseCase creates a new check use case
func NewCheckUseCase(complexityUseCase *ComplexityUseCase) *CheckUseCase {
	return &CheckUseCase{
		complexityUseCase: complexityUseCase,
		fileHelper:        NewFileHelper(),
	}
}

// Execute runs the quality gate over the given paths
func (uc *CheckUseCase) Execute(ctx context.Context, config CheckConfig, paths []string) (*CheckResult, error) {
	startTime := time.Now()

	if uc.complexityUseCase == nil {
		return nil, domain.NewInvalidInputError("complexity use case is required", nil)
	}

	req := domain.ComplexityRequest{
		Paths:           paths,
		LowThreshold:    config.LowThreshold,
		MediumThreshold: config.MediumThreshold,
		SortBy:          domain.SortByComplexity,
		Recursive:       config.Recursive,
		IncludePatterns: config.IncludePatterns,
		ExcludePatterns: config.ExcludePatterns,
	}

	response, err := uc.complexityUseCase.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{
		Complexity: response,
		Failures:   collectGateFailures(response.Functions, config),
		Duration:   time.Since(startTime),
	}

	return result, nil
}

// collectGateFailures compares each function's metrics with the limits.
// A limit of zero disables that gate.
func collectGateFailures(functions []domain.FunctionComplexity, config CheckConfig) []GateFailure {
	var failures []GateFailure

	for _, fn := range functions {
		if config.MaxComplexity > 0 && fn.Metrics.CyclomaticComplexity > config.MaxComplexity {
			failures = append(failures, GateFailure{
				FunctionName: fn.Name,
				FilePath:     fn.FilePath,
				StartLine:    fn.StartLine,
				Metric:       "cyclomatic complexity",
				Value:        fn.Metrics.CyclomaticComplexity,
				Limit:        config.MaxComplexity,
			})
		}
		if config.MaxNestingDepth > 0 && fn.Metrics.NestingDepth > config.MaxNestingDepth {
			failures = append(failures, GateFailure{
				FunctionName: fn.Name,
				FilePath:     fn.FilePath,
				StartLine:    fn.StartLine,
				Metric:       "nesting depth",
				Value:        fn.Metrics.NestingDepth,
				Limit:        config.MaxNestingDepth,
			})
		}
		if config.MaxParameterCount > 0 && fn.Metrics.ParameterCount > config.MaxParameterCount {
			failures = append(failures, GateFailure{
				FunctionName: fn.Name,
				FilePath:     fn.FilePath,
				StartLine:    fn.StartLine,
				Metric:       "parameter count",
				Value:        fn.Metrics.ParameterCount,
				Limit:        config.MaxParameterCount,
			})
		}
	}

	return failures
}

package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/terojleinonen/kinscan/domain"
	"github.com/terojleinonen/kinscan/internal/analyzer"
	"github.com/terojleinonen/kinscan/internal/config"
	"github.com/terojleinonen/kinscan/internal/version"
)

// ComplexityServiceImpl implements the ComplexityService interface
type ComplexityServiceImpl struct {
	config   *config.ComplexityConfig
	progress domain.ProgressManager
	executor *ParallelExecutorImpl
}

// NewComplexityService creates a new complexity service implementation
func NewComplexityService(cfg *config.ComplexityConfig) *ComplexityServiceImpl {
	return &ComplexityServiceImpl{
		config:   cfg,
		executor: NewParallelExecutor(),
	}
}

// NewComplexityServiceWithProgress creates a new complexity service with progress reporting
func NewComplexityServiceWithProgress(cfg *config.ComplexityConfig, pm domain.ProgressManager) *ComplexityServiceImpl {
	return &ComplexityServiceImpl{
		config:   cfg,
		progress: pm,
		executor: NewParallelExecutor(),
	}
}

// buildFileComplexity converts an analyzer result into the domain model
func buildFileComplexity(filePath string, result *analyzer.FileResult, estimated bool, low, medium int) domain.FileComplexity {
	file := domain.FileComplexity{
		FilePath:  filePath,
		Estimated: estimated,
		Metrics: domain.ComplexityMetrics{
			CyclomaticComplexity: result.Cyclomatic,
			CognitiveComplexity:  result.Cognitive,
			NestingDepth:         result.NestingDepth,
			LineCount:            result.LineCount,
			ParameterCount:       result.ParameterCount,
		},
	}

	for _, scope := range result.Scopes {
		file.Functions = append(file.Functions, domain.FunctionComplexity{
			Name:        scope.FunctionName,
			FilePath:    filePath,
			StartLine:   scope.StartLine,
			StartColumn: scope.StartColumn,
			EndLine:     scope.EndLine,
			Metrics: domain.ComplexityMetrics{
				CyclomaticComplexity: scope.Cyclomatic,
				CognitiveComplexity:  scope.Cognitive,
				NestingDepth:         scope.NestingDepth,
				LineCount:            scope.LineCount,
				ParameterCount:       scope.ParameterCount,
			},
			RiskLevel: domain.RiskLevel(analyzer.DetermineRiskLevel(scope.Cyclomatic, low, medium)),
		})
	}

	return file
}

// Analyze performs complexity analysis on multiple files
func (s *ComplexityServiceImpl) Analyze(ctx context.Context, req domain.ComplexityRequest) (*domain.ComplexityResponse, error) {
	low, medium := s.thresholds(req)

	// Set up progress tracking (use no-op if progress manager not set)
	var progress domain.TaskProgress = &NoOpTaskProgress{}
	if s.progress != nil {
		progress = s.progress.StartTask("Analyzing complexity", len(req.Paths))
	}
	defer progress.Complete()

	// One result slot per file; files are analyzed in parallel but
	// reported in input order
	results := make([]domain.FileComplexity, len(req.Paths))
	fileWarnings := make([]string, len(req.Paths))

	analyzeOne := func(_ context.Context, i int, filePath string) error {
		defer progress.Increment(1)

		content, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		fileResult, estimated := analyzer.AnalyzeSource(filePath, content)
		if estimated {
			fileWarnings[i] = fmt.Sprintf("[%s] parse failed, metrics estimated from raw text", filePath)
		}

		results[i] = buildFileComplexity(filePath, fileResult, estimated, low, medium)
		return nil
	}

	var analysisErrors []string
	if err := s.executor.ForEachFile(ctx, req.Paths, analyzeOne); err != nil {
		var partial *PartialFailure
		if errors.As(err, &partial) {
			// Failed files are skipped, the rest of the run continues
			for _, fe := range partial.Failures {
				analysisErrors = append(analysisErrors, fe.Error())
			}
		} else {
			return nil, fmt.Errorf("complexity analysis cancelled: %w", err)
		}
	}

	var files []domain.FileComplexity
	var allFunctions []domain.FunctionComplexity
	var warnings []string
	for i, file := range results {
		if file.FilePath == "" {
			continue // task failed, error already recorded
		}
		files = append(files, file)
		allFunctions = append(allFunctions, file.Functions...)
		if fileWarnings[i] != "" {
			warnings = append(warnings, fileWarnings[i])
		}
	}

	if len(files) == 0 {
		return nil, domain.NewAnalysisError("no files could be analyzed", nil)
	}

	// Filter and sort results
	filteredFunctions := s.filterFunctions(allFunctions, req)
	sortedFunctions := s.sortFunctions(filteredFunctions, req.SortBy)

	// Generate summary
	summary := s.generateSummary(sortedFunctions, len(files))

	return &domain.ComplexityResponse{
		Files:       files,
		Functions:   sortedFunctions,
		Summary:     summary,
		Warnings:    warnings,
		Errors:      analysisErrors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
		Config:      s.buildConfigForResponse(req, low, medium),
	}, nil
}

// AnalyzeFile analyzes a single JavaScript/TypeScript file
func (s *ComplexityServiceImpl) AnalyzeFile(ctx context.Context, filePath string, req domain.ComplexityRequest) (*domain.ComplexityResponse, error) {
	// Update the request to analyze only this file
	singleFileReq := req
	singleFileReq.Paths = []string{filePath}

	return s.Analyze(ctx, singleFileReq)
}

// thresholds resolves the risk thresholds, preferring request values over
// configured ones
func (s *ComplexityServiceImpl) thresholds(req domain.ComplexityRequest) (int, int) {
	low := req.LowThreshold
	medium := req.MediumThreshold
	if low <= 0 && s.config != nil {
		low = s.config.LowThreshold
	}
	if medium <= 0 && s.config != nil {
		medium = s.config.MediumThreshold
	}
	if low <= 0 {
		low = config.DefaultLowComplexityThreshold
	}
	if medium <= low {
		medium = config.DefaultMediumComplexityThreshold
	}
	return low, medium
}

// filterFunctions filters functions based on request criteria
func (s *ComplexityServiceImpl) filterFunctions(functions []domain.FunctionComplexity, req domain.ComplexityRequest) []domain.FunctionComplexity {
	var filtered []domain.FunctionComplexity

	for _, fn := range functions {
		// Filter by minimum complexity
		if req.MinComplexity > 0 && fn.Metrics.CyclomaticComplexity < req.MinComplexity {
			continue
		}

		// Filter by maximum complexity
		if req.MaxComplexity > 0 && fn.Metrics.CyclomaticComplexity > req.MaxComplexity {
			continue
		}

		// Skip unchanged (complexity = 1) if requested
		if s.config != nil && !s.config.ReportUnchanged && fn.Metrics.CyclomaticComplexity == 1 {
			continue
		}

		filtered = append(filtered, fn)
	}

	return filtered
}

// sortFunctions sorts functions based on the specified criteria
func (s *ComplexityServiceImpl) sortFunctions(functions []domain.FunctionComplexity, sortBy domain.SortCriteria) []domain.FunctionComplexity {
	sorted := make([]domain.FunctionComplexity, len(functions))
	copy(sorted, functions)

	switch sortBy {
	case domain.SortByName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
	case domain.SortByRisk:
		riskOrder := map[domain.RiskLevel]int{domain.RiskLevelHigh: 0, domain.RiskLevelMedium: 1, domain.RiskLevelLow: 2}
		sort.SliceStable(sorted, func(i, j int) bool {
			return riskOrder[sorted[i].RiskLevel] < riskOrder[sorted[j].RiskLevel]
		})
	default:
		// Default: sort by complexity descending
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Metrics.CyclomaticComplexity > sorted[j].Metrics.CyclomaticComplexity
		})
	}

	return sorted
}

// generateSummary generates a summary of the complexity analysis
func (s *ComplexityServiceImpl) generateSummary(functions []domain.FunctionComplexity, filesProcessed int) domain.ComplexitySummary {
	summary := domain.ComplexitySummary{
		FilesAnalyzed:  filesProcessed,
		TotalFunctions: len(functions),
	}

	if len(functions) == 0 {
		return summary
	}

	// Calculate statistics
	totalComplexity := 0
	maxComplexity := 0
	minComplexity := functions[0].Metrics.CyclomaticComplexity

	for _, fn := range functions {
		complexity := fn.Metrics.CyclomaticComplexity
		totalComplexity += complexity

		if complexity > maxComplexity {
			maxComplexity = complexity
		}
		if complexity < minComplexity {
			minComplexity = complexity
		}

		// Count by risk level
		switch fn.RiskLevel {
		case domain.RiskLevelHigh:
			summary.HighRiskFunctions++
		case domain.RiskLevelMedium:
			summary.MediumRiskFunctions++
		case domain.RiskLevelLow:
			summary.LowRiskFunctions++
		}
	}

	summary.AverageComplexity = float64(totalComplexity) / float64(len(functions))
	summary.MaxComplexity = maxComplexity
	summary.MinComplexity = minComplexity

	return summary
}

// buildConfigForResponse builds the configuration section for the response
func (s *ComplexityServiceImpl) buildConfigForResponse(req domain.ComplexityRequest, low, medium int) map[string]interface{} {
	return map[string]interface{}{
		"low_threshold":    low,
		"medium_threshold": medium,
		"sort_by":          req.SortBy,
		"min_complexity":   req.MinComplexity,
		"max_complexity":   req.MaxComplexity,
	}
}

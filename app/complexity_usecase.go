package app

import (
	"context"
	"fmt"

	"github.com/terojleinonen/kinscan/domain"
)

// ComplexityUseCase orchestrates file discovery and complexity analysis
type ComplexityUseCase struct {
	service    domain.ComplexityService
	fileHelper *FileHelper
}

// NewComplexityUseCase creates a new complexity use case
func NewComplexityUseCase(service domain.ComplexityService) *ComplexityUseCase {
	return &ComplexityUseCase{
		service:    service,
		fileHelper: NewFileHelper(),
	}
}

// NewComplexityUseCaseWithFileHelper creates a use case with a custom
// file helper, used by callers that share one helper across use cases
func NewComplexityUseCaseWithFileHelper(service domain.ComplexityService, fileHelper *FileHelper) *ComplexityUseCase {
	uc := NewComplexityUseCase(service)
	if fileHelper != nil {
		uc.fileHelper = fileHelper
	}
	return uc
}

// Execute expands the request paths into concrete source files and runs
// the analysis over them
func (uc *ComplexityUseCase) Execute(ctx context.Context, req domain.ComplexityRequest) (*domain.ComplexityResponse, error) {
	if err := validateComplexityRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	files, err := ResolveFilePaths(
		uc.fileHelper,
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect files", err)
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no JavaScript/TypeScript files found in the specified paths", nil)
	}

	req.Paths = files

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return nil, domain.NewAnalysisError("complexity analysis failed", err)
	}
	return response, nil
}

// AnalyzeFile analyzes a single file, bypassing directory expansion
func (uc *ComplexityUseCase) AnalyzeFile(ctx context.Context, filePath string, req domain.ComplexityRequest) (*domain.ComplexityResponse, error) {
	if !uc.fileHelper.IsValidSourceFile(filePath) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("not a valid JavaScript/TypeScript file: %s", filePath), nil)
	}

	exists, err := uc.fileHelper.FileExists(filePath)
	if err != nil {
		return nil, domain.NewFileNotFoundError(filePath, err)
	}
	if !exists {
		return nil, domain.NewFileNotFoundError(filePath, fmt.Errorf("file does not exist"))
	}

	req.Paths = []string{filePath}
	return uc.service.Analyze(ctx, req)
}

func validateComplexityRequest(req domain.ComplexityRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}
	if req.MinComplexity < 0 || req.MaxComplexity < 0 {
		return fmt.Errorf("complexity bounds cannot be negative")
	}
	if req.MaxComplexity > 0 && req.MinComplexity > req.MaxComplexity {
		return fmt.Errorf("minimum complexity cannot be greater than maximum complexity")
	}
	if req.LowThreshold > 0 && req.MediumThreshold > 0 && req.MediumThreshold <= req.LowThreshold {
		return fmt.Errorf("medium threshold must be greater than low threshold")
	}
	return nil
}

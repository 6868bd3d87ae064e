package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/terojleinonen/kinscan/domain"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

// Write writes the complexity response in the specified format
func (f *OutputFormatterImpl) Write(response *domain.ComplexityResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeComplexityText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteRecommendations writes the recommendation response in the specified format
func (f *OutputFormatterImpl) WriteRecommendations(response *domain.RecommendationResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeRecommendationsText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// writeComplexityText writes complexity response as plain text
func (f *OutputFormatterImpl) writeComplexityText(response *domain.ComplexityResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Complexity Analysis ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	// Summary
	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Files analyzed: %d\n", response.Summary.FilesAnalyzed)
	fmt.Fprintf(writer, "  Total functions: %d\n", response.Summary.TotalFunctions)
	fmt.Fprintf(writer, "  Average complexity: %.2f\n", response.Summary.AverageComplexity)
	fmt.Fprintf(writer, "  Max complexity: %d\n", response.Summary.MaxComplexity)
	fmt.Fprintf(writer, "  Min complexity: %d\n", response.Summary.MinComplexity)
	fmt.Fprintf(writer, "\n")

	// Risk distribution
	fmt.Fprintf(writer, "Risk Distribution:\n")
	fmt.Fprintf(writer, "  High risk: %d\n", response.Summary.HighRiskFunctions)
	fmt.Fprintf(writer, "  Medium risk: %d\n", response.Summary.MediumRiskFunctions)
	fmt.Fprintf(writer, "  Low risk: %d\n", response.Summary.LowRiskFunctions)
	fmt.Fprintf(writer, "\n")

	// Per-file metrics
	if len(response.Files) > 0 {
		fmt.Fprintf(writer, "Files:\n")
		for _, file := range response.Files {
			estimated := ""
			if file.Estimated {
				estimated = " (estimated)"
			}
			fmt.Fprintf(writer, "  %s%s\n", file.FilePath, estimated)
			fmt.Fprintf(writer, "    cyclomatic=%d cognitive=%d nesting=%d lines=%d params=%d\n",
				file.Metrics.CyclomaticComplexity, file.Metrics.CognitiveComplexity,
				file.Metrics.NestingDepth, file.Metrics.LineCount, file.Metrics.ParameterCount)
		}
		fmt.Fprintf(writer, "\n")
	}

	// Function details
	if len(response.Functions) > 0 {
		fmt.Fprintf(writer, "Functions:\n")
		for _, fn := range response.Functions {
			riskIndicator := ""
			switch fn.RiskLevel {
			case domain.RiskLevelHigh:
				riskIndicator = " [HIGH]"
			case domain.RiskLevelMedium:
				riskIndicator = " [MEDIUM]"
			}
			fmt.Fprintf(writer, "  %s: %d%s\n", fn.Name, fn.Metrics.CyclomaticComplexity, riskIndicator)
			fmt.Fprintf(writer, "    File: %s:%d-%d\n", fn.FilePath, fn.StartLine, fn.EndLine)
		}
	}

	writeNotes(writer, response.Warnings, response.Errors)
	return nil
}

// writeRecommendationsText writes the recommendation response as plain text
func (f *OutputFormatterImpl) writeRecommendationsText(response *domain.RecommendationResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Recommendations ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	// Violation statistics
	fmt.Fprintf(writer, "Violations: %d\n", response.Stats.Total)
	for _, severity := range []domain.Severity{
		domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow,
	} {
		if count := response.Stats.BySeverity[severity]; count > 0 {
			fmt.Fprintf(writer, "  %s: %d\n", severity, count)
		}
	}
	fmt.Fprintf(writer, "\n")

	// Recommendation summary
	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Total recommendations: %d\n", response.Summary.Total)
	fmt.Fprintf(writer, "  Estimated time: %d min\n", response.Summary.TotalEstimatedTime)
	fmt.Fprintf(writer, "  Effort: %d small / %d medium / %d large\n",
		response.Summary.SmallEffort, response.Summary.MediumEffort, response.Summary.LargeEffort)
	fmt.Fprintf(writer, "  Impact: %d high / %d medium / %d low\n",
		response.Summary.HighImpact, response.Summary.MediumImpact, response.Summary.LowImpact)
	fmt.Fprintf(writer, "\n")

	// File explorer view grouped by directory
	if tree := violationFileTree(response.Violations); tree != nil {
		fmt.Fprintf(writer, "Affected files:\n")
		tree.Walk(func(node *FileTreeNode, depth int) {
			if depth == 0 {
				return
			}
			indent := strings.Repeat("  ", depth)
			if node.IsFile {
				fmt.Fprintf(writer, "%s%s (%d violations)\n", indent, node.Name, len(node.Quality.Violations))
			} else {
				fmt.Fprintf(writer, "%s%s/\n", indent, node.Name)
			}
		})
		fmt.Fprintf(writer, "\n")
	}

	// Ordered recommendations
	for i, rec := range response.Recommendations {
		fmt.Fprintf(writer, "%d. %s [priority %.1f]\n", i+1, rec.Title, rec.Priority)
		fmt.Fprintf(writer, "   %s:%d\n", rec.FilePath, rec.Location.Line)
		fmt.Fprintf(writer, "   type=%s effort=%s impact=%s time=%dmin status=%s\n",
			rec.Type, rec.Effort, rec.Impact, rec.EstimatedTime, rec.Status)
		if rec.Description != "" {
			fmt.Fprintf(writer, "   %s\n", rec.Description)
		}
	}

	if len(response.Recommendations) == 0 {
		fmt.Fprintf(writer, "No recommendations.\n")
	}

	writeNotes(writer, response.Warnings, nil)
	return nil
}

// violationFileTree groups flattened violations back into per-file records
// and builds the explorer tree; returns nil when there are no violations
func violationFileTree(violations []domain.Violation) *FileTree {
	if len(violations) == 0 {
		return nil
	}

	byFile := make(map[string]*domain.FileQuality)
	var order []string
	for _, v := range violations {
		fq, ok := byFile[v.FilePath]
		if !ok {
			fq = &domain.FileQuality{FilePath: v.FilePath}
			byFile[v.FilePath] = fq
			order = append(order, v.FilePath)
		}
		fq.Violations = append(fq.Violations, v)
	}

	files := make([]domain.FileQuality, 0, len(order))
	for _, path := range order {
		files = append(files, *byFile[path])
	}
	return BuildFileTree(files)
}

// writeNotes appends warning and error sections when present
func writeNotes(writer io.Writer, warnings, errors []string) {
	if len(warnings) > 0 {
		fmt.Fprintf(writer, "\nWarnings:\n")
		for _, w := range warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}
	if len(errors) > 0 {
		fmt.Fprintf(writer, "\nErrors:\n")
		for _, e := range errors {
			fmt.Fprintf(writer, "  - %s\n", e)
		}
	}
}

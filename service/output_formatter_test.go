package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/terojleinonen/kinscan/domain"
)

func sampleComplexityResponse() *domain.ComplexityResponse {
	return &domain.ComplexityResponse{
		Files: []domain.FileComplexity{
			{
				FilePath: "src/test.js",
				Metrics:  domain.ComplexityMetrics{CyclomaticComplexity: 5, LineCount: 10},
			},
		},
		Functions: []domain.FunctionComplexity{
			{
				Name:      "testFunc",
				FilePath:  "src/test.js",
				StartLine: 1,
				EndLine:   10,
				Metrics:   domain.ComplexityMetrics{CyclomaticComplexity: 5},
				RiskLevel: domain.RiskLevelLow,
			},
		},
		Summary: domain.ComplexitySummary{
			TotalFunctions:    1,
			AverageComplexity: 5.0,
			MaxComplexity:     5,
			MinComplexity:     5,
			FilesAnalyzed:     1,
			LowRiskFunctions:  1,
		},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     "test",
	}
}

func TestWriteJSON(t *testing.T) {
	data := map[string]interface{}{
		"name":  "test",
		"value": 42,
	}

	var buf bytes.Buffer
	err := WriteJSON(&buf, data)
	if err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var result map[string]interface{}
	err = json.Unmarshal(buf.Bytes(), &result)
	if err != nil {
		t.Fatalf("Failed to parse output as JSON: %v", err)
	}

	if result["name"] != "test" {
		t.Errorf("Expected name to be 'test', got %v", result["name"])
	}
}

func TestOutputFormatterWriteComplexityJSON(t *testing.T) {
	formatter := NewOutputFormatter()

	var buf bytes.Buffer
	err := formatter.Write(sampleComplexityResponse(), domain.OutputFormatJSON, &buf)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var result domain.ComplexityResponse
	err = json.Unmarshal(buf.Bytes(), &result)
	if err != nil {
		t.Fatalf("Failed to parse output as JSON: %v", err)
	}

	if len(result.Functions) != 1 {
		t.Errorf("Expected 1 function, got %d", len(result.Functions))
	}
	if result.Functions[0].Name != "testFunc" {
		t.Errorf("Expected function name 'testFunc', got %s", result.Functions[0].Name)
	}
	if result.Functions[0].Metrics.CyclomaticComplexity != 5 {
		t.Errorf("Expected cyclomatic complexity 5, got %d", result.Functions[0].Metrics.CyclomaticComplexity)
	}
}

func TestOutputFormatterWriteComplexityYAML(t *testing.T) {
	formatter := NewOutputFormatter()

	var buf bytes.Buffer
	err := formatter.Write(sampleComplexityResponse(), domain.OutputFormatYAML, &buf)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var result map[string]interface{}
	err = yaml.Unmarshal(buf.Bytes(), &result)
	if err != nil {
		t.Fatalf("Failed to parse output as YAML: %v", err)
	}
	if len(result) == 0 {
		t.Error("YAML output should not be empty")
	}
}

func TestOutputFormatterWriteComplexityText(t *testing.T) {
	formatter := NewOutputFormatter()

	var buf bytes.Buffer
	err := formatter.Write(sampleComplexityResponse(), domain.OutputFormatText, &buf)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Complexity Analysis") {
		t.Error("Expected output to contain 'Complexity Analysis'")
	}
	if !strings.Contains(output, "testFunc") {
		t.Error("Expected output to contain function name 'testFunc'")
	}
	if !strings.Contains(output, "Total functions: 1") {
		t.Error("Expected output to contain 'Total functions: 1'")
	}
	if !strings.Contains(output, "src/test.js") {
		t.Error("Expected output to contain the file path")
	}
}

func TestOutputFormatterWriteComplexityText_EstimatedMarker(t *testing.T) {
	formatter := NewOutputFormatter()

	response := sampleComplexityResponse()
	response.Files[0].Estimated = true

	var buf bytes.Buffer
	if err := formatter.Write(response, domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if !strings.Contains(buf.String(), "(estimated)") {
		t.Error("Estimated files should be marked in text output")
	}
}

func sampleRecommendationResponse() *domain.RecommendationResponse {
	violations := []domain.Violation{
		{
			ID:        "v1",
			FilePath:  "src/app/main.js",
			Principle: domain.Principle{Name: "Function Size"},
			Severity:  domain.SeverityHigh,
			Location:  domain.SourceLocation{Line: 12},
		},
		{
			ID:        "v2",
			FilePath:  "src/lib/util.js",
			Principle: domain.Principle{Name: "Naming"},
			Severity:  domain.SeverityLow,
			Location:  domain.SourceLocation{Line: 3},
		},
	}

	return &domain.RecommendationResponse{
		Recommendations: []domain.Recommendation{
			{
				ID:            "rec:src/app/main.js:0",
				Type:          domain.RecommendationExtractMethod,
				Title:         "Extract smaller functions",
				FilePath:      "src/app/main.js",
				Location:      domain.SourceLocation{Line: 12},
				Effort:        domain.EffortMedium,
				Impact:        domain.ImpactHigh,
				Priority:      4.2,
				EstimatedTime: 45,
				Status:        domain.StatusPending,
			},
		},
		Violations: violations,
		Stats: domain.ViolationStats{
			Total: 2,
			BySeverity: map[domain.Severity]int{
				domain.SeverityHigh: 1,
				domain.SeverityLow:  1,
			},
		},
		Summary: domain.RecommendationSummary{
			Total:              1,
			TotalEstimatedTime: 45,
			MediumEffort:       1,
			HighImpact:         1,
		},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     "test",
	}
}

func TestOutputFormatterWriteRecommendationsJSON(t *testing.T) {
	formatter := NewOutputFormatter()

	var buf bytes.Buffer
	err := formatter.WriteRecommendations(sampleRecommendationResponse(), domain.OutputFormatJSON, &buf)
	if err != nil {
		t.Fatalf("WriteRecommendations failed: %v", err)
	}

	var result domain.RecommendationResponse
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse output as JSON: %v", err)
	}

	if len(result.Recommendations) != 1 {
		t.Errorf("Expected 1 recommendation, got %d", len(result.Recommendations))
	}
	if result.Recommendations[0].Priority != 4.2 {
		t.Errorf("Expected priority 4.2, got %v", result.Recommendations[0].Priority)
	}
	if result.Stats.Total != 2 {
		t.Errorf("Expected 2 violations in stats, got %d", result.Stats.Total)
	}
}

func TestOutputFormatterWriteRecommendationsText(t *testing.T) {
	formatter := NewOutputFormatter()

	var buf bytes.Buffer
	err := formatter.WriteRecommendations(sampleRecommendationResponse(), domain.OutputFormatText, &buf)
	if err != nil {
		t.Fatalf("WriteRecommendations failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Recommendations") {
		t.Error("Expected output to contain 'Recommendations'")
	}
	if !strings.Contains(output, "Extract smaller functions") {
		t.Error("Expected output to contain the recommendation title")
	}
	if !strings.Contains(output, "priority 4.2") {
		t.Error("Expected output to show the priority score")
	}
	// Tree groups files under their directories
	if !strings.Contains(output, "src/") {
		t.Error("Expected file tree to show the src directory")
	}
	if !strings.Contains(output, "main.js (1 violations)") {
		t.Error("Expected file tree leaf with violation count")
	}
}

func TestOutputFormatterWriteRecommendationsText_Empty(t *testing.T) {
	formatter := NewOutputFormatter()

	response := &domain.RecommendationResponse{
		Stats:       domain.ViolationStats{BySeverity: map[domain.Severity]int{}},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     "test",
	}

	var buf bytes.Buffer
	err := formatter.WriteRecommendations(response, domain.OutputFormatText, &buf)
	if err != nil {
		t.Fatalf("WriteRecommendations failed: %v", err)
	}

	if !strings.Contains(buf.String(), "No recommendations.") {
		t.Error("Expected empty marker for no recommendations")
	}
}

func TestOutputFormatterUnsupportedFormat(t *testing.T) {
	formatter := NewOutputFormatter()

	response := &domain.ComplexityResponse{}
	var buf bytes.Buffer

	err := formatter.Write(response, domain.OutputFormat("csv"), &buf)
	if err == nil {
		t.Error("Expected error for unsupported format")
	}

	err = formatter.WriteRecommendations(&domain.RecommendationResponse{}, domain.OutputFormat("html"), &buf)
	if err == nil {
		t.Error("Expected error for unsupported recommendations format")
	}
}

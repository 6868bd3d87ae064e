package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/terojleinonen/kinscan/domain"
	"github.com/terojleinonen/kinscan/internal/version"
)

// remediationRule maps a principle-name substring to a remediation. Rules
// are matched in order, first match wins, case-sensitive.
type remediationRule struct {
	nameContains string
	recType      domain.RecommendationType
	effort       domain.Effort
	impact       domain.Impact
	minutes      int
}

var remediationRules = []remediationRule{
	{"Naming", domain.RecommendationRename, domain.EffortSmall, domain.ImpactMedium, 15},
	{"Function Size", domain.RecommendationExtractMethod, domain.EffortMedium, domain.ImpactHigh, 45},
	{"Single Responsibility", domain.RecommendationSplitClass, domain.EffortLarge, domain.ImpactHigh, 120},
	{"Error Handling", domain.RecommendationImproveErrorHandling, domain.EffortMedium, domain.ImpactMedium, 30},
}

// defaultRule applies when no principle name matches
var defaultRule = remediationRule{"", domain.RecommendationRename, domain.EffortMedium, domain.ImpactMedium, 30}

// recommendationTitles provides the short summary per remediation type
var recommendationTitles = map[domain.RecommendationType]string{
	domain.RecommendationRename:               "Rename for clarity",
	domain.RecommendationExtractMethod:        "Extract smaller functions",
	domain.RecommendationSplitClass:           "Split into focused units",
	domain.RecommendationImproveErrorHandling: "Improve error handling",
	domain.RecommendationReduceParameters:     "Reduce parameter count",
	domain.RecommendationRemoveDeadCode:       "Remove dead code",
	domain.RecommendationAddTests:             "Add test coverage",
}

// RecommendationServiceImpl implements the RecommendationService interface
type RecommendationServiceImpl struct {
	statuses domain.StatusSource
	progress domain.ProgressManager
}

// NewRecommendationService creates a new recommendation service. A nil
// status source means every recommendation starts pending.
func NewRecommendationService(statuses domain.StatusSource) *RecommendationServiceImpl {
	if statuses == nil {
		statuses = PendingStatusSource{}
	}
	return &RecommendationServiceImpl{statuses: statuses}
}

// NewRecommendationServiceWithProgress creates a recommendation service with progress reporting
func NewRecommendationServiceWithProgress(statuses domain.StatusSource, pm domain.ProgressManager) *RecommendationServiceImpl {
	svc := NewRecommendationService(statuses)
	svc.progress = pm
	return svc
}

// PendingStatusSource reports every recommendation as pending
type PendingStatusSource struct{}

// StatusFor always returns pending
func (PendingStatusSource) StatusFor(_ string) domain.RecommendationStatus {
	return domain.StatusPending
}

// MapStatusSource looks up persisted workflow status by recommendation id
type MapStatusSource map[string]domain.RecommendationStatus

// StatusFor returns the stored status, or pending when the id is unknown
func (m MapStatusSource) StatusFor(id string) domain.RecommendationStatus {
	if status, ok := m[id]; ok {
		return status
	}
	return domain.StatusPending
}

// Generate flattens violations, synthesizes one recommendation per
// violation, and applies the request's filter and sort
func (s *RecommendationServiceImpl) Generate(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationResponse, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("recommendation synthesis cancelled: %w", ctx.Err())
	default:
	}

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if s.progress != nil {
		task = s.progress.StartTask("Synthesizing recommendations", len(req.Files))
	}
	defer task.Complete()

	violations := FlattenViolations(req.Files)
	stats := ComputeViolationStats(violations)

	var recommendations []domain.Recommendation
	var warnings []string
	for _, file := range req.Files {
		for i, violation := range file.Violations {
			rec := s.synthesize(file.FilePath, i, violation)
			if !violation.Severity.IsValid() {
				warnings = append(warnings,
					fmt.Sprintf("[%s] unknown severity %q on violation %s, priority scored as 0",
						file.FilePath, violation.Severity, violation.ID))
			}
			recommendations = append(recommendations, rec)
		}
		task.Increment(1)
	}

	// Filter then order; both leave their input untouched
	filtered := FilterRecommendations(recommendations, req.Filter)
	sorted := SortRecommendations(filtered, req.SortKey)

	return &domain.RecommendationResponse{
		Recommendations: sorted,
		Violations:      violations,
		Stats:           stats,
		Summary:         summarizeRecommendations(sorted),
		Warnings:        warnings,
		GeneratedAt:     time.Now().Format(time.RFC3339),
		Version:         version.Version,
	}, nil
}

// synthesize derives one recommendation from a violation via the rule table
func (s *RecommendationServiceImpl) synthesize(filePath string, index int, violation domain.Violation) domain.Recommendation {
	rule := matchRule(violation.Principle.Name)
	id := RecommendationID(filePath, index)

	related := violation
	related.FilePath = filePath

	return domain.Recommendation{
		ID:                id,
		Type:              rule.recType,
		Title:             recommendationTitles[rule.recType],
		Description:       violation.Suggestion,
		FilePath:          filePath,
		Location:          violation.Location,
		Effort:            rule.effort,
		Impact:            rule.impact,
		Priority:          domain.PriorityFor(violation.Severity, rule.impact, rule.effort),
		RelatedViolations: []domain.Violation{related},
		EstimatedTime:     rule.minutes,
		Status:            s.statuses.StatusFor(id),
	}
}

// matchRule finds the first rule whose substring appears in the principle
// name, falling back to the default rule
func matchRule(principleName string) remediationRule {
	for _, rule := range remediationRules {
		if strings.Contains(principleName, rule.nameContains) {
			return rule
		}
	}
	return defaultRule
}

// RecommendationID builds the deterministic id for the violation at the
// given index within a file
func RecommendationID(filePath string, index int) string {
	return fmt.Sprintf("rec:%s:%d", filePath, index)
}

// FlattenViolations folds per-file violation lists into one collection in
// file-then-violation-index order, stamping each violation with its owning
// file path. The input files are not mutated.
func FlattenViolations(files []domain.FileQuality) []domain.Violation {
	var flattened []domain.Violation
	for _, file := range files {
		for _, violation := range file.Violations {
			violation.FilePath = file.FilePath
			flattened = append(flattened, violation)
		}
	}
	return flattened
}

// ComputeViolationStats counts violations by severity and principle category
func ComputeViolationStats(violations []domain.Violation) domain.ViolationStats {
	stats := domain.ViolationStats{
		Total:      len(violations),
		BySeverity: make(map[domain.Severity]int),
		ByCategory: make(map[string]int),
	}
	for _, v := range violations {
		stats.BySeverity[v.Severity]++
		stats.ByCategory[v.Principle.Category]++
	}
	return stats
}

// summarizeRecommendations aggregates effort/impact distribution and the
// total estimated time
func summarizeRecommendations(recs []domain.Recommendation) domain.RecommendationSummary {
	summary := domain.RecommendationSummary{Total: len(recs)}

	for _, rec := range recs {
		summary.TotalEstimatedTime += rec.EstimatedTime

		switch rec.Effort {
		case domain.EffortSmall:
			summary.SmallEffort++
		case domain.EffortMedium:
			summary.MediumEffort++
		case domain.EffortLarge:
			summary.LargeEffort++
		}

		switch rec.Impact {
		case domain.ImpactHigh:
			summary.HighImpact++
		case domain.ImpactMedium:
			summary.MediumImpact++
		case domain.ImpactLow:
			summary.LowImpact++
		}
	}

	return summary
}

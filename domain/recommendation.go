package domain

import "context"

// RecommendationType classifies the remediation a recommendation proposes
type RecommendationType string

const (
	RecommendationExtractMethod        RecommendationType = "extract-method"
	RecommendationRename               RecommendationType = "rename"
	RecommendationReduceParameters     RecommendationType = "reduce-parameters"
	RecommendationSplitClass           RecommendationType = "split-class"
	RecommendationRemoveDeadCode       RecommendationType = "remove-dead-code"
	RecommendationImproveErrorHandling RecommendationType = "improve-error-handling"
	RecommendationAddTests             RecommendationType = "add-tests"
)

// Effort estimates how much work a recommendation takes
type Effort string

const (
	EffortSmall  Effort = "small"
	EffortMedium Effort = "medium"
	EffortLarge  Effort = "large"
)

// effortRank orders efforts Small < Medium < Large
var effortRank = map[Effort]int{
	EffortSmall:  1,
	EffortMedium: 2,
	EffortLarge:  3,
}

// Rank returns the ordinal position of the effort (Small is lowest).
// Unknown values return 0.
func (e Effort) Rank() int {
	return effortRank[e]
}

// Impact estimates how much a recommendation improves the code
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// impactRank orders impacts Low < Medium < High
var impactRank = map[Impact]int{
	ImpactLow:    1,
	ImpactMedium: 2,
	ImpactHigh:   3,
}

// Rank returns the ordinal position of the impact (Low is lowest).
// Unknown values return 0.
func (i Impact) Rank() int {
	return impactRank[i]
}

// RecommendationStatus tracks a recommendation through its workflow
type RecommendationStatus string

const (
	StatusPending    RecommendationStatus = "pending"
	StatusInProgress RecommendationStatus = "in-progress"
	StatusCompleted  RecommendationStatus = "completed"
	StatusDismissed  RecommendationStatus = "dismissed"
)

// Priority score tables. Unknown values score 0 so malformed input degrades
// a recommendation's priority instead of crashing the engine; callers should
// log such data-quality problems.
var (
	severityScores = map[Severity]int{
		SeverityCritical: 10,
		SeverityHigh:     7,
		SeverityMedium:   4,
		SeverityLow:      1,
	}

	impactScores = map[Impact]int{
		ImpactHigh:   3,
		ImpactMedium: 2,
		ImpactLow:    1,
	}

	// Small effort scores highest: the queue is deliberately biased toward
	// quick wins rather than strictly toward severity.
	effortScores = map[Effort]int{
		EffortSmall:  3,
		EffortMedium: 2,
		EffortLarge:  1,
	}
)

// SeverityScore returns the priority weight of a severity (0 for unknown)
func SeverityScore(s Severity) int { return severityScores[s] }

// ImpactScore returns the priority weight of an impact (0 for unknown)
func ImpactScore(i Impact) int { return impactScores[i] }

// EffortScore returns the priority weight of an effort (0 for unknown)
func EffortScore(e Effort) int { return effortScores[e] }

// PriorityFor computes the priority score for a (severity, impact, effort)
// triple. Priority is always recomputable from these inputs and must never
// be mutated independently of them.
func PriorityFor(severity Severity, impact Impact, effort Effort) float64 {
	return float64(SeverityScore(severity)*ImpactScore(impact)*EffortScore(effort)) / 10.0
}

// Recommendation is a remediation suggestion derived mechanically from one
// violation via the synthesizer's rule table
type Recommendation struct {
	// ID is deterministic from file path and violation index
	ID string `json:"id"`

	// Type is the proposed remediation
	Type RecommendationType `json:"type"`

	// Title is a short human-readable summary
	Title string `json:"title"`

	// Description explains the recommendation
	Description string `json:"description"`

	// FilePath is the file the recommendation applies to
	FilePath string `json:"file_path"`

	// Location is where in the file the related violation was found
	Location SourceLocation `json:"location"`

	// Effort estimates the work required
	Effort Effort `json:"effort"`

	// Impact estimates the improvement gained
	Impact Impact `json:"impact"`

	// Priority ranks the recommendation; derived from severity, impact and
	// effort via PriorityFor
	Priority float64 `json:"priority"`

	// RelatedViolations lists the violations this recommendation addresses
	// (currently always exactly one)
	RelatedViolations []Violation `json:"related_violations"`

	// EstimatedTime is the estimated fix time in minutes
	EstimatedTime int `json:"estimated_time"`

	// Status is the workflow state, supplied by a StatusSource
	Status RecommendationStatus `json:"status"`
}

// StatusSource supplies workflow status for recommendations. The reference
// implementation assigned status randomly at synthesis time for demo
// purposes; this interface replaces that with an injectable lookup so the
// engine stays deterministic.
type StatusSource interface {
	// StatusFor returns the workflow status for a recommendation id
	StatusFor(id string) RecommendationStatus
}

// RecommendationSummary provides aggregate statistics over synthesized
// recommendations
type RecommendationSummary struct {
	Total              int `json:"total"`
	TotalEstimatedTime int `json:"total_estimated_time"`

	// Distribution by effort and impact
	SmallEffort  int `json:"small_effort"`
	MediumEffort int `json:"medium_effort"`
	LargeEffort  int `json:"large_effort"`
	HighImpact   int `json:"high_impact"`
	MediumImpact int `json:"medium_impact"`
	LowImpact    int `json:"low_impact"`
}

// RecommendationRequest represents a request for recommendation synthesis
type RecommendationRequest struct {
	// Files are the externally assembled quality records to synthesize from
	Files []FileQuality

	// Filter narrows the result set; zero value means no filtering
	Filter RecommendationFilter

	// SortKey selects the comparator; each key has a fixed direction
	SortKey RecommendationSortKey

	// OutputFormat controls serialization when writing the response
	OutputFormat OutputFormat
}

// RecommendationResponse represents the complete synthesis result
type RecommendationResponse struct {
	// Recommendations is the ordered, filtered result set
	Recommendations []Recommendation `json:"recommendations"`

	// Violations is the flattened violation collection the
	// recommendations were derived from
	Violations []Violation `json:"violations,omitempty"`

	// Stats holds cross-cutting violation statistics
	Stats ViolationStats `json:"stats"`

	// Summary holds aggregate recommendation statistics
	Summary RecommendationSummary `json:"summary"`

	// Warnings lists data-quality problems encountered (e.g. unknown
	// severity values scored as zero)
	Warnings []string `json:"warnings,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version"`
}

// RecommendationService defines the violation aggregation and
// recommendation synthesis business logic
type RecommendationService interface {
	// Generate flattens violations, synthesizes recommendations, and
	// applies the request's filter and sort
	Generate(ctx context.Context, req RecommendationRequest) (*RecommendationResponse, error)
}

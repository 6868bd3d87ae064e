package service

import (
	"sort"
	"strings"

	"github.com/terojleinonen/kinscan/domain"
)

// FilterRecommendations returns the recommendations matching every active
// predicate in the filter. The input slice is never mutated.
func FilterRecommendations(recs []domain.Recommendation, filter domain.RecommendationFilter) []domain.Recommendation {
	if filter.IsZero() {
		out := make([]domain.Recommendation, len(recs))
		copy(out, recs)
		return out
	}

	search := strings.ToLower(filter.Search)
	out := make([]domain.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.Effort != "" && rec.Effort != filter.Effort {
			continue
		}
		if filter.Impact != "" && rec.Impact != filter.Impact {
			continue
		}
		if search != "" && !recommendationMatchesSearch(rec, search) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func recommendationMatchesSearch(rec domain.Recommendation, search string) bool {
	return strings.Contains(strings.ToLower(rec.Title), search) ||
		strings.Contains(strings.ToLower(rec.Description), search) ||
		strings.Contains(strings.ToLower(rec.FilePath), search)
}

// recommendationComparators maps each sort key to its fixed-direction
// comparator. Ties fall through to the id so ordering stays deterministic.
var recommendationComparators = map[domain.RecommendationSortKey]func(a, b domain.Recommendation) bool{
	domain.RecommendationSortPriority: func(a, b domain.Recommendation) bool {
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.ID < b.ID
	},
	domain.RecommendationSortEffort: func(a, b domain.Recommendation) bool {
		if a.Effort.Rank() != b.Effort.Rank() {
			return a.Effort.Rank() < b.Effort.Rank()
		}
		return a.ID < b.ID
	},
	domain.RecommendationSortImpact: func(a, b domain.Recommendation) bool {
		if a.Impact.Rank() != b.Impact.Rank() {
			return a.Impact.Rank() > b.Impact.Rank()
		}
		return a.ID < b.ID
	},
	domain.RecommendationSortTime: func(a, b domain.Recommendation) bool {
		if a.EstimatedTime != b.EstimatedTime {
			return a.EstimatedTime < b.EstimatedTime
		}
		return a.ID < b.ID
	},
}

// SortRecommendations returns a new slice ordered by the sort key's fixed
// direction: priority descending, effort ascending, impact descending,
// estimated time ascending
func SortRecommendations(recs []domain.Recommendation, key domain.RecommendationSortKey) []domain.Recommendation {
	sorted := make([]domain.Recommendation, len(recs))
	copy(sorted, recs)

	less, ok := recommendationComparators[key]
	if !ok {
		less = recommendationComparators[domain.RecommendationSortPriority]
	}
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

// FilterViolations returns the violations matching every active predicate
// in the filter. The input slice is never mutated.
func FilterViolations(violations []domain.Violation, filter domain.ViolationFilter) []domain.Violation {
	if filter.IsZero() {
		out := make([]domain.Violation, len(violations))
		copy(out, violations)
		return out
	}

	search := strings.ToLower(filter.Search)
	out := make([]domain.Violation, 0, len(violations))
	for _, v := range violations {
		if filter.Severity != "" && v.Severity != filter.Severity {
			continue
		}
		if filter.Principle != "" && v.Principle.Name != filter.Principle {
			continue
		}
		if search != "" && !violationMatchesSearch(v, search) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func violationMatchesSearch(v domain.Violation, search string) bool {
	return strings.Contains(strings.ToLower(v.Description), search) ||
		strings.Contains(strings.ToLower(v.Suggestion), search) ||
		strings.Contains(strings.ToLower(v.FilePath), search) ||
		strings.Contains(strings.ToLower(v.Principle.Name), search)
}

// violationComparators maps each sort key to its ascending comparator; the
// sort state's direction decides whether the result is reversed. Ties fall
// through to the id so ordering stays deterministic.
var violationComparators = map[domain.ViolationSortKey]func(a, b domain.Violation) int{
	domain.ViolationSortSeverity: func(a, b domain.Violation) int {
		return a.Severity.Rank() - b.Severity.Rank()
	},
	domain.ViolationSortPrinciple: func(a, b domain.Violation) int {
		return strings.Compare(a.Principle.Name, b.Principle.Name)
	},
	domain.ViolationSortFile: func(a, b domain.Violation) int {
		return strings.Compare(a.FilePath, b.FilePath)
	},
	domain.ViolationSortLine: func(a, b domain.Violation) int {
		return a.Location.Line - b.Location.Line
	},
}

// SortViolations returns a new slice ordered by the state's key and
// direction
func SortViolations(violations []domain.Violation, state domain.ViolationSortState) []domain.Violation {
	sorted := make([]domain.Violation, len(violations))
	copy(sorted, violations)

	compare, ok := violationComparators[state.Key]
	if !ok {
		compare = violationComparators[domain.ViolationSortSeverity]
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		c := compare(sorted[i], sorted[j])
		if c == 0 {
			return violationTieBreak(sorted[i], sorted[j])
		}
		if state.Direction == domain.SortDescending {
			return c > 0
		}
		return c < 0
	})
	return sorted
}

// violationTieBreak orders equal primary keys by file path, then line, then
// id, independent of the sort direction
func violationTieBreak(a, b domain.Violation) bool {
	if a.FilePath != b.FilePath {
		return a.FilePath < b.FilePath
	}
	if a.Location.Line != b.Location.Line {
		return a.Location.Line < b.Location.Line
	}
	return a.ID < b.ID
}

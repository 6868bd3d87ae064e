package service

import (
	"testing"

	"github.com/terojleinonen/kinscan/domain"
)

func recsFixture() []domain.Recommendation {
	return []domain.Recommendation{
		{
			ID:            "rec:a.js:0",
			Title:         "Extract smaller functions",
			FilePath:      "src/a.js",
			Effort:        domain.EffortLarge,
			Impact:        domain.ImpactHigh,
			Priority:      6.3,
			EstimatedTime: 120,
			Status:        domain.StatusPending,
		},
		{
			ID:            "rec:b.js:0",
			Title:         "Rename for clarity",
			FilePath:      "src/b.js",
			Effort:        domain.EffortSmall,
			Impact:        domain.ImpactMedium,
			Priority:      2.1,
			EstimatedTime: 15,
			Status:        domain.StatusCompleted,
		},
		{
			ID:            "rec:c.js:0",
			Title:         "Improve error handling",
			FilePath:      "src/c.js",
			Effort:        domain.EffortMedium,
			Impact:        domain.ImpactMedium,
			Priority:      2.8,
			EstimatedTime: 30,
			Status:        domain.StatusPending,
		},
	}
}

func TestFilterRecommendations_ZeroFilter(t *testing.T) {
	recs := recsFixture()

	out := FilterRecommendations(recs, domain.RecommendationFilter{})

	if len(out) != len(recs) {
		t.Fatalf("Zero filter should pass everything, got %d", len(out))
	}

	// Result is a copy, not the input slice
	out[0].Title = "changed"
	if recs[0].Title == "changed" {
		t.Error("Filtering must not alias the input slice")
	}
}

func TestFilterRecommendations_ByStatus(t *testing.T) {
	out := FilterRecommendations(recsFixture(), domain.RecommendationFilter{
		Status: domain.StatusPending,
	})

	if len(out) != 2 {
		t.Fatalf("Should match 2 pending recommendations, got %d", len(out))
	}
	for _, rec := range out {
		if rec.Status != domain.StatusPending {
			t.Errorf("Unexpected status %s", rec.Status)
		}
	}
}

func TestFilterRecommendations_ByEffortAndImpact(t *testing.T) {
	out := FilterRecommendations(recsFixture(), domain.RecommendationFilter{
		Effort: domain.EffortMedium,
		Impact: domain.ImpactMedium,
	})

	if len(out) != 1 || out[0].ID != "rec:c.js:0" {
		t.Errorf("Predicates should AND together, got %v", out)
	}
}

func TestFilterRecommendations_Search(t *testing.T) {
	// Case-insensitive match over title, description and path
	out := FilterRecommendations(recsFixture(), domain.RecommendationFilter{
		Search: "RENAME",
	})

	if len(out) != 1 || out[0].ID != "rec:b.js:0" {
		t.Errorf("Search should match title case-insensitively, got %v", out)
	}

	out = FilterRecommendations(recsFixture(), domain.RecommendationFilter{
		Search: "src/c",
	})
	if len(out) != 1 || out[0].ID != "rec:c.js:0" {
		t.Errorf("Search should match file paths, got %v", out)
	}
}

func TestSortRecommendations_Priority(t *testing.T) {
	out := SortRecommendations(recsFixture(), domain.RecommendationSortPriority)

	want := []string{"rec:a.js:0", "rec:c.js:0", "rec:b.js:0"}
	for i, id := range want {
		if out[i].ID != id {
			t.Errorf("Position %d should be %s, got %s", i, id, out[i].ID)
		}
	}
}

func TestSortRecommendations_Effort(t *testing.T) {
	out := SortRecommendations(recsFixture(), domain.RecommendationSortEffort)

	// Small, Medium, Large
	want := []string{"rec:b.js:0", "rec:c.js:0", "rec:a.js:0"}
	for i, id := range want {
		if out[i].ID != id {
			t.Errorf("Position %d should be %s, got %s", i, id, out[i].ID)
		}
	}
}

func TestSortRecommendations_Impact(t *testing.T) {
	out := SortRecommendations(recsFixture(), domain.RecommendationSortImpact)

	if out[0].ID != "rec:a.js:0" {
		t.Errorf("High impact should sort first, got %s", out[0].ID)
	}
}

func TestSortRecommendations_Time(t *testing.T) {
	out := SortRecommendations(recsFixture(), domain.RecommendationSortTime)

	if out[0].EstimatedTime != 15 || out[2].EstimatedTime != 120 {
		t.Error("Shortest estimated time should sort first")
	}
}

func TestSortRecommendations_TieBreakByID(t *testing.T) {
	recs := []domain.Recommendation{
		{ID: "rec:b.js:0", Priority: 3.0},
		{ID: "rec:a.js:0", Priority: 3.0},
	}

	out := SortRecommendations(recs, domain.RecommendationSortPriority)

	if out[0].ID != "rec:a.js:0" {
		t.Error("Equal priorities should order by id")
	}
}

func TestSortRecommendations_DoesNotMutateInput(t *testing.T) {
	recs := recsFixture()
	firstID := recs[0].ID

	SortRecommendations(recs, domain.RecommendationSortTime)

	if recs[0].ID != firstID {
		t.Error("Sorting must not mutate the input slice")
	}
}

func violationsFixture() []domain.Violation {
	return []domain.Violation{
		{
			ID:        "v1",
			FilePath:  "src/b.js",
			Principle: domain.Principle{Name: "Naming"},
			Severity:  domain.SeverityLow,
			Location:  domain.SourceLocation{Line: 30},
		},
		{
			ID:        "v2",
			FilePath:  "src/a.js",
			Principle: domain.Principle{Name: "Function Size"},
			Severity:  domain.SeverityCritical,
			Location:  domain.SourceLocation{Line: 10},
		},
		{
			ID:        "v3",
			FilePath:  "src/a.js",
			Principle: domain.Principle{Name: "Error Handling"},
			Severity:  domain.SeverityMedium,
			Location:  domain.SourceLocation{Line: 20},
		},
	}
}

func TestFilterViolations_BySeverity(t *testing.T) {
	out := FilterViolations(violationsFixture(), domain.ViolationFilter{
		Severity: domain.SeverityCritical,
	})

	if len(out) != 1 || out[0].ID != "v2" {
		t.Errorf("Should match the critical violation, got %v", out)
	}
}

func TestFilterViolations_ByPrinciple(t *testing.T) {
	out := FilterViolations(violationsFixture(), domain.ViolationFilter{
		Principle: "Naming",
	})

	if len(out) != 1 || out[0].ID != "v1" {
		t.Errorf("Should match by principle name, got %v", out)
	}
}

func TestFilterViolations_Search(t *testing.T) {
	out := FilterViolations(violationsFixture(), domain.ViolationFilter{
		Search: "function size",
	})

	if len(out) != 1 || out[0].ID != "v2" {
		t.Errorf("Search should match principle names case-insensitively, got %v", out)
	}
}

func TestSortViolations_DefaultSeverityDescending(t *testing.T) {
	out := SortViolations(violationsFixture(), domain.NewViolationSortState())

	want := []string{"v2", "v3", "v1"}
	for i, id := range want {
		if out[i].ID != id {
			t.Errorf("Position %d should be %s, got %s", i, id, out[i].ID)
		}
	}
}

func TestSortViolations_ByLineAscendingAfterFlip(t *testing.T) {
	// Select line (descending), then re-select to flip ascending
	state := domain.NewViolationSortState().Select(domain.ViolationSortLine)
	state = state.Select(domain.ViolationSortLine)

	if state.Direction != domain.SortAscending {
		t.Fatalf("Re-selecting the key should flip to ascending, got %s", state.Direction)
	}

	out := SortViolations(violationsFixture(), state)

	if out[0].Location.Line != 10 || out[2].Location.Line != 30 {
		t.Error("Ascending line sort should start at the lowest line")
	}
}

func TestSortViolations_ByFile(t *testing.T) {
	state := domain.ViolationSortState{
		Key:       domain.ViolationSortFile,
		Direction: domain.SortAscending,
	}

	out := SortViolations(violationsFixture(), state)

	if out[0].FilePath != "src/a.js" {
		t.Errorf("First should be src/a.js, got %s", out[0].FilePath)
	}
	// Same file ties break on id
	if out[0].ID != "v2" || out[1].ID != "v3" {
		t.Error("Ties within a file should order by id")
	}
}

func TestSortViolations_DoesNotMutateInput(t *testing.T) {
	violations := violationsFixture()

	SortViolations(violations, domain.NewViolationSortState())

	if violations[0].ID != "v1" {
		t.Error("Sorting must not mutate the input slice")
	}
}

func TestViolationSortState_SelectNewKeyResetsDescending(t *testing.T) {
	state := domain.NewViolationSortState().Select(domain.ViolationSortLine)
	state = state.Select(domain.ViolationSortLine) // ascending now
	state = state.Select(domain.ViolationSortFile)

	if state.Key != domain.ViolationSortFile {
		t.Errorf("Key should be file, got %s", state.Key)
	}
	if state.Direction != domain.SortDescending {
		t.Errorf("New key should reset to descending, got %s", state.Direction)
	}
}

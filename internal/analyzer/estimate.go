package analyzer

import (
	"regexp"
	"strings"
)

// Branch-point patterns for the regex fallback. These intentionally match
// inside string literals and comments; the estimator trades that
// overcounting for working on files the parser rejects.
var branchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`if\s*\(`),
	regexp.MustCompile(`while\s*\(`),
	regexp.MustCompile(`for\s*\(`),
	regexp.MustCompile(`case\s`),
	regexp.MustCompile(`catch\s*\(`),
	regexp.MustCompile(`&&`),
	regexp.MustCompile(`\|\|`),
}

// EstimateCyclomatic approximates cyclomatic complexity by counting
// branch-like tokens in raw text: base of 1 plus one per match
func EstimateCyclomatic(source string) int {
	complexity := 1
	for _, p := range branchPatterns {
		complexity += len(p.FindAllStringIndex(source, -1))
	}
	return complexity
}

// EstimateNesting approximates nesting depth from leading whitespace,
// assuming two-space indentation: the deepest line's indent divided by
// two, truncated. Tabs count as single characters, so tab-indented files
// read shallower than they are.
func EstimateNesting(source string) int {
	maxDepth := 0
	for _, line := range strings.Split(source, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		depth := indent / 2
		if depth > maxDepth {
			maxDepth = depth
		}
	}
	return maxDepth
}

// EstimateFile produces file-level metrics from raw text when parsing is
// unavailable. Estimated files report no per-function breakdown.
func EstimateFile(source string) *FileResult {
	lines := 0
	if len(source) > 0 {
		lines = strings.Count(source, "\n") + 1
	}
	// Only cyclomatic and nesting have textual approximations; cognitive
	// complexity stays at zero for estimated files
	return &FileResult{
		Cyclomatic:   EstimateCyclomatic(source),
		NestingDepth: EstimateNesting(source),
		LineCount:    lines,
	}
}

package analyzer

import (
	"fmt"
	"math"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/terojleinonen/kinscan/internal/parser"
)

// ScopeResult holds complexity metrics for one function-like scope
type ScopeResult struct {
	FunctionName string
	StartLine    int
	StartColumn  int
	EndLine      int

	Cyclomatic     int
	Cognitive      int
	NestingDepth   int
	LineCount      int
	ParameterCount int
}

func (sr *ScopeResult) String() string {
	return fmt.Sprintf("Function: %s, Cyclomatic: %d, Cognitive: %d",
		sr.FunctionName, sr.Cyclomatic, sr.Cognitive)
}

// FileResult holds the per-scope results for a file plus the file-level
// aggregate: the rounded arithmetic mean of each metric across scopes, or
// the defined defaults when the file has no function scopes.
type FileResult struct {
	Scopes []ScopeResult

	Cyclomatic     int
	Cognitive      int
	NestingDepth   int
	LineCount      int
	ParameterCount int
}

// AnalyzeSource parses the source and measures complexity for every
// function scope in it. Parse failure is recoverable: the heuristic
// estimator produces the file-level metrics instead, so this never
// returns an error to the caller.
func AnalyzeSource(filename string, source []byte) (*FileResult, bool) {
	result, err := parser.ParseForLanguage(filename, source)
	if err != nil {
		return EstimateFile(string(source)), true
	}
	defer result.Close()

	return AnalyzeTree(result.Root, source), false
}

// AnalyzeTree walks a parsed syntax tree and measures complexity for every
// function scope found in it
func AnalyzeTree(root *sitter.Node, source []byte) *FileResult {
	w := &treeWalker{source: source}
	w.walk(root, 0, nil)

	return aggregateFile(w.scopes, countLines(source), w.maxAmbientNesting)
}

// treeWalker traverses the syntax tree once, tracking the ambient nesting
// level with standard stack discipline and opening a new complexity scope
// at every function boundary
type treeWalker struct {
	source []byte
	scopes []ScopeResult

	// maxAmbientNesting is the deepest nesting seen anywhere in the file,
	// inside or outside functions; files with no functions report it
	maxAmbientNesting int
}

// scopeState accumulates metrics for one open function scope
type scopeState struct {
	cyclomatic int
	cognitive  int
	maxNesting int

	// baseline is the ambient nesting level at the function boundary, so
	// nested closures measure depth relative to their own body while
	// absolute depth still reflects enclosing context
	baseline int
}

func (w *treeWalker) walk(n *sitter.Node, depth int, scope *scopeState) {
	if n == nil {
		return
	}

	if parser.IsFunctionNode(n) {
		w.enterScope(n, depth)
		return
	}

	if scope != nil {
		if parser.IsDecisionNode(n) {
			scope.cyclomatic++
		}
		if parser.IsCognitiveNode(n) {
			// Nesting-weighted increment, measured from the scope's
			// baseline at the construct's own position
			rel := depth - scope.baseline
			if rel < 0 {
				rel = 0
			}
			increment := rel + 1
			if increment < 1 {
				increment = 1
			}
			scope.cognitive += increment
		}
		if parser.IsLogicalOperator(n, w.source) {
			// Short-circuit operators add one decision path and a flat
			// cognitive point regardless of nesting
			scope.cyclomatic++
			scope.cognitive++
		}
	}

	childDepth := depth
	if parser.IsNestingNode(n) {
		childDepth = depth + 1
		if childDepth > w.maxAmbientNesting {
			w.maxAmbientNesting = childDepth
		}
		if scope != nil {
			rel := childDepth - scope.baseline
			if rel > scope.maxNesting {
				scope.maxNesting = rel
			}
		}
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		w.walk(n.Child(i), childDepth, scope)
	}
}

// enterScope opens a new complexity scope for a function-like node and
// walks its subtree. The enclosing traversal does not descend past the
// boundary; nested functions open their own scopes recursively.
func (w *treeWalker) enterScope(n *sitter.Node, depth int) {
	scope := &scopeState{
		cyclomatic: 1,
		baseline:   depth,
	}

	// Reserve the slot first so scopes appear in source order even when
	// nested functions finish before their enclosing one
	index := len(w.scopes)
	startLine, endLine := parser.LineSpan(n)
	w.scopes = append(w.scopes, ScopeResult{
		FunctionName:   parser.FunctionName(n, w.source),
		StartLine:      startLine,
		StartColumn:    int(n.StartPoint().Column),
		EndLine:        endLine,
		LineCount:      endLine - startLine + 1,
		ParameterCount: parser.ParameterCount(n),
	})

	for i := 0; i < int(n.ChildCount()); i++ {
		w.walk(n.Child(i), depth, scope)
	}

	w.scopes[index].Cyclomatic = scope.cyclomatic
	w.scopes[index].Cognitive = scope.cognitive
	w.scopes[index].NestingDepth = scope.maxNesting
}

// aggregateFile folds per-scope metrics into the file-level summary. With
// no scopes the division-by-zero guard short-circuits to the defined
// defaults: cyclomatic 1, cognitive 0, nesting as observed anywhere in the
// file, and the total file line count.
func aggregateFile(scopes []ScopeResult, totalLines, maxAmbientNesting int) *FileResult {
	result := &FileResult{Scopes: scopes}

	if len(scopes) == 0 {
		result.Cyclomatic = 1
		result.Cognitive = 0
		result.NestingDepth = maxAmbientNesting
		result.ParameterCount = 0
		result.LineCount = totalLines
		return result
	}

	var cyclomatic, cognitive, nesting, lines, params int
	for _, s := range scopes {
		cyclomatic += s.Cyclomatic
		cognitive += s.Cognitive
		nesting += s.NestingDepth
		lines += s.LineCount
		params += s.ParameterCount
	}

	n := len(scopes)
	result.Cyclomatic = roundedMean(cyclomatic, n)
	result.Cognitive = roundedMean(cognitive, n)
	result.NestingDepth = roundedMean(nesting, n)
	result.LineCount = roundedMean(lines, n)
	result.ParameterCount = roundedMean(params, n)

	return result
}

func roundedMean(sum, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}

// countLines returns the number of lines in the source text; empty text
// has zero lines
func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	return strings.Count(string(source), "\n") + 1
}

// DetermineRiskLevel classifies a cyclomatic complexity value against the
// configured thresholds
func DetermineRiskLevel(complexity, lowThreshold, mediumThreshold int) string {
	if complexity > mediumThreshold {
		return "high"
	} else if complexity > lowThreshold {
		return "medium"
	}
	return "low"
}

// Package testutil provides helper functions for testing kinscan components
package testutil

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/terojleinonen/kinscan/internal/parser"
)

// ParseTestSource parses JavaScript source code, failing the test on error.
// The caller is responsible for closing the returned result.
func ParseTestSource(t *testing.T, source string) *parser.ParseResult {
	t.Helper()
	p := parser.NewParser()
	defer p.Close()

	result, err := p.ParseString(source)
	if err != nil {
		t.Fatalf("Failed to parse test code: %v", err)
	}
	return result
}

// WalkTree visits every node in the subtree depth-first until fn returns false
func WalkTree(n *sitter.Node, fn func(*sitter.Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if !WalkTree(n.Child(i), fn) {
			return false
		}
	}
	return true
}

// FindFunction finds a function node by name in a parsed tree
func FindFunction(result *parser.ParseResult, name string) *sitter.Node {
	var found *sitter.Node
	WalkTree(result.Root, func(n *sitter.Node) bool {
		if parser.IsFunctionNode(n) && parser.FunctionName(n, result.Source) == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// CountFunctions counts function-like nodes in a parsed tree
func CountFunctions(result *parser.ParseResult) int {
	count := 0
	WalkTree(result.Root, func(n *sitter.Node) bool {
		if parser.IsFunctionNode(n) {
			count++
		}
		return true
	})
	return count
}

// CountNodesOfKind counts nodes of a specific grammar kind in a parsed tree
func CountNodesOfKind(result *parser.ParseResult, kind string) int {
	count := 0
	WalkTree(result.Root, func(n *sitter.Node) bool {
		if n.Type() == kind {
			count++
		}
		return true
	})
	return count
}

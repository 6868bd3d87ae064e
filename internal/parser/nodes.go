package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Node type classification for the JavaScript/TypeScript grammars. The
// grammar exposes node kinds as strings; these helpers give the analyzer a
// single place that knows the kind names.

// IsFunctionNode reports whether the node opens a function-like scope:
// declarations, methods, arrow functions and function expressions. The
// unnamed `function` keyword token inside a declaration shares the kind
// string with the function-expression node in some grammar versions, so
// anonymous tokens are rejected first.
func IsFunctionNode(n *sitter.Node) bool {
	if !n.IsNamed() {
		return false
	}
	switch n.Type() {
	case "function_declaration", "function", "function_expression",
		"generator_function", "generator_function_declaration",
		"arrow_function", "method_definition":
		return true
	}
	return false
}

// IsLoopNode reports whether the node is a loop statement
func IsLoopNode(n *sitter.Node) bool {
	switch n.Type() {
	case "while_statement", "for_statement", "for_in_statement",
		"for_of_statement", "do_statement":
		return true
	}
	return false
}

// IsNestingNode reports whether entering the node increases nesting depth:
// conditionals, loops, try blocks, switch statements and catch clauses
func IsNestingNode(n *sitter.Node) bool {
	switch n.Type() {
	case "if_statement", "switch_statement", "try_statement", "catch_clause":
		return true
	}
	return IsLoopNode(n)
}

// IsDecisionNode reports whether the node adds one to cyclomatic
// complexity: if statements, ternaries, loops, case clauses and catch
// clauses. Default clauses do not branch and are excluded.
func IsDecisionNode(n *sitter.Node) bool {
	switch n.Type() {
	case "if_statement", "ternary_expression", "conditional_expression",
		"switch_case", "catch_clause":
		return true
	}
	return IsLoopNode(n)
}

// IsCognitiveNode reports whether the node takes the nesting-weighted
// cognitive increment. The switch statement itself contributes; its case
// clauses do not.
func IsCognitiveNode(n *sitter.Node) bool {
	switch n.Type() {
	case "if_statement", "ternary_expression", "conditional_expression",
		"switch_statement", "catch_clause":
		return true
	}
	return IsLoopNode(n)
}

// IsLogicalOperator reports whether the node is a binary expression whose
// operator is logical AND or OR. Nullish coalescing is not a decision
// point and is excluded.
func IsLogicalOperator(n *sitter.Node, source []byte) bool {
	if n.Type() != "binary_expression" {
		return false
	}
	op := n.ChildByFieldName("operator")
	if op == nil {
		return false
	}
	switch op.Content(source) {
	case "&&", "||":
		return true
	}
	return false
}

// ParameterCount returns the declared parameter count of a function-like
// node. Arrow functions with a single bare parameter have no
// formal_parameters list, just an identifier in the "parameter" field.
func ParameterCount(n *sitter.Node) int {
	if params := n.ChildByFieldName("parameters"); params != nil {
		count := 0
		for i := 0; i < int(params.NamedChildCount()); i++ {
			child := params.NamedChild(i)
			if child != nil && child.Type() != "comment" {
				count++
			}
		}
		return count
	}
	if n.ChildByFieldName("parameter") != nil {
		return 1
	}
	return 0
}

// FunctionName extracts the declared name of a function-like node, or
// "<anonymous>" when it has none
func FunctionName(n *sitter.Node, source []byte) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return name.Content(source)
	}
	return "<anonymous>"
}

// LineSpan returns the 1-based start and end lines covered by the node
func LineSpan(n *sitter.Node) (start, end int) {
	return int(n.StartPoint().Row) + 1, int(n.EndPoint().Row) + 1
}

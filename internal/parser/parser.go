package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// Parser wraps tree-sitter parser for JavaScript/TypeScript
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
	isTS     bool
}

// NewParser creates a new JavaScript parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	lang := javascript.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
		isTS:     false,
	}
}

// NewTypeScriptParser creates a new TypeScript parser
func NewTypeScriptParser() *Parser {
	parser := sitter.NewParser()
	lang := tsx.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
		isTS:     true,
	}
}

// ParseResult holds a parsed syntax tree. The underlying tree-sitter tree
// owns C memory, so callers must Close the result when done walking it.
type ParseResult struct {
	Root   *sitter.Node
	Source []byte

	tree *sitter.Tree
}

// Close releases the underlying parse tree
func (r *ParseResult) Close() {
	if r.tree != nil {
		r.tree.Close()
		r.tree = nil
	}
}

// ParseFile parses a JavaScript/TypeScript file into a syntax tree
func (p *Parser) ParseFile(filename string, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file %s: %v", filename, err)
	}

	rootNode := tree.RootNode()
	if rootNode == nil {
		tree.Close()
		return nil, fmt.Errorf("no root node in parse tree for %s", filename)
	}

	return &ParseResult{
		Root:   rootNode,
		Source: source,
		tree:   tree,
	}, nil
}

// Parse parses JavaScript/TypeScript source code
func (p *Parser) Parse(source []byte) (*ParseResult, error) {
	return p.ParseFile("<input>", source)
}

// ParseString parses JavaScript/TypeScript source code from a string
func (p *Parser) ParseString(source string) (*ParseResult, error) {
	return p.Parse([]byte(source))
}

// IsTypeScript returns true if this parser is configured for TypeScript
func (p *Parser) IsTypeScript() bool {
	return p.isTS
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// IsTypeScriptFile reports whether the filename has a TypeScript extension
func IsTypeScriptFile(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range []string{".ts", ".tsx", ".mts", ".cts"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ParseForLanguage automatically selects the JavaScript or TypeScript
// parser based on file extension
func ParseForLanguage(filename string, source []byte) (*ParseResult, error) {
	var parser *Parser
	if IsTypeScriptFile(filename) {
		parser = NewTypeScriptParser()
	} else {
		parser = NewParser()
	}
	defer parser.Close()

	return parser.ParseFile(filename, source)
}

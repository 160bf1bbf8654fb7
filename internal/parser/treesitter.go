//go:build cgo

package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Parser extracts file facts from C++ sources using tree-sitter.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a tree-sitter backed C++ parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(cpp.GetLanguage())
	return &Parser{parser: p}
}

// IsAvailable returns whether tree-sitter parsing is available.
// True when built with CGO.
func IsAvailable() bool {
	return true
}

// ParseSource parses C++ source bytes and returns the extracted record.
func (p *Parser) ParseSource(ctx context.Context, path string, source []byte) (*FileRecord, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	rec := &FileRecord{
		Path:      path,
		IsHeader:  IsHeaderPath(path),
		LineCount: countLines(source),
	}

	root := tree.RootNode()
	extractIncludes(root, source, rec)
	extractDeclarations(root, source, rec)

	return rec, nil
}

// extractIncludes collects #include directives from the AST.
func extractIncludes(node *sitter.Node, source []byte, rec *FileRecord) {
	if node.Type() == "preproc_include" {
		for i := uint32(0); i < node.ChildCount(); i++ {
			child := node.Child(int(i))
			if child == nil {
				continue
			}
			if child.Type() == "string_literal" || child.Type() == "system_lib_string" {
				include := string(source[child.StartByte():child.EndByte()])
				include = strings.Trim(include, `"<>`)
				rec.Includes = append(rec.Includes, include)
			}
		}
	}

	for i := uint32(0); i < node.ChildCount(); i++ {
		if child := node.Child(int(i)); child != nil {
			extractIncludes(child, source, rec)
		}
	}
}

// extractDeclarations collects class, struct, free function and file-scope
// variable names from the AST.
func extractDeclarations(node *sitter.Node, source []byte, rec *FileRecord) {
	switch node.Type() {
	case "class_specifier":
		if name := typeIdentifier(node, source); name != "" {
			rec.Classes = append(rec.Classes, name)
		}

	case "struct_specifier":
		if name := typeIdentifier(node, source); name != "" {
			rec.Structs = append(rec.Structs, name)
		}

	case "function_definition":
		// Member definitions (Class::method) carry a qualified_identifier
		// and are excluded; only free functions are recorded.
		if name, member := functionName(node, source); name != "" && !member {
			rec.Functions = append(rec.Functions, name)
		}

	case "declaration":
		if parent := node.Parent(); parent != nil && parent.Type() == "translation_unit" {
			if name := variableName(node, source); name != "" {
				rec.GlobalVars = append(rec.GlobalVars, name)
			}
		}
	}

	for i := uint32(0); i < node.ChildCount(); i++ {
		if child := node.Child(int(i)); child != nil {
			extractDeclarations(child, source, rec)
		}
	}
}

// typeIdentifier returns the name of a class/struct specifier node.
func typeIdentifier(node *sitter.Node, source []byte) string {
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child != nil && child.Type() == "type_identifier" {
			return string(source[child.StartByte():child.EndByte()])
		}
	}
	return ""
}

// functionName returns the declared name of a function_definition node and
// whether it is a member definition.
func functionName(node *sitter.Node, source []byte) (name string, member bool) {
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child == nil || child.Type() != "function_declarator" {
			continue
		}
		for j := uint32(0); j < child.ChildCount(); j++ {
			sub := child.Child(int(j))
			if sub == nil {
				continue
			}
			switch sub.Type() {
			case "identifier":
				return string(source[sub.StartByte():sub.EndByte()]), false
			case "qualified_identifier":
				return string(source[sub.StartByte():sub.EndByte()]), true
			}
		}
	}
	return "", false
}

// variableName returns the declared name of a file-scope declaration node.
func variableName(node *sitter.Node, source []byte) string {
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child == nil {
			continue
		}
		switch child.Type() {
		case "init_declarator":
			for j := uint32(0); j < child.ChildCount(); j++ {
				sub := child.Child(int(j))
				if sub != nil && sub.Type() == "identifier" {
					return string(source[sub.StartByte():sub.EndByte()])
				}
			}
		case "identifier":
			return string(source[child.StartByte():child.EndByte()])
		}
	}
	return ""
}

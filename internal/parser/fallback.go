package parser

import "regexp"

// Regex fallback used when tree-sitter is unavailable (non-CGO builds) or
// fails on a file. Less precise than the AST path: it cannot tell member
// functions from free functions in all cases and does not extract globals.
var (
	includePattern  = regexp.MustCompile(`#include\s*[<"]([^>"]+)[>"]`)
	classPattern    = regexp.MustCompile(`\bclass\s+(\w+)`)
	structPattern   = regexp.MustCompile(`\bstruct\s+(\w+)`)
	functionPattern = regexp.MustCompile(`(?m)^(?:[\w:*&<>]+\s+)+(\w+)\s*\([^)]*\)\s*(?:const)?\s*\{`)
)

// parseSourceRegex extracts file facts with regular expressions.
func parseSourceRegex(path string, source []byte) *FileRecord {
	rec := &FileRecord{
		Path:      path,
		IsHeader:  IsHeaderPath(path),
		LineCount: countLines(source),
	}

	for _, m := range includePattern.FindAllSubmatch(source, -1) {
		rec.Includes = append(rec.Includes, string(m[1]))
	}
	for _, m := range classPattern.FindAllSubmatch(source, -1) {
		rec.Classes = append(rec.Classes, string(m[1]))
	}
	for _, m := range structPattern.FindAllSubmatch(source, -1) {
		rec.Structs = append(rec.Structs, string(m[1]))
	}
	for _, m := range functionPattern.FindAllSubmatch(source, -1) {
		rec.Functions = append(rec.Functions, string(m[1]))
	}

	return rec
}

package scan

import (
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// ParsedExtensions lists the file extensions searched for imports and
// exports. Other files only get a line count.
var ParsedExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".vue"}

// Import is one import statement or require call.
type Import struct {
	Source      string // Raw import string, e.g. "./utils" or "@/components/Button"
	IsDefault   bool   // Default import or require call
	IsNamespace bool   // "import * as X"
}

// Export is one exported name.
type Export struct {
	Name      string
	IsDefault bool
}

// Facts holds what was extracted from one file.
type Facts struct {
	LineCount int
	Imports   []Import
	Exports   []Export
}

// Sources yields the raw import strings in source order.
func (f *Facts) Sources() iter.Seq[string] {
	return func(yield func(string) bool) {
		if f == nil {
			return
		}
		for _, imp := range f.Imports {
			if !yield(imp.Source) {
				return
			}
		}
	}
}

// Parseable reports whether path has one of the [ParsedExtensions].
func Parseable(path string) bool {
	return slices.Contains(ParsedExtensions, filepath.Ext(path))
}

// ParseFile reads the file at path and extracts its facts.
func ParseFile(path string) (*Facts, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(content)), nil
}

// Parse extracts facts from content. The name is only used to decide by
// extension whether imports and exports are searched.
func Parse(name, content string) *Facts {
	facts := &Facts{LineCount: CountLines(content)}
	if !Parseable(name) {
		return facts
	}
	facts.Imports = ExtractImports(content)
	facts.Exports = ExtractExports(content)
	return facts
}

// CountLines returns the number of lines in content. A trailing newline
// terminates the last line instead of starting a new one.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// ExtractImports returns the import statements and require calls in content.
// A line that is both an import and contains a require call yields two
// entries.
func ExtractImports(content string) []Import {
	var imports []Import

	for line := range codeLines(content) {
		if strings.HasPrefix(line, "import ") {
			if source, ok := importSource(line); ok {
				imports = append(imports, Import{
					Source: source,
					IsDefault: !strings.Contains(line, "import {") &&
						!strings.Contains(line, "import *") &&
						!strings.Contains(line, "import type "),
					IsNamespace: strings.Contains(line, "import * as"),
				})
			}
		}

		if _, after, found := strings.Cut(line, "require("); found {
			if source, ok := quoted(after); ok {
				imports = append(imports, Import{Source: source, IsDefault: true})
			}
		}
	}
	return imports
}

// ExtractExports returns the exported names declared in content.
func ExtractExports(content string) []Export {
	var exports []Export

	for line := range codeLines(content) {
		if strings.HasPrefix(line, "export default ") {
			exports = append(exports, Export{Name: "default", IsDefault: true})
			continue
		}

		var name string
		switch {
		case hasAnyPrefix(line, "export const ", "export let ", "export var "):
			name = variableName(line)
		case strings.HasPrefix(line, "export function "):
			name = functionName(line)
		case hasAnyPrefix(line, "export class ", "export interface ", "export type "):
			name = typeName(line)
		}
		if name != "" {
			exports = append(exports, Export{Name: name})
		}
	}
	return exports
}

// codeLines yields the trimmed lines of content that are not comments.
func codeLines(content string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.Lines(content) {
			line = strings.TrimSpace(line)
			if hasAnyPrefix(line, "//", "/*", "*") {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// importSource finds the module string of an import line: after the last
// " from " when present, otherwise anywhere in the line.
func importSource(line string) (string, bool) {
	if i := strings.LastIndex(line, " from "); i >= 0 {
		line = line[i+len(" from "):]
	}
	return quoted(line)
}

// quoted returns the first complete string literal in text, trying single
// quotes, then double quotes, then backticks.
func quoted(text string) (string, bool) {
	for _, q := range []string{"'", `"`, "`"} {
		_, rest, ok := strings.Cut(text, q)
		if !ok {
			continue
		}
		if s, _, ok := strings.Cut(rest, q); ok {
			return s, true
		}
	}
	return "", false
}

// declaredName returns the third whitespace-separated field of line, the
// name position in "export <keyword> NAME".
func declaredName(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return ""
	}
	return fields[2]
}

func variableName(line string) string {
	name := strings.TrimRight(declaredName(line), ":=,;")
	if name == "" || !identStart([]rune(name)[0]) {
		return ""
	}
	return name
}

// identStart reports whether r may begin a JavaScript identifier.
func identStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func functionName(line string) string {
	name, _, _ := strings.Cut(declaredName(line), "(")
	return strings.TrimSpace(name)
}

func typeName(line string) string {
	return strings.TrimRightFunc(declaredName(line), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$'
	})
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Package extractor parses Python sources with tree-sitter and pulls out
// every literal regular-expression pattern passed to the re module.
package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// IgnoreSentinel suppresses reporting for a pattern when it appears anywhere
// on the literal's source line, typically as a trailing comment.
const IgnoreSentinel = "redos-linter: ignore"

// contextRadius is the number of source lines captured on each side of a
// pattern for display.
const contextRadius = 2

// patternCallees are the re module entry points that take a pattern as their
// first positional argument.
var patternCallees = map[string]bool{
	"re.compile":   true,
	"re.search":    true,
	"re.match":     true,
	"re.fullmatch": true,
	"re.split":     true,
	"re.findall":   true,
	"re.finditer":  true,
	"re.sub":       true,
	"re.subn":      true,
}

// Extractor parses Python files and extracts pattern occurrences. It is not
// safe for concurrent use; the underlying tree-sitter parser is stateful.
type Extractor struct {
	parser *sitter.Parser
}

// New creates an extractor with a Python grammar loaded.
func New() *Extractor {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	return &Extractor{parser: parser}
}

// Extract parses the file and returns every literal pattern occurrence in
// source order. Files whose parse tree contains errors yield a *SyntaxError.
func (e *Extractor) Extract(filePath string) ([]Occurrence, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	tree, err := e.parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return nil, &SyntaxError{Path: filePath}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &SyntaxError{Path: filePath}
	}

	lines := splitLines(source)

	var occurrences []Occurrence
	walk(root, func(n *sitter.Node) {
		if n.Type() != "call" {
			return
		}
		if occ, ok := occurrenceFromCall(n, source, filePath, lines); ok {
			occurrences = append(occurrences, occ)
		}
	})

	return occurrences, nil
}

// walk recursively traverses the syntax tree and applies the visitor to each
// node in document order.
func walk(node *sitter.Node, visitor func(*sitter.Node)) {
	visitor(node)

	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visitor)
	}
}

// occurrenceFromCall checks whether the call node is a recognized re module
// invocation with a literal string pattern and builds its occurrence.
func occurrenceFromCall(call *sitter.Node, source []byte, filePath string, lines []string) (Occurrence, bool) {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != "attribute" {
		return Occurrence{}, false
	}

	object := fn.ChildByFieldName("object")
	attribute := fn.ChildByFieldName("attribute")
	if object == nil || attribute == nil || object.Type() != "identifier" {
		return Occurrence{}, false
	}

	callee := nodeText(object, source) + "." + nodeText(attribute, source)
	if !patternCallees[callee] {
		return Occurrence{}, false
	}

	arg := firstPositionalArg(call)
	if arg == nil || arg.Type() != "string" {
		return Occurrence{}, false
	}

	pattern, ok := literalValue(arg, source)
	if !ok {
		return Occurrence{}, false
	}

	line := int(arg.StartPoint().Row) + 1
	column := int(arg.StartPoint().Column)

	return Occurrence{
		Pattern:      pattern,
		FilePath:     filePath,
		Line:         line,
		Column:       column,
		ContextLines: contextWindow(lines, line),
		Suppressed:   lineSuppressed(lines, line),
	}, true
}

// firstPositionalArg returns the first positional argument of a call, or nil
// when the call has none.
func firstPositionalArg(call *sitter.Node) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		switch child.Type() {
		case "comment":
			continue
		case "keyword_argument":
			// Positional arguments cannot follow keyword arguments.
			return nil
		}
		return child
	}

	return nil
}

// literalValue decodes a plain Python string literal. Formatted literals
// (f-strings) and bytes literals are not static patterns and report !ok.
func literalValue(str *sitter.Node, source []byte) (string, bool) {
	for i := 0; i < int(str.NamedChildCount()); i++ {
		if str.NamedChild(i).Type() == "interpolation" {
			return "", false
		}
	}

	text := nodeText(str, source)

	// Split the optional prefix letters from the opening quote.
	quoteIdx := strings.IndexAny(text, `'"`)
	if quoteIdx < 0 {
		return "", false
	}
	prefix := strings.ToLower(text[:quoteIdx])
	if strings.ContainsAny(prefix, "bf") {
		return "", false
	}

	body := text[quoteIdx:]
	var quote string
	for _, q := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(body, q) {
			quote = q
			break
		}
	}
	if len(body) < 2*len(quote) || !strings.HasSuffix(body, quote) {
		return "", false
	}
	content := body[len(quote) : len(body)-len(quote)]

	if strings.Contains(prefix, "r") {
		return content, true
	}
	return unescape(content), true
}

// nodeText returns the source text spanned by a node.
func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// contextWindow slices the file's lines around the 1-based target line,
// clamped to file bounds, marking the target line with a leading ">>> ".
func contextWindow(lines []string, target int) []string {
	start := target - contextRadius - 1
	if start < 0 {
		start = 0
	}
	end := target + contextRadius
	if end > len(lines) {
		end = len(lines)
	}

	window := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		prefix := "    "
		if i == target-1 {
			prefix = ">>> "
		}
		window = append(window, fmt.Sprintf("%s%3d: %s", prefix, i+1, lines[i]))
	}
	return window
}

// lineSuppressed reports whether the raw source line carries the ignore
// sentinel. The check is a case-sensitive substring match.
func lineSuppressed(lines []string, target int) bool {
	if target < 1 || target > len(lines) {
		return false
	}
	return strings.Contains(lines[target-1], IgnoreSentinel)
}

// splitLines splits file contents into display lines without a trailing
// empty entry for a final newline.
func splitLines(source []byte) []string {
	lines := strings.Split(string(source), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

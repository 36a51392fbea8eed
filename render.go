package jsonlit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Dialect selects the literal notation produced by Render.
type Dialect string

const (
	DialectJSON       Dialect = "json"       // Canonical pretty JSON
	DialectPython     Dialect = "python"     // Python literal
	DialectJavaScript Dialect = "javascript" // JavaScript literal
)

// dialectAliases maps accepted selector spellings to their dialect.
var dialectAliases = map[string]Dialect{
	"json":       DialectJSON,
	"structured": DialectJSON,
	"python":     DialectPython,
	"py":         DialectPython,
	"javascript": DialectJavaScript,
	"js":         DialectJavaScript,
}

// Dialects returns the canonical dialect selectors in display order.
func Dialects() []Dialect {
	return []Dialect{DialectJSON, DialectPython, DialectJavaScript}
}

// ErrUnknownDialect is matched by errors returned for unrecognized selectors.
var ErrUnknownDialect = errors.New("unknown dialect")

// UnknownDialectError reports a dialect selector that matches no known dialect.
type UnknownDialectError struct {
	Dialect string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q (want one of %s)", e.Dialect, dialectList())
}

// Is reports whether target is ErrUnknownDialect.
func (e *UnknownDialectError) Is(target error) bool {
	return target == ErrUnknownDialect
}

func dialectList() string {
	names := make([]string, 0, len(Dialects()))
	for _, d := range Dialects() {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}

// ParseDialect resolves a selector, including its short aliases, to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	if d, ok := dialectAliases[s]; ok {
		return d, nil
	}
	return "", &UnknownDialectError{Dialect: s}
}

// literalIndent is the nesting unit of the Python and JavaScript dialects.
const literalIndent = "    "

// canonicalIndent is the nesting unit of the canonical JSON dialect.
const canonicalIndent = "  "

// Render formats v in dialect d and re-indents every embedded line with indent.
// The first line is not prefixed; callers place it themselves.
func Render(v Value, d Dialect, indent string) (string, error) {
	d, err := ParseDialect(string(d))
	if err != nil {
		return "", err
	}

	var out string
	switch d {
	case DialectJSON:
		out = renderJSON(v)
	case DialectPython:
		out = renderPython(v)
	case DialectJavaScript:
		out = renderJavaScript(v)
	}
	return Reindent(out, indent), nil
}

// Reindent replaces every newline in s with a newline followed by prefix.
func Reindent(s, prefix string) string {
	if prefix == "" {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}

// renderJSON pretty-prints v in the conventional two-space JSON layout.
func renderJSON(v Value) string {
	switch v.kind {
	case KindSequence:
		if len(v.items) == 0 {
			return "[]"
		}
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = renderJSON(item)
		}
		return block("[", "]", parts, canonicalIndent)
	case KindMapping:
		if len(v.members) == 0 {
			return "{}"
		}
		parts := make([]string, len(v.members))
		for i, m := range v.members {
			parts[i] = quoteJSON(m.Key) + ": " + renderJSON(m.Value)
		}
		return block("{", "}", parts, canonicalIndent)
	default:
		return renderScalar(v)
	}
}

// renderPython formats v as a Python literal.
func renderPython(v Value) string {
	switch v.kind {
	case KindNull:
		return "None"
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindSequence:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = renderPython(item)
		}
		return block("[", "]", parts, literalIndent)
	case KindMapping:
		parts := make([]string, len(v.members))
		for i, m := range v.members {
			parts[i] = quoteJSON(m.Key) + ": " + renderPython(m.Value)
		}
		return block("{", "}", parts, literalIndent)
	default:
		return renderJSON(v)
	}
}

// jsStringReplacer escapes a JavaScript single-quoted string body.
// A newline becomes `\n'` and the quote is not reopened afterwards.
var jsStringReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n'`,
)

// renderJavaScript formats v as a JavaScript literal with unquoted keys.
func renderJavaScript(v Value) string {
	switch v.kind {
	case KindString:
		return "'" + jsStringReplacer.Replace(v.s) + "'"
	case KindSequence:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = renderJavaScript(item)
		}
		return block("[", "]", parts, literalIndent)
	case KindMapping:
		parts := make([]string, len(v.members))
		for i, m := range v.members {
			parts[i] = m.Key + ": " + renderJavaScript(m.Value)
		}
		return block("{", "}", parts, literalIndent)
	default:
		return renderJSON(v)
	}
}

// block wraps already rendered children between the open and end brackets,
// one child per line. The joined children are re-indented as a whole, so
// every nested line gains exactly one more unit than its parent.
func block(open, end string, parts []string, unit string) string {
	body := Reindent(strings.Join(parts, ",\n"), unit)
	return open + "\n" + unit + body + "\n" + end
}

// renderScalar formats a non-composite value as JSON.
func renderScalar(v Value) string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return v.s
	case KindString:
		return quoteJSON(v.s)
	default:
		return "null"
	}
}

// quoteJSON returns s as a JSON string literal without HTML escaping.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

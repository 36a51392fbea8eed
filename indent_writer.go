package jsonlit

import (
	"fmt"
	"strings"
)

// IndentWriter accumulates output lines, prefixing each with the current
// indent unit repeated level times.
type IndentWriter struct {
	sb    strings.Builder
	unit  string
	level int
}

// NewIndentWriter creates an IndentWriter using unit for each indent level.
func NewIndentWriter(unit string) *IndentWriter {
	return &IndentWriter{unit: unit}
}

// Indent increases the indent level by 1 and returns the writer for chaining.
func (iw *IndentWriter) Indent() *IndentWriter {
	iw.level++
	return iw
}

// Dedent decreases the indent level by 1 and returns the writer for chaining.
// The level cannot go below 0.
func (iw *IndentWriter) Dedent() *IndentWriter {
	if iw.level > 0 {
		iw.level--
	}
	return iw
}

func (iw *IndentWriter) prefix() string {
	return strings.Repeat(iw.unit, iw.level)
}

// Linef writes a formatted line at the current indent.
func (iw *IndentWriter) Linef(format string, args ...any) {
	iw.sb.WriteString(iw.prefix())
	fmt.Fprintf(&iw.sb, format, args...)
	iw.sb.WriteByte('\n')
}

// Block writes a possibly multi-line string at the current indent. Embedded
// lines are shifted with Reindent so the block keeps its own layout.
func (iw *IndentWriter) Block(s string) {
	p := iw.prefix()
	iw.sb.WriteString(p)
	iw.sb.WriteString(Reindent(s, p))
	iw.sb.WriteByte('\n')
}

// Blank writes an empty line with no prefix.
func (iw *IndentWriter) Blank() {
	iw.sb.WriteByte('\n')
}

// String returns everything written so far.
func (iw *IndentWriter) String() string {
	return iw.sb.String()
}

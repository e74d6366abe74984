// Package debug produces indented human readable dumps.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(indent)
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes quoted value, empty value is left empty.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Field writes value as is, placeholder is used when value is empty.
func (tw TreeWriter) Field(depth int, label, value, placeholder string) {
	if len(value) == 0 {
		value = placeholder
	}
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(value)
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}

// Package pdftest finds text in the uncompressed documents produced by the
// checklist renderer.
package pdftest

import (
	"bytes"
	"strings"
)

// escaper matches the string escaping fpdf applies to core-font text.
var escaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// Operand is text as it appears in a show-text operation, e.g. "(Tent)Tj".
// text must already be in the document's encoding.
func Operand(text string) []byte {
	return []byte("(" + escaper.Replace(text) + ")Tj")
}

// Shows reports whether doc draws text as one string.
func Shows(doc []byte, text string) bool {
	return bytes.Contains(doc, Operand(text))
}

// Index is the offset of the first show-text operation drawing text, or -1.
func Index(doc []byte, text string) int {
	return bytes.Index(doc, Operand(text))
}

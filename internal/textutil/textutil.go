// Package textutil holds the small text helpers shared by the scaffolder
// and the metadata resolver.
package textutil

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
)

// DecodeUTF8 decodes b as UTF-8 text. A leading byte order mark is dropped
// and invalid sequences are replaced with U+FFFD.
func DecodeUTF8(b []byte) string {
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}

// FoldEqual reports whether a and b are equal under full Unicode case folding.
func FoldEqual(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// Stem returns name without its final extension. Leading dots belong to the
// stem, so ".profile" has no extension.
func Stem(name string) string {
	ext := filepath.Ext(strings.TrimLeft(name, "."))
	return name[:len(name)-len(ext)]
}

// TrimOutput decodes process output and strips surrounding whitespace.
func TrimOutput(b []byte) string {
	return strings.TrimSpace(DecodeUTF8(b))
}

// Package textfold implements the case-insensitive matching used by note search.
package textfold

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the Unicode case-folded form of s.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Contains reports whether needle occurs in haystack, ignoring case.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// EscapeLike escapes SQL LIKE wildcards in s using '\' as the escape character,
// so the result matches literally inside a LIKE pattern.
func EscapeLike(s string) string {
	if !strings.ContainsAny(s, `\%_`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r == '\\' || r == '%' || r == '_' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LikePattern builds a LIKE pattern matching any string that contains the
// folded form of text.
func LikePattern(text string) string {
	return "%" + EscapeLike(Fold(text)) + "%"
}

package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// fold normalizes a string for comparison: combining marks (Latin accents,
// Hebrew niqqud) are stripped and letters are lower-cased. Hebrew has no
// case, so for Hebrew folding amounts to mark removal. Every comparison in
// this package goes through fold so the casing rules stay in one place.
func fold(s string) string {
	t := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(t))
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func hasHebrew(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hebrew, r) {
			return true
		}
	}
	return false
}

// tokenSet returns the folded word set of s.
func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(fold(s)) {
		set[tok] = struct{}{}
	}
	return set
}

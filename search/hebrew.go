package search

import "strings"

// suffixRule rewrites a token by stripping one suffix and appending another.
// minLen is the minimum token length in runes for the rule to be
// structurally valid.
type suffixRule struct {
	strip  string
	add    string
	minLen int
}

// Fixed inflection table: plural suffixes (masculine "ים", feminine "ות")
// and the feminine singular suffix "ה", each in both directions. The same
// table drives color-keyword expansion and category-phrase expansion.
var suffixRules = []suffixRule{
	{strip: "ים", minLen: 4},           // masc. plural -> base
	{strip: "ות", minLen: 4},           // fem. plural -> base
	{strip: "ות", add: "ה", minLen: 4}, // fem. plural -> fem. singular
	{strip: "ה", add: "ות", minLen: 3}, // fem. singular -> fem. plural
	{strip: "ה", minLen: 3},            // fem. singular -> base
	{add: "ים", minLen: 2},             // base -> masc. plural
	{add: "ות", minLen: 2},             // base -> fem. plural
	{add: "ה", minLen: 2},              // base -> fem. singular
}

// expandHebrew returns the set of plausible inflected forms of token. The
// result always contains token itself, never an empty string, and is a set:
// order carries no meaning. Tokens without Hebrew letters come back as a
// singleton. Multi-word input is expanded as one unit, so the rules act on
// its last word.
func expandHebrew(token string) map[string]struct{} {
	out := map[string]struct{}{token: {}}
	if !hasHebrew(token) {
		return out
	}
	length := len([]rune(token))
	for _, rule := range suffixRules {
		if length < rule.minLen {
			continue
		}
		form := token
		if rule.strip != "" {
			if !strings.HasSuffix(form, rule.strip) {
				continue
			}
			form = strings.TrimSuffix(form, rule.strip)
		}
		form += rule.add
		if form == "" {
			continue
		}
		out[form] = struct{}{}
	}
	return out
}

package search

import (
	"regexp"
	"strings"
)

var sizeTokenRe = regexp.MustCompile(`^\d{2,3}$`)

// Features is the structured view of one raw search query. The sets have
// hash-set semantics; membership is all that matters.
type Features struct {
	// Query is the trimmed raw query.
	Query string
	// SizeTokens holds the numeric size labels extracted from the query.
	SizeTokens map[string]struct{}
	// ColorKeywords mixes scripts on purpose: the original Hebrew color
	// token, its morphological variants, their English translations, and
	// folded English color words. Facet matching must be able to hit an
	// English color slug starting from a Hebrew query term.
	ColorKeywords map[string]struct{}
	// CategoryPhrase is the query minus size tokens and size stop-words.
	CategoryPhrase string
	// CategoryPhraseVariants is the phrase plus its Hebrew inflections, each
	// a candidate substring against the category-name fields.
	CategoryPhraseVariants map[string]struct{}
}

// Analyze derives Features from a raw query string. It never fails; an
// empty or whitespace-only query yields empty feature sets.
func Analyze(raw string) Features {
	f := Features{
		Query:                  strings.TrimSpace(raw),
		SizeTokens:             map[string]struct{}{},
		ColorKeywords:          map[string]struct{}{},
		CategoryPhraseVariants: map[string]struct{}{},
	}
	if f.Query == "" {
		return f
	}
	tokens := strings.Fields(f.Query)

	// The first 2-3 digit token is the size hint. Later numbers are treated
	// as noise; they still drop out of the category phrase below.
	for _, tok := range tokens {
		if sizeTokenRe.MatchString(tok) {
			f.SizeTokens[tok] = struct{}{}
			break
		}
	}

	for _, tok := range tokens {
		if len([]rune(tok)) <= 2 {
			continue
		}
		if en, ok := hebrewColors[tok]; ok {
			f.ColorKeywords[tok] = struct{}{}
			f.ColorKeywords[en] = struct{}{}
			for variant := range expandHebrew(tok) {
				f.ColorKeywords[variant] = struct{}{}
				if tr, ok := hebrewColors[variant]; ok {
					f.ColorKeywords[tr] = struct{}{}
				}
			}
			continue
		}
		if folded := fold(tok); isEnglishColor(folded) {
			f.ColorKeywords[folded] = struct{}{}
		}
	}

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if sizeTokenRe.MatchString(tok) {
			continue
		}
		if _, stop := sizeStopWords[tok]; stop {
			continue
		}
		if _, stop := sizeStopWords[fold(tok)]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	f.CategoryPhrase = strings.TrimSpace(strings.Join(kept, " "))

	if f.CategoryPhrase != "" {
		f.CategoryPhraseVariants[f.CategoryPhrase] = struct{}{}
		// The joined phrase is expanded as a unit, not word by word.
		for variant := range expandHebrew(f.CategoryPhrase) {
			if strings.TrimSpace(variant) == "" {
				continue
			}
			f.CategoryPhraseVariants[variant] = struct{}{}
		}
	}
	return f
}

func isEnglishColor(folded string) bool {
	_, ok := englishColors[folded]
	return ok
}

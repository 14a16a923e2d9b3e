package search

import (
	"strings"

	"github.com/noastyle/noabackend/models"
)

// candidate pairs a catalog document with its store-reported text relevance.
type candidate struct {
	doc       models.CatalogDocument
	textScore float64 // normalized 0-1, zero when the text query missed
	textMatch bool
}

// eligible is the base filter every signal is AND-ed with.
func eligible(doc models.CatalogDocument) bool {
	return doc.IsActive && !doc.IsDeleted
}

// isCandidate is the one predicate shared by the ranked page and the count
// pass: base filter AND at least one signal.
func isCandidate(c candidate, f Features) bool {
	if !eligible(c.doc) {
		return false
	}
	return c.textMatch ||
		matchesSizeFacet(c.doc, f) ||
		matchesColorFacet(c.doc, f) ||
		matchesCategoryPhrase(c.doc, f)
}

// matchesSizeFacet reports whether any variant has positive stock at one of
// the query's size labels. Variant activity is deliberately not checked
// here; a bare number in a query is a weak hint and the color facet already
// carries the active-variant rule.
func matchesSizeFacet(doc models.CatalogDocument, f Features) bool {
	if len(f.SizeTokens) == 0 {
		return false
	}
	for _, variant := range doc.ColorVariants {
		for size := range f.SizeTokens {
			if variant.StockBySize[size] > 0 {
				return true
			}
		}
	}
	return false
}

// matchesColorFacet reports whether any active variant's slug or display
// name equals one of the color keywords under fold.
func matchesColorFacet(doc models.CatalogDocument, f Features) bool {
	if len(f.ColorKeywords) == 0 {
		return false
	}
	for _, variant := range doc.ColorVariants {
		if !variant.Active() {
			continue
		}
		slug := fold(variant.ColorSlug)
		name := fold(variant.ColorName)
		for kw := range f.ColorKeywords {
			folded := fold(kw)
			if folded == slug || (name != "" && folded == name) {
				return true
			}
		}
	}
	return false
}

// matchesCategoryPhrase reports whether any phrase variant is a substring of
// one of the six category-name fields.
func matchesCategoryPhrase(doc models.CatalogDocument, f Features) bool {
	if len(f.CategoryPhraseVariants) == 0 {
		return false
	}
	for _, field := range categoryFields(doc) {
		if field == "" {
			continue
		}
		folded := fold(field)
		for variant := range f.CategoryPhraseVariants {
			if strings.Contains(folded, fold(variant)) {
				return true
			}
		}
	}
	return false
}

// matchesCategoryTerms replays the text query against a synthetic document
// holding only the category names, with the same OR-of-terms semantics the
// store's text primitive applies.
func matchesCategoryTerms(doc models.CatalogDocument, f Features) bool {
	words := tokenSet(strings.Join(categoryFields(doc), " "))
	if len(words) == 0 {
		return false
	}
	for _, term := range strings.Fields(fold(f.Query)) {
		if _, ok := words[term]; ok {
			return true
		}
	}
	return false
}

func categoryFields(doc models.CatalogDocument) []string {
	return []string{
		doc.CategoryEn, doc.SubCategoryEn, doc.SubSubCategoryEn,
		doc.CategoryHe, doc.SubCategoryHe, doc.SubSubCategoryHe,
	}
}

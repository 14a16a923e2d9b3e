package search

// signalRule is one additive ranking signal. hit returns 0 when the signal
// does not apply and a multiplier in (0, 1] when it does; the rule's
// contribution is weight * hit. Weights are data so the ordering between
// signals is visible in one place: an explicit category-name hit dominates,
// the store's text score is the primary continuous signal, and the facets
// add secondary boosts with color well above size.
type signalRule struct {
	name   string
	weight float64
	hit    func(c candidate, f Features) float64
}

var signalRules = []signalRule{
	{
		name:   "category_phrase",
		weight: 2000,
		hit: func(c candidate, f Features) float64 {
			return boolHit(matchesCategoryPhrase(c.doc, f))
		},
	},
	{
		name:   "text_relevance",
		weight: 1000,
		hit: func(c candidate, f Features) float64 {
			if !c.textMatch {
				return 0
			}
			return c.textScore
		},
	},
	{
		name:   "category_terms_in_text",
		weight: 300,
		hit: func(c candidate, f Features) float64 {
			return boolHit(matchesCategoryTerms(c.doc, f))
		},
	},
	{
		name:   "color_facet",
		weight: 500,
		hit: func(c candidate, f Features) float64 {
			return boolHit(matchesColorFacet(c.doc, f))
		},
	},
	{
		name:   "size_facet",
		weight: 20,
		hit: func(c candidate, f Features) float64 {
			return boolHit(matchesSizeFacet(c.doc, f))
		},
	},
}

func boolHit(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

// rankCandidate sums the contributions of every signal rule.
func rankCandidate(c candidate, f Features) float64 {
	var rank float64
	for _, rule := range signalRules {
		rank += rule.weight * rule.hit(c, f)
	}
	return rank
}

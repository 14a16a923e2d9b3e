// Package search implements the storefront's query-time product search
// pipeline: query analysis (size, color and category-phrase extraction with
// Hebrew morphological expansion), candidate selection over the catalog,
// additive multi-signal ranking, and consistent paginated retrieval.
//
// The package owns no data. It reads the catalog through the CatalogSource
// and TextIndex interfaces and computes everything fresh per request, so one
// Engine serves any number of concurrent searches.
package search

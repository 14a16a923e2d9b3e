package search

import "errors"

var (
	// ErrTextIndexRequired is returned when a text index is not provided.
	ErrTextIndexRequired = errors.New("text index required")

	// ErrCatalogRequired is returned when a catalog source is not provided.
	ErrCatalogRequired = errors.New("catalog source required")

	// ErrTextIndexMissing reports that the searchable-text projection has not
	// been built for the catalog. The engine fails closed on it: callers get
	// an empty page, not an error.
	ErrTextIndexMissing = errors.New("searchable-text index missing")
)

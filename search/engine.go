package search

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noastyle/noabackend/models"
)

const (
	// DefaultLimit is the page size used when the caller passes none.
	DefaultLimit = 24
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// TextIndex is the document store's full-text primitive: given a raw query
// it returns, keyed by document id, a relevance score normalized to 0-1 for
// every eligible document the query matched. A store whose searchable-text
// projection has not been built returns ErrTextIndexMissing.
type TextIndex interface {
	Search(ctx context.Context, query string) (map[string]float64, error)
}

// CatalogSource yields the searchable slice of the catalog.
type CatalogSource interface {
	// Eligible returns every active, non-deleted catalog document.
	Eligible(ctx context.Context) ([]models.CatalogDocument, error)
}

// Engine runs the query pipeline: analyze, select candidates, rank, page.
// It is stateless and read-only; one Engine serves concurrent requests.
type Engine struct {
	index   TextIndex
	catalog CatalogSource
	logger  *zap.Logger
}

// NewEngine creates a search engine over the given store primitives.
func NewEngine(index TextIndex, catalog CatalogSource, logger *zap.Logger) (*Engine, error) {
	if index == nil {
		return nil, ErrTextIndexRequired
	}
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{index: index, catalog: catalog, logger: logger}, nil
}

// Search returns one relevance-ordered page plus the total candidate count
// under the same predicate. An empty query returns an empty page without
// touching the store. A missing text index fails closed to an empty page.
// Any other store failure is returned as-is; no partial page is ever built.
func (e *Engine) Search(ctx context.Context, query string, page, limit int) (models.SearchResultPage, error) {
	start := time.Now()
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	f := Analyze(query)
	if f.Query == "" {
		return emptyPage("", limit), nil
	}

	candidates, err := e.selectCandidates(ctx, f)
	if err != nil {
		if errors.Is(err, ErrTextIndexMissing) {
			e.failClosed(f.Query)
			return emptyPage(f.Query, limit), nil
		}
		return models.SearchResultPage{}, err
	}

	ranked := make([]rankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, rankedCandidate{candidate: c, rank: rankCandidate(c, f)})
	}
	sortRanked(ranked)

	offset := (page - 1) * limit
	items := make([]models.CatalogDocument, 0, limit)
	for i := offset; i < len(ranked) && i < offset+limit; i++ {
		items = append(items, ranked[i].doc)
	}

	searchesTotal.Inc()
	searchDuration.Observe(time.Since(start).Seconds())
	e.logger.Debug("search served",
		zap.String("query", f.Query),
		zap.Int("page", page),
		zap.Int("limit", limit),
		zap.Int("total", len(ranked)),
		zap.Duration("took", time.Since(start)),
	)

	return models.SearchResultPage{
		Items: items,
		Total: int64(len(ranked)),
		Page:  page,
		Limit: limit,
		Query: f.Query,
	}, nil
}

// Count runs the candidate predicate without ranking and returns the
// cardinality of the full candidate set, independent of any page bounds.
func (e *Engine) Count(ctx context.Context, query string) (int64, error) {
	f := Analyze(query)
	if f.Query == "" {
		return 0, nil
	}
	candidates, err := e.selectCandidates(ctx, f)
	if err != nil {
		if errors.Is(err, ErrTextIndexMissing) {
			e.failClosed(f.Query)
			return 0, nil
		}
		return 0, err
	}
	return int64(len(candidates)), nil
}

// selectCandidates fetches the text scores and the eligible set concurrently
// (neither read depends on the other) and applies the candidate predicate.
func (e *Engine) selectCandidates(ctx context.Context, f Features) ([]candidate, error) {
	var (
		scores map[string]float64
		docs   []models.CatalogDocument
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scores, err = e.index.Search(gctx, f.Query)
		return err
	})
	g.Go(func() error {
		var err error
		docs, err = e.catalog.Eligible(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]candidate, 0, len(docs))
	for _, doc := range docs {
		score, matched := scores[doc.Id.Hex()]
		c := candidate{doc: doc, textScore: score, textMatch: matched}
		if isCandidate(c, f) {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

func (e *Engine) failClosed(query string) {
	searchesFailedClosed.Inc()
	e.logger.Warn("text index missing, failing closed to empty result",
		zap.String("query", query))
}

type rankedCandidate struct {
	candidate
	rank float64
}

// sortRanked orders by rank descending, then creation time descending, then
// id, so identical inputs over identical data always page identically.
func sortRanked(ranked []rankedCandidate) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].rank != ranked[j].rank {
			return ranked[i].rank > ranked[j].rank
		}
		if !ranked[i].doc.CreatedAt.Equal(ranked[j].doc.CreatedAt) {
			return ranked[i].doc.CreatedAt.After(ranked[j].doc.CreatedAt)
		}
		return ranked[i].doc.Id.Hex() > ranked[j].doc.Id.Hex()
	})
}

func emptyPage(query string, limit int) models.SearchResultPage {
	return models.SearchResultPage{
		Items: []models.CatalogDocument{},
		Total: 0,
		Page:  1,
		Limit: limit,
		Query: query,
	}
}

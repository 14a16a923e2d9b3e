package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/noastyle/noabackend/models"
)

type fakeIndex struct {
	calls  int
	scores map[string]float64
	err    error
}

func (f *fakeIndex) Search(_ context.Context, _ string) (map[string]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.scores == nil {
		return map[string]float64{}, nil
	}
	return f.scores, nil
}

type fakeCatalog struct {
	calls int
	docs  []models.CatalogDocument
	err   error
}

func (f *fakeCatalog) Eligible(_ context.Context) ([]models.CatalogDocument, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	// The real store only ever hands out active, non-deleted documents.
	out := make([]models.CatalogDocument, 0, len(f.docs))
	for _, d := range f.docs {
		if d.IsActive && !d.IsDeleted {
			out = append(out, d)
		}
	}
	return out, nil
}

func newTestEngine(t *testing.T, index *fakeIndex, catalog *fakeCatalog) *Engine {
	t.Helper()
	engine, err := NewEngine(index, catalog, zap.NewNop())
	require.NoError(t, err)
	return engine
}

func activeDoc(title string, created time.Time) models.CatalogDocument {
	return models.CatalogDocument{
		Id:        bson.NewObjectID(),
		TitleEn:   title,
		IsActive:  true,
		CreatedAt: created,
	}
}

func TestNewEngine(t *testing.T) {
	index := &fakeIndex{}
	catalog := &fakeCatalog{}

	t.Run("valid configuration", func(t *testing.T) {
		engine, err := NewEngine(index, catalog, zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("nil logger falls back to noop", func(t *testing.T) {
		engine, err := NewEngine(index, catalog, nil)
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewEngine(nil, catalog, nil)
		assert.Equal(t, ErrTextIndexRequired, err)
	})

	t.Run("nil catalog", func(t *testing.T) {
		_, err := NewEngine(index, nil, nil)
		assert.Equal(t, ErrCatalogRequired, err)
	})
}

func TestSearch_EmptyQueryTouchesNoStore(t *testing.T) {
	index := &fakeIndex{}
	catalog := &fakeCatalog{}
	engine := newTestEngine(t, index, catalog)

	for _, q := range []string{"", "   "} {
		page, err := engine.Search(context.Background(), q, 3, 10)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(0), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.Limit)
		assert.Equal(t, "", page.Query)
	}
	assert.Zero(t, index.calls)
	assert.Zero(t, catalog.calls)
}

func TestSearch_SizeOnlyQuery(t *testing.T) {
	now := time.Now().UTC()

	inStock := activeDoc("Leather Mule", now)
	inStock.ColorVariants = map[string]models.ColorVariant{
		"tan": {ColorSlug: "tan", StockBySize: map[string]int{"36": 2, "37": 0}},
	}
	outOfStock := activeDoc("Suede Loafer", now)
	outOfStock.ColorVariants = map[string]models.ColorVariant{
		"tan": {ColorSlug: "tan", StockBySize: map[string]int{"37": 5}},
	}

	engine := newTestEngine(t, &fakeIndex{}, &fakeCatalog{docs: []models.CatalogDocument{inStock, outOfStock}})

	page, err := engine.Search(context.Background(), "36", 1, 24)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, inStock.Id, page.Items[0].Id)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "36", page.Query)
}

func TestSearch_HebrewColorBridgesToEnglishSlug(t *testing.T) {
	doc := activeDoc("Classic Pump", time.Now().UTC())
	doc.ColorVariants = map[string]models.ColorVariant{
		"red": {ColorSlug: "red", StockBySize: map[string]int{"38": 1}},
	}

	engine := newTestEngine(t, &fakeIndex{}, &fakeCatalog{docs: []models.CatalogDocument{doc}})

	page, err := engine.Search(context.Background(), "אדום", 1, 24)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, doc.Id, page.Items[0].Id)
	assert.Equal(t, int64(1), page.Total)
}

func TestSearch_ExcludesInactiveAndDeleted(t *testing.T) {
	now := time.Now().UTC()

	inactive := activeDoc("Red Dress", now)
	inactive.IsActive = false
	deleted := activeDoc("Red Skirt", now)
	deleted.IsDeleted = true
	for i, d := range []*models.CatalogDocument{&inactive, &deleted} {
		d.ColorVariants = map[string]models.ColorVariant{
			"red": {ColorSlug: "red", StockBySize: map[string]int{"38": i + 1}},
		}
	}

	index := &fakeIndex{scores: map[string]float64{
		inactive.Id.Hex(): 1.0,
		deleted.Id.Hex():  1.0,
	}}
	engine := newTestEngine(t, index, &fakeCatalog{docs: []models.CatalogDocument{inactive, deleted}})

	page, err := engine.Search(context.Background(), "red 38", 1, 24)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)
}

func TestSearch_FacetRankingIsMonotone(t *testing.T) {
	now := time.Now().UTC()

	both := activeDoc("Strappy Heel", now)
	both.ColorVariants = map[string]models.ColorVariant{
		"red": {ColorSlug: "red", StockBySize: map[string]int{"36": 4}},
	}
	colorOnly := activeDoc("Ballet Flat", now)
	colorOnly.ColorVariants = map[string]models.ColorVariant{
		"red": {ColorSlug: "red", StockBySize: map[string]int{"36": 0}},
	}
	sizeOnly := activeDoc("Espadrille", now)
	sizeOnly.ColorVariants = map[string]models.ColorVariant{
		"ivory": {ColorSlug: "ivory", StockBySize: map[string]int{"36": 2}},
	}

	docs := []models.CatalogDocument{sizeOnly, colorOnly, both}
	engine := newTestEngine(t, &fakeIndex{}, &fakeCatalog{docs: docs})

	page, err := engine.Search(context.Background(), "אדום 36", 1, 24)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, both.Id, page.Items[0].Id, "both facets outrank single facets")
	assert.Equal(t, colorOnly.Id, page.Items[1].Id, "color outranks size")
	assert.Equal(t, sizeOnly.Id, page.Items[2].Id)
}

func TestSearch_CategoryPhraseOutranksText(t *testing.T) {
	now := time.Now().UTC()

	categoryHit := activeDoc("Summer Collection Item", now)
	categoryHit.SubCategoryEn = "Sandals"
	textHit := activeDoc("Sandals mentioned everywhere", now)

	index := &fakeIndex{scores: map[string]float64{textHit.Id.Hex(): 1.0}}
	engine := newTestEngine(t, index, &fakeCatalog{docs: []models.CatalogDocument{textHit, categoryHit}})

	page, err := engine.Search(context.Background(), "sandals", 1, 24)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, categoryHit.Id, page.Items[0].Id)
	assert.Equal(t, textHit.Id, page.Items[1].Id)
}

func TestSearch_TextScoreOrdersWithinTextMatches(t *testing.T) {
	now := time.Now().UTC()
	strong := activeDoc("Linen Shirt", now)
	weak := activeDoc("Shirt-adjacent accessory", now)

	index := &fakeIndex{scores: map[string]float64{
		strong.Id.Hex(): 1.0,
		weak.Id.Hex():   0.2,
	}}
	engine := newTestEngine(t, index, &fakeCatalog{docs: []models.CatalogDocument{weak, strong}})

	page, err := engine.Search(context.Background(), "linen shirt", 1, 24)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, strong.Id, page.Items[0].Id)
}

func TestSearch_TieBreakNewestFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	older := activeDoc("Older Red Tee", base)
	newer := activeDoc("Newer Red Tee", base.Add(48*time.Hour))
	for _, d := range []*models.CatalogDocument{&older, &newer} {
		d.ColorVariants = map[string]models.ColorVariant{
			"red": {ColorSlug: "red"},
		}
	}

	engine := newTestEngine(t, &fakeIndex{}, &fakeCatalog{docs: []models.CatalogDocument{older, newer}})

	first, err := engine.Search(context.Background(), "אדום", 1, 24)
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, newer.Id, first.Items[0].Id)
	assert.Equal(t, older.Id, first.Items[1].Id)
}

func TestSearch_Deterministic(t *testing.T) {
	now := time.Now().UTC()
	docs := make([]models.CatalogDocument, 0, 8)
	for i := 0; i < 8; i++ {
		d := activeDoc("Red Item", now.Add(time.Duration(i)*time.Minute))
		d.ColorVariants = map[string]models.ColorVariant{
			"red": {ColorSlug: "red"},
		}
		docs = append(docs, d)
	}
	engine := newTestEngine(t, &fakeIndex{}, &fakeCatalog{docs: docs})

	first, err := engine.Search(context.Background(), "red", 1, 24)
	require.NoError(t, err)
	second, err := engine.Search(context.Background(), "red", 1, 24)
	require.NoError(t, err)
	require.Equal(t, len(first.Items), len(second.Items))
	for i := range first.Items {
		assert.Equal(t, first.Items[i].Id, second.Items[i].Id, "position %d", i)
	}
}

func TestSearch_PaginationIsStable(t *testing.T) {
	now := time.Now().UTC()
	docs := make([]models.CatalogDocument, 0, 25)
	for i := 0; i < 25; i++ {
		d := activeDoc("Blue Item", now.Add(time.Duration(i)*time.Hour))
		d.ColorVariants = map[string]models.ColorVariant{
			"blue": {ColorSlug: "blue"},
		}
		docs = append(docs, d)
	}
	engine := newTestEngine(t, &fakeIndex{}, &fakeCatalog{docs: docs})
	ctx := context.Background()

	page1, err := engine.Search(ctx, "blue", 1, 10)
	require.NoError(t, err)
	page2, err := engine.Search(ctx, "blue", 2, 10)
	require.NoError(t, err)
	wide, err := engine.Search(ctx, "blue", 1, 20)
	require.NoError(t, err)

	assert.Equal(t, int64(25), page1.Total)
	assert.LessOrEqual(t, len(page1.Items), int(page1.Total))

	joined := append(append([]models.CatalogDocument{}, page1.Items...), page2.Items...)
	require.Equal(t, len(wide.Items), len(joined))
	for i := range wide.Items {
		assert.Equal(t, wide.Items[i].Id, joined[i].Id, "position %d", i)
	}
}

func TestSearch_CoercesPageAndLimit(t *testing.T) {
	engine := newTestEngine(t, &fakeIndex{}, &fakeCatalog{})

	page, err := engine.Search(context.Background(), "anything", -2, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultLimit, page.Limit)

	page, err = engine.Search(context.Background(), "anything", 1, 100000)
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, page.Limit)
}

func TestSearch_FailsClosedWhenIndexMissing(t *testing.T) {
	engine := newTestEngine(t,
		&fakeIndex{err: ErrTextIndexMissing},
		&fakeCatalog{docs: []models.CatalogDocument{activeDoc("Anything", time.Now().UTC())}},
	)

	page, err := engine.Search(context.Background(), "sandals", 1, 24)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)

	total, err := engine.Count(context.Background(), "sandals")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestSearch_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	engine := newTestEngine(t, &fakeIndex{err: boom}, &fakeCatalog{})

	_, err := engine.Search(context.Background(), "sandals", 1, 24)
	assert.ErrorIs(t, err, boom)

	_, err = engine.Count(context.Background(), "sandals")
	assert.ErrorIs(t, err, boom)
}

func TestCount_MatchesSearchTotal(t *testing.T) {
	now := time.Now().UTC()
	docs := make([]models.CatalogDocument, 0, 5)
	for i := 0; i < 5; i++ {
		d := activeDoc("Green Item", now.Add(time.Duration(i)*time.Minute))
		d.ColorVariants = map[string]models.ColorVariant{
			"green": {ColorSlug: "green"},
		}
		docs = append(docs, d)
	}
	engine := newTestEngine(t, &fakeIndex{}, &fakeCatalog{docs: docs})
	ctx := context.Background()

	page, err := engine.Search(ctx, "green", 1, 2)
	require.NoError(t, err)
	total, err := engine.Count(ctx, "green")
	require.NoError(t, err)

	assert.Equal(t, page.Total, total)
	assert.Len(t, page.Items, 2)

	emptyTotal, err := engine.Count(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, int64(0), emptyTotal)
}

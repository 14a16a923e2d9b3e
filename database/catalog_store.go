package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/noastyle/noabackend/models"
	"github.com/noastyle/noabackend/search"
)

// searchableFields make up the compound text index behind $text queries.
// Together they are the searchable-text projection of one catalog document.
var searchableFields = []string{
	"titleEn", "titleHe",
	"descriptionEn", "descriptionHe",
	"sku", "brand",
	"materialEn", "materialHe",
	"careEn", "careHe",
	"categoryEn", "subCategoryEn", "subSubCategoryEn",
	"categoryHe", "subCategoryHe", "subSubCategoryHe",
	"searchKeywords",
}

const textIndexName = "catalog_text"

// CatalogStore reads the catalog collection for the search engine. It
// implements search.TextIndex and search.CatalogSource and never writes a
// catalog document.
type CatalogStore struct {
	col *mongo.Collection
}

func NewCatalogStore(col *mongo.Collection) *CatalogStore {
	return &CatalogStore{col: col}
}

type textHit struct {
	Id    bson.ObjectID `bson:"_id"`
	Score float64       `bson:"score"`
}

// Search evaluates query against the text index over eligible documents.
// Mongo's textScore is unbounded, so scores are normalized by the best hit
// to the 0-1 range the engine's weights assume.
func (s *CatalogStore) Search(ctx context.Context, query string) (map[string]float64, error) {
	filter := bson.M{
		"isActive":  true,
		"isDeleted": false,
		"$text":     bson.M{"$search": query},
	}
	opts := options.Find().SetProjection(bson.M{
		"score": bson.M{"$meta": "textScore"},
	})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, textSearchError(err)
	}
	defer cursor.Close(ctx)

	scores := make(map[string]float64)
	var best float64
	for cursor.Next(ctx) {
		var hit textHit
		if err := cursor.Decode(&hit); err != nil {
			return nil, fmt.Errorf("decode text hit: %w", err)
		}
		scores[hit.Id.Hex()] = hit.Score
		if hit.Score > best {
			best = hit.Score
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, textSearchError(err)
	}
	if best > 0 {
		for id, score := range scores {
			scores[id] = score / best
		}
	}
	return scores, nil
}

// Eligible returns every active, non-deleted catalog document. The catalog
// is a single retailer's shard, thousands of documents at most.
func (s *CatalogStore) Eligible(ctx context.Context) ([]models.CatalogDocument, error) {
	cursor, err := s.col.Find(ctx, bson.M{"isActive": true, "isDeleted": false})
	if err != nil {
		return nil, fmt.Errorf("fetch eligible documents: %w", err)
	}
	defer cursor.Close(ctx)

	docs := make([]models.CatalogDocument, 0)
	for cursor.Next(ctx) {
		var doc models.CatalogDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode catalog document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("fetch eligible documents: %w", err)
	}
	return docs, nil
}

// EnsureTextIndex builds the compound text index behind Search. Safe to call
// repeatedly; an identical definition is a server-side no-op.
func (s *CatalogStore) EnsureTextIndex(ctx context.Context) error {
	keys := bson.D{}
	for _, field := range searchableFields {
		keys = append(keys, bson.E{Key: field, Value: "text"})
	}
	model := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(textIndexName),
	}
	if _, err := s.col.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("create text index: %w", err)
	}
	return nil
}

// textSearchError maps the server error $text raises without a text index
// (code 27, IndexNotFound) to the sentinel the engine fails closed on.
func textSearchError(err error) error {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 27 {
		return search.ErrTextIndexMissing
	}
	if strings.Contains(err.Error(), "text index required") {
		return search.ErrTextIndexMissing
	}
	return fmt.Errorf("text search: %w", err)
}

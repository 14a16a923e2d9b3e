package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CatalogDocument is the searchable projection of one product. It is written
// by the ingestion pipeline whenever the underlying product changes (stock,
// flags included); the search engine only ever reads it.
type CatalogDocument struct {
	Id            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	SKU           string        `bson:"sku" json:"sku"`
	TitleEn       string        `bson:"titleEn" json:"titleEn"`
	TitleHe       string        `bson:"titleHe" json:"titleHe"`
	DescriptionEn string        `bson:"descriptionEn,omitempty" json:"descriptionEn,omitempty"`
	DescriptionHe string        `bson:"descriptionHe,omitempty" json:"descriptionHe,omitempty"`
	Brand         string        `bson:"brand,omitempty" json:"brand,omitempty"`
	Price         float64       `bson:"price" json:"price"`
	SalePrice     *float64      `bson:"salePrice,omitempty" json:"salePrice,omitempty"`
	Currency      string        `bson:"currency" json:"currency"`

	// Category hierarchy, up to three levels, as bilingual names plus the
	// opaque ids assigned by the catalog service.
	CategoryEn       string `bson:"categoryEn,omitempty" json:"categoryEn,omitempty"`
	SubCategoryEn    string `bson:"subCategoryEn,omitempty" json:"subCategoryEn,omitempty"`
	SubSubCategoryEn string `bson:"subSubCategoryEn,omitempty" json:"subSubCategoryEn,omitempty"`
	CategoryHe       string `bson:"categoryHe,omitempty" json:"categoryHe,omitempty"`
	SubCategoryHe    string `bson:"subCategoryHe,omitempty" json:"subCategoryHe,omitempty"`
	SubSubCategoryHe string `bson:"subSubCategoryHe,omitempty" json:"subSubCategoryHe,omitempty"`
	CategoryId       string `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	SubCategoryId    string `bson:"subCategoryId,omitempty" json:"subCategoryId,omitempty"`
	SubSubCategoryId string `bson:"subSubCategoryId,omitempty" json:"subSubCategoryId,omitempty"`

	MaterialEn string `bson:"materialEn,omitempty" json:"materialEn,omitempty"`
	MaterialHe string `bson:"materialHe,omitempty" json:"materialHe,omitempty"`
	CareEn     string `bson:"careEn,omitempty" json:"careEn,omitempty"`
	CareHe     string `bson:"careHe,omitempty" json:"careHe,omitempty"`
	SeoEn      string `bson:"seoEn,omitempty" json:"seoEn,omitempty"`
	SeoHe      string `bson:"seoHe,omitempty" json:"seoHe,omitempty"`

	SearchKeywords []string `bson:"searchKeywords,omitempty" json:"searchKeywords,omitempty"`

	IsActive  bool      `bson:"isActive" json:"isActive"`
	IsDeleted bool      `bson:"isDeleted" json:"isDeleted"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`

	// ColorVariants is keyed by color slug.
	ColorVariants map[string]ColorVariant `bson:"colorVariants,omitempty" json:"colorVariants,omitempty"`
}

// ColorVariant is one color of a product with its per-size stock.
// A nil IsActive means the variant is active.
type ColorVariant struct {
	ColorSlug   string         `bson:"colorSlug" json:"colorSlug"`
	ColorName   string         `bson:"colorName,omitempty" json:"colorName,omitempty"`
	IsActive    *bool          `bson:"isActive,omitempty" json:"isActive,omitempty"`
	StockBySize map[string]int `bson:"stockBySize,omitempty" json:"stockBySize,omitempty"`
}

// Active reports whether the variant is sellable.
func (v ColorVariant) Active() bool {
	return v.IsActive == nil || *v.IsActive
}

// SearchResultPage is one relevance-ordered page of search results together
// with the total candidate count under the same filter.
type SearchResultPage struct {
	Items []CatalogDocument `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Query string            `json:"query"`
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/noastyle/noabackend/database"
	"github.com/noastyle/noabackend/models"
	"github.com/noastyle/noabackend/utils"
)

// GetProducts is the plain catalog browse: no relevance, just filters and a
// stable sort. Search lives in the search engine.
func GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		category := strings.TrimSpace(c.Query("category"))
		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), 20)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 20
		}
		if limit > 100 {
			limit = 100
		}
		skip := int64((page - 1) * limit)

		sortParam := strings.TrimSpace(c.Query("sort"))
		sortDoc := bson.D{{Key: "createdAt", Value: -1}}
		switch sortParam {
		case "price_asc":
			sortDoc = bson.D{{Key: "price", Value: 1}}
		case "price_desc":
			sortDoc = bson.D{{Key: "price", Value: -1}}
		case "oldest":
			sortDoc = bson.D{{Key: "createdAt", Value: 1}}
		}

		catalogCol := database.OpenCollection("catalog_documents")

		filter := bson.M{
			"isActive":  true,
			"isDeleted": false,
		}
		if category != "" {
			// Category param may arrive in either language.
			filter["$or"] = bson.A{
				bson.M{"categoryEn": bson.M{"$regex": "^" + category + "$", "$options": "i"}},
				bson.M{"categoryHe": category},
			}
		}
		if b, err := utils.ParseBoolQuery(c.Query("onSale")); err == nil && b != nil {
			filter["salePrice"] = bson.M{"$exists": *b}
		}

		findOpts := options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(sortDoc)

		cursor, err := catalogCol.Find(ctx, filter, findOpts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.CatalogDocument, 0)
		for cursor.Next(ctx) {
			var p models.CatalogDocument
			if err := cursor.Decode(&p); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			products = append(products, p)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Total count for pagination UI
		total, err := catalogCol.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":    products,
			"page":     page,
			"limit":    limit,
			"total":    total,
			"category": category,
			"sort":     sortParam,
		})
	}
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noastyle/noabackend/database"
	"github.com/noastyle/noabackend/search"
	"github.com/noastyle/noabackend/utils"
)

// SearchProducts serves GET /search?q=&page=&limit=. Page/limit coercion to
// safe defaults happens inside the engine; bad input never errors.
func SearchProducts(engine *search.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		query := c.Query("q")
		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), search.DefaultLimit)

		result, err := engine.Search(ctx, query, page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// CountSearchProducts serves GET /search/count?q= with the cardinality of
// the full candidate set under the same predicate /search pages over.
func CountSearchProducts(engine *search.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		query := strings.TrimSpace(c.Query("q"))
		total, err := engine.Count(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total": total,
			"query": query,
		})
	}
}

// ReindexCatalog rebuilds the text index behind search. Admin only.
func ReindexCatalog(store *database.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.EnsureTextIndex(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

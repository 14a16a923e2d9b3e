package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/noastyle/noabackend/controllers"
	"github.com/noastyle/noabackend/database"
	"github.com/noastyle/noabackend/middleware"
	"github.com/noastyle/noabackend/search"
	"github.com/noastyle/noabackend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	usersCol := database.OpenCollection("users")
	if err := utils.SeedAdminUser(ctx, usersCol); err != nil {
		logger.Fatal("seed admin user", zap.Error(err))
	}

	catalogCol := database.OpenCollection("catalog_documents")
	store := database.NewCatalogStore(catalogCol)
	// The ingestion pipeline owns the documents; the service only makes sure
	// the text index behind $text exists. Searches fail closed until it does.
	if err := store.EnsureTextIndex(ctx); err != nil {
		logger.Warn("text index bootstrap failed, search will fail closed", zap.Error(err))
	}

	engine, err := search.NewEngine(store, store, logger)
	if err != nil {
		logger.Fatal("build search engine", zap.Error(err))
	}

	r := gin.New()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	logger.Info("cors configured", zap.Int("origins", len(allowedOrigins)))
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/search", controllers.SearchProducts(engine))
	r.GET("/search/count", controllers.CountSearchProducts(engine))
	r.GET("/products", controllers.GetProducts())

	r.POST("/auth/login", controllers.Login())
	r.POST("/auth/refresh", controllers.Refresh())
	r.POST("/auth/logout", controllers.Logout())

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		admin.POST("/search/reindex", controllers.ReindexCatalog(store))
	}

	// Start server on port 8080 (default)
	r.Run()
}

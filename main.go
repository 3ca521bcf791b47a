// File: reifenmarkt/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reifenmarkt/config"
	"reifenmarkt/cron"
	"reifenmarkt/database"
	inventoryRepoPkg "reifenmarkt/database/repository/inventory"
	workshopRepoPkg "reifenmarkt/database/repository/workshop"
	"reifenmarkt/handlers"
	"reifenmarkt/middleware"
	"reifenmarkt/routes"
	"reifenmarkt/services/inventory"
	"reifenmarkt/services/search"
	"reifenmarkt/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitGeoCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	workshopRepo := workshopRepoPkg.NewMongoWorkshopRepo()
	inventoryRepo := inventoryRepoPkg.NewMongoInventoryRepo()

	// services.
	matcher := inventory.NewMatcher(inventoryRepo, workshopRepo)
	ratingStore := search.NewRatingStore(utils.GetCacheClient())
	searchService := search.NewSearchService(workshopRepo, matcher, ratingStore, utils.GetCacheClient())

	searchHandler := &handlers.SearchHandler{
		SearchSvc: searchService,
		Sessions:  utils.GetCacheClient(),
		Logger:    logger,
	}
	workshopHandler := &handlers.WorkshopHandler{
		SearchSvc: searchService,
		Logger:    logger,
	}

	handlerBundle := &routes.HandlerBundle{
		SearchHandler:   searchHandler,
		WorkshopHandler: workshopHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Background rating aggregation and health monitoring.
	cron.InitRatingWorker(workshopRepo, ratingStore)
	cron.EnqueueInitialRefresh()
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetGeoCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

package main

import (
	"context"
	"net/http"

	"location-api/internal/client"
	"location-api/internal/config"
	"location-api/internal/handler"
	"location-api/internal/metrics"
	"location-api/internal/projection"
	"location-api/internal/repository"
	"location-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)
	if err := repo.Bootstrap(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("cannot bootstrap schema")
	}

	addressClient := client.NewAddressClient(config.AddressSearchURL, config.AddressSearchKey)
	geocodingClient := client.NewGeocodingClient(config.GeocodingURL, config.GeocodingAppKey)

	searchService := service.NewSearchService(addressClient)
	resolveService := service.NewResolveService(repo, geocodingClient, projection.ToGrid)

	searchHandler := handler.NewSearchHandler(searchService)
	resolveHandler := handler.NewResolveHandler(resolveService)

	r := gin.Default()
	r.Use(metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/locations/search", searchHandler.Search)
	r.POST("/locations/resolve", resolveHandler.Resolve)

	r.Run(config.ServerAddress)
}

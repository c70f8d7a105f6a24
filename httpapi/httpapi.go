package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/distfind/distmat/config"
	"github.com/distfind/distmat/datastore"
	"github.com/distfind/distmat/matcache"
)

// ---------------------------

func pongHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong from distmat",
	})
}

// ---------------------------

func SetupRouter(cfg config.ConfigMap, datasets *datastore.DataStore, cache *matcache.Cache) *gin.Engine {
	router := gin.New()
	router.Use(ZerologLogger(), gin.Recovery())
	v1 := router.Group("/v1")
	v1.GET("/ping", pongHandler)
	// ---------------------------
	// https://stackoverflow.blog/2020/03/02/best-practices-for-rest-api-design/
	handlers := NewDistMatHandlers(cfg, datasets, cache)
	v1.POST("/datasets", handlers.CreateDataset)
	v1.GET("/datasets", handlers.ListDatasets)
	dsRoutes := v1.Group("/datasets/:datasetId", handlers.DatasetURIMiddleware())
	dsRoutes.GET("", handlers.GetDataset)
	dsRoutes.DELETE("", handlers.DeleteDataset)
	dsRoutes.POST("/distances", handlers.ComputeDistances)
	return router
}

func RunHTTPServer(cfg config.ConfigMap, datasets *datastore.DataStore, cache *matcache.Cache) *http.Server {
	// ---------------------------
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	// ---------------------------
	server := &http.Server{
		Addr:    cfg.HttpHost + ":" + strconv.Itoa(cfg.HttpPort),
		Handler: SetupRouter(cfg, datasets, cache),
	}
	go func() {
		log.Info().Str("httpAddr", server.Addr).Msg("HTTPAPI.Serve")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start http server")
		}
	}()
	return server
}

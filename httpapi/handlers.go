package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/distfind/distmat/config"
	"github.com/distfind/distmat/datastore"
	"github.com/distfind/distmat/distance"
	"github.com/distfind/distmat/matcache"
	"github.com/distfind/distmat/models"
)

// ---------------------------

type DistMatHandlers struct {
	cfg      config.ConfigMap
	datasets *datastore.DataStore
	cache    *matcache.Cache
}

func NewDistMatHandlers(cfg config.ConfigMap, datasets *datastore.DataStore, cache *matcache.Cache) *DistMatHandlers {
	return &DistMatHandlers{cfg: cfg, datasets: datasets, cache: cache}
}

// ---------------------------

type CreateDatasetRequest struct {
	Name string      `json:"name" binding:"omitempty,max=64"`
	Rows [][]float32 `json:"rows" binding:"required"`
}

type CreateDatasetResponse struct {
	Dataset models.DatasetInfo `json:"dataset"`
}

func (dmh *DistMatHandlers) CreateDataset(c *gin.Context) {
	var req CreateDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// ---------------------------
	dataset := models.Dataset{Rows: req.Rows}
	if err := dataset.Validate(); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// ---------------------------
	info, err := dmh.datasets.Insert(req.Name, dataset)
	if err != nil {
		c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		log.Error().Err(err).Msg("CreateDataset failed")
		return
	}
	log.Debug().Interface("dataset", info).Msg("CreateDataset")
	c.JSON(http.StatusOK, CreateDatasetResponse{Dataset: info})
}

// ---------------------------

type ListDatasetsResponse struct {
	Datasets []models.DatasetInfo `json:"datasets"`
}

func (dmh *DistMatHandlers) ListDatasets(c *gin.Context) {
	infos, err := dmh.datasets.List()
	if err != nil {
		c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		log.Error().Err(err).Msg("ListDatasets failed")
		return
	}
	c.JSON(http.StatusOK, ListDatasetsResponse{Datasets: infos})
}

// ---------------------------

type GetDatasetUri struct {
	DatasetId string `uri:"datasetId" binding:"required,uuid"`
}

func (dmh *DistMatHandlers) DatasetURIMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri GetDatasetUri
		if err := c.ShouldBindUri(&uri); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		info, err := dmh.datasets.GetInfo(uri.DatasetId)
		if errors.Is(err, datastore.ErrNotFound) {
			errMsg := fmt.Sprintf("dataset %s not found", uri.DatasetId)
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": errMsg})
			return
		}
		if err != nil {
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Set("datasetInfo", info)
		c.Next()
	}
}

// ---------------------------

func (dmh *DistMatHandlers) GetDataset(c *gin.Context) {
	info := c.MustGet("datasetInfo").(models.DatasetInfo)
	c.JSON(http.StatusOK, gin.H{"dataset": info})
}

func (dmh *DistMatHandlers) DeleteDataset(c *gin.Context) {
	info := c.MustGet("datasetInfo").(models.DatasetInfo)
	if err := dmh.datasets.Delete(info.Id); err != nil {
		c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		log.Error().Err(err).Str("id", info.Id).Msg("DeleteDataset failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "dataset deleted"})
}

// ---------------------------

type ComputeDistancesRequest struct {
	Metric string `json:"metric" binding:"omitempty,oneof=euclidean sqeuclidean dot cosine"`
	Method string `json:"method" binding:"omitempty,oneof=naive rows gram"`
}

type ComputeDistancesResponse struct {
	Id        string      `json:"id"`
	Metric    string      `json:"metric"`
	Method    string      `json:"method"`
	NumRows   int         `json:"numRows"`
	Elapsed   int64       `json:"elapsedMicros"`
	Cached    bool        `json:"cached"`
	Distances [][]float32 `json:"distances"`
}

func (dmh *DistMatHandlers) ComputeDistances(c *gin.Context) {
	info := c.MustGet("datasetInfo").(models.DatasetInfo)
	// ---------------------------
	// An empty body means all defaults.
	var req ComputeDistancesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Metric == "" {
		req.Metric = models.DistanceEuclidean
	}
	if req.Method == "" {
		req.Method = dmh.cfg.DefaultMethod
	}
	// ---------------------------
	// The cache is keyed on content hash, so identical rows uploaded under
	// different ids still share results.
	startTime := time.Now()
	matrix, cached := dmh.cache.Get(info.Hash, req.Metric, req.Method)
	if !cached {
		dataset, err := dmh.datasets.GetRows(info.Id)
		if err != nil {
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			log.Error().Err(err).Str("id", info.Id).Msg("ComputeDistances failed to load rows")
			return
		}
		matrix, err = distance.Pairwise(dataset.Rows, req.Metric, req.Method, dmh.cfg.NumWorkers)
		if errors.Is(err, models.ErrInvalidDataset) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			log.Error().Err(err).Str("id", info.Id).Msg("ComputeDistances failed")
			return
		}
		if err := dmh.cache.Put(info.Hash, req.Metric, req.Method, matrix); err != nil {
			// A failed cache write is not fatal, the matrix is already computed.
			log.Warn().Err(err).Str("id", info.Id).Msg("matrix cache write failed")
		}
	}
	elapsed := time.Since(startTime)
	log.Debug().Str("id", info.Id).Str("metric", req.Metric).Str("method", req.Method).
		Bool("cached", cached).Dur("elapsed", elapsed).Msg("ComputeDistances")
	// ---------------------------
	c.JSON(http.StatusOK, ComputeDistancesResponse{
		Id:        info.Id,
		Metric:    req.Metric,
		Method:    req.Method,
		NumRows:   info.NumRows,
		Elapsed:   elapsed.Microseconds(),
		Cached:    cached,
		Distances: matrix,
	})
}

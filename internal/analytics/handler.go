package analytics

import (
	"errors"
	"net/http"

	httperr "github.com/eventhawk-lab/eventhawk/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the analytics API under /api/events/analytics.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/api/events/analytics")
	grp.GET("/line-data", s.HandleLineData)
	grp.GET("/bar-features", s.HandleBarFeatures)
	grp.GET("/bar-data", s.HandleBarData)
	grp.POST("/cache/clear", s.HandleCacheClear)
	grp.GET("/cache/status", s.HandleCacheStatus)
}

// HandleLineData handles GET /api/events/analytics/line-data.
func (s *Service) HandleLineData(c *gin.Context) {
	data, err := s.LineData(c.Request.Context(), c.Query("query"))
	if err != nil {
		writeError(c, "Failed to fetch line data", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// HandleBarFeatures handles GET /api/events/analytics/bar-features.
func (s *Service) HandleBarFeatures(c *gin.Context) {
	features, err := s.AvailableFeatures(c.Request.Context())
	if err != nil {
		writeError(c, "Failed to fetch bar features", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"features": features})
}

// HandleBarData handles GET /api/events/analytics/bar-data.
// Query parameters: feature (required), start_date, end_date, bin_size.
func (s *Service) HandleBarData(c *gin.Context) {
	var query struct {
		Feature   string `form:"feature" binding:"required"`
		StartDate string `form:"start_date"`
		EndDate   string `form:"end_date"`
		BinSize   string `form:"bin_size,default=1D"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidArgumentError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	data, err := s.BarData(c.Request.Context(), BarQuery{
		Feature:   query.Feature,
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		BinSize:   query.BinSize,
	})
	if err != nil {
		writeError(c, "Failed to fetch bar data", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     data,
		"feature":  query.Feature,
		"bin_size": query.BinSize,
	})
}

// HandleCacheClear handles POST /api/events/analytics/cache/clear.
func (s *Service) HandleCacheClear(c *gin.Context) {
	s.ClearCache()
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared successfully"})
}

// HandleCacheStatus handles GET /api/events/analytics/cache/status.
func (s *Service) HandleCacheStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.CacheStatus())
}

// writeError maps engine errors onto HTTP status codes and the shared error
// response shape.
func writeError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidArgumentError,
			Message:   message,
			Details:   err.Error(),
		})
	case errors.Is(err, ErrFeatureNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpNotFoundError,
			Message:   message,
			Details:   err.Error(),
		})
	case errors.Is(err, ErrSourceUnavailable):
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpSourceUnavailableError,
			Message:   message,
			Details:   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   message,
			Details:   err.Error(),
		})
	}
}

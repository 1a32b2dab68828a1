package events

import (
	"errors"
	"net/http"
	"strconv"

	v1 "github.com/eventhawk-lab/eventhawk/internal/api/v1"
	httperr "github.com/eventhawk-lab/eventhawk/internal/core/errors"
	"github.com/eventhawk-lab/eventhawk/internal/events/storage"
	"github.com/gin-gonic/gin"
)

// ListResponse is the paginated event listing body.
type ListResponse struct {
	Events []*v1.Event `json:"events"`
	Total  int64       `json:"total"`
}

// RegisterRoutes registers the event CRUD API under /api/events.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/api/events")
	grp.POST("", s.HandleCreate)
	grp.GET("", s.HandleList)
	grp.GET("/:id", s.HandleGet)
	grp.PUT("/:id", s.HandleUpdate)
	grp.DELETE("/:id", s.HandleDelete)
	grp.GET("/status/:status", s.HandleListByStatus)
	grp.GET("/tag/:tag", s.HandleListByTag)
	grp.GET("/stats/counts", s.HandleStatusCounts)
}

// HandleCreate handles POST /api/events.
func (s *Service) HandleCreate(c *gin.Context) {
	var event v1.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidArgumentError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}

	if err := s.CreateEvent(c.Request.Context(), &event); err != nil {
		writeStoreError(c, "Failed to create event", err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// HandleList handles GET /api/events with offset/limit pagination and an
// optional free-text search term q.
func (s *Service) HandleList(c *gin.Context) {
	var query struct {
		Offset int    `form:"offset,default=0" binding:"omitempty,min=0"`
		Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
		Search string `form:"q"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidArgumentError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	events, total, err := s.ListEvents(c.Request.Context(), query.Offset, query.Limit, query.Search)
	if err != nil {
		writeStoreError(c, "Failed to list events", err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Events: listOrEmpty(events), Total: total})
}

// HandleGet handles GET /api/events/:id.
func (s *Service) HandleGet(c *gin.Context) {
	id, ok := bindEventID(c)
	if !ok {
		return
	}

	event, err := s.GetEvent(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, "Failed to get event", err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// HandleUpdate handles PUT /api/events/:id.
func (s *Service) HandleUpdate(c *gin.Context) {
	id, ok := bindEventID(c)
	if !ok {
		return
	}

	var update EventUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidArgumentError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}

	event, err := s.UpdateEvent(c.Request.Context(), id, update)
	if err != nil {
		writeStoreError(c, "Failed to update event", err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// HandleDelete handles DELETE /api/events/:id.
func (s *Service) HandleDelete(c *gin.Context) {
	id, ok := bindEventID(c)
	if !ok {
		return
	}

	if err := s.DeleteEvent(c.Request.Context(), id); err != nil {
		writeStoreError(c, "Failed to delete event", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleListByStatus handles GET /api/events/status/:status.
func (s *Service) HandleListByStatus(c *gin.Context) {
	events, err := s.EventsByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		writeStoreError(c, "Failed to list events by status", err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Events: listOrEmpty(events), Total: int64(len(events))})
}

// HandleListByTag handles GET /api/events/tag/:tag.
func (s *Service) HandleListByTag(c *gin.Context) {
	events, err := s.EventsByTag(c.Request.Context(), c.Param("tag"))
	if err != nil {
		writeStoreError(c, "Failed to list events by tag", err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Events: listOrEmpty(events), Total: int64(len(events))})
}

// HandleStatusCounts handles GET /api/events/stats/counts.
func (s *Service) HandleStatusCounts(c *gin.Context) {
	counts, err := s.CountsByStatus(c.Request.Context())
	if err != nil {
		writeStoreError(c, "Failed to count events", err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func bindEventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidArgumentError,
			Message:   "Invalid event ID",
			Details:   c.Param("id"),
		})
		return 0, false
	}
	return id, true
}

func writeStoreError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, ErrInvalidEvent):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidArgumentError,
			Message:   message,
			Details:   err.Error(),
		})
	case errors.Is(err, storage.ErrDuplicate):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpDuplicateEventError,
			Message:   message,
			Details:   err.Error(),
		})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpNotFoundError,
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

// listOrEmpty keeps JSON listings as [] rather than null when empty.
func listOrEmpty(events []*v1.Event) []*v1.Event {
	if events == nil {
		return []*v1.Event{}
	}
	return events
}

package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/Sidebar/internal/app/orch"
	"github.com/dkeye/Sidebar/internal/domain"
	"github.com/gin-gonic/gin"
)

func registerRoomRoutes(api *gin.RouterGroup, o *orch.Orchestrator) {
	// GET /api/rooms — list rooms in order
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": o.Rooms(sessionID(c))})
	})

	// POST /api/rooms — append a room
	api.POST("/rooms", func(c *gin.Context) {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		info, err := o.CreateRoom(sessionID(c), req.Name)
		if errors.Is(err, orch.ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, info)
	})

	// POST /api/rooms/select — select by name; unknown names deselect all
	api.POST("/rooms/select", func(c *gin.Context) {
		var req struct {
			Name *string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid name"})
			return
		}
		sid := sessionID(c)
		o.SelectRoomByName(sid, *req.Name)
		c.JSON(http.StatusOK, gin.H{"rooms": o.Rooms(sid)})
	})

	// GET /api/rooms/active — the selected room, if any
	api.GET("/rooms/active", func(c *gin.Context) {
		active, ok := o.ActiveRoom(sessionID(c))
		if !ok {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, active)
	})

	// DELETE /api/rooms/active — deselect all
	api.DELETE("/rooms/active", func(c *gin.Context) {
		o.ClearSelection(sessionID(c))
		c.Status(http.StatusNoContent)
	})

	// PUT /api/rooms/:id/active — select by id
	api.PUT("/rooms/:id/active", func(c *gin.Context) {
		sid := sessionID(c)
		if err := o.SelectRoom(sid, domain.RoomID(c.Param("id"))); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rooms": o.Rooms(sid)})
	})

	// GET|POST /api/rooms/:id/messages — message pane placeholder
	api.GET("/rooms/:id/messages", func(c *gin.Context) {
		writeError(c, o.Messages(sessionID(c), domain.RoomID(c.Param("id"))))
	})
	api.POST("/rooms/:id/messages", func(c *gin.Context) {
		var req struct {
			Text string `json:"text"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		writeError(c, o.SendMessage(sessionID(c), domain.RoomID(c.Param("id")), req.Text))
	})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	case errors.Is(err, domain.ErrNotImplemented):
		c.JSON(http.StatusNotImplemented, gin.H{"error": "not_implemented"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

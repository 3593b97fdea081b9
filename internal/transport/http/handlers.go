// Package http exposes a read-only status endpoint next to the chat
// port. It only takes snapshots and never mutates chat state.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkeye/Chat/internal/app"
	"github.com/dkeye/Chat/internal/core"
)

func SetupRouter(directory *app.Directory, rooms core.RoomFactory) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, rooms.List())
	})

	api.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"count": directory.Count(),
			"users": directory.Names(),
		})
	})

	return r
}

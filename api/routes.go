package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ternarybob/arbor"

	"pdftools/pdf"
)

// Config holds what the handlers need from the application
type Config struct {
	MaxFileSize  int64
	TempDir      string
	CleanupDelay time.Duration
	Processor    *pdf.Processor
	Logger       arbor.ILogger
}

func SetupRoutes(r *gin.Engine, config *Config) {
	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/upload", func(c *gin.Context) { HandleUpload(c, config) })
		apiGroup.POST("/combine", func(c *gin.Context) { HandleCombine(c, config) })
		apiGroup.POST("/reorder", func(c *gin.Context) { HandleReorder(c, config) })
		apiGroup.POST("/rotate", func(c *gin.Context) { HandleRotate(c, config) })
		apiGroup.POST("/remove-pages", func(c *gin.Context) { HandleRemovePages(c, config) })
		apiGroup.POST("/info", func(c *gin.Context) { HandleInfo(c, config) })
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "pdftools",
		})
	})
}

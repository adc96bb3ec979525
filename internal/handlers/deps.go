package handlers

import (
	"net/http"

	"github.com/clientbridge-dev/clientbridge/internal/config"
	"github.com/clientbridge-dev/clientbridge/internal/services"
	"github.com/clientbridge-dev/clientbridge/internal/storage"
	"github.com/gin-gonic/gin"
)

var (
	cfg    config.Config
	blobs  storage.BlobStore
	notify services.Notifier = services.Noop{}
)

// Configure injects the runtime configuration and collaborators. Called once
// from main before the router starts serving.
func Configure(c config.Config, store storage.BlobStore, n services.Notifier) {
	cfg = c
	blobs = store

	if n != nil {
		notify = n
	}
}

func respondData(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, gin.H{"success": true, "data": data})
}

func respondList(ctx *gin.Context, count int64, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func respondMessage(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"success": true, "message": message})
}

func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"success": false, "message": message})
}

package route

import (
	"net/http"
	"path/filepath"

	"campus-board/backend/common"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// setWebRouter serves the stored image assets and the few static files the PWA
// shell needs (sw.js passthrough).
func setWebRouter(route *gin.Engine) {
	route.Use(static.Serve("/uploads", static.LocalFile(common.UploadPath, false)))

	route.GET("/sw.js", func(c *gin.Context) {
		c.Header("Content-Type", "application/javascript")
		c.File(filepath.Join(common.StaticPath, "sw.js"))
	})

	route.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "route not found",
		})
	})
}

package route

import (
	"campus-board/backend/api/middleware"
	"campus-board/backend/common"

	"github.com/gin-gonic/gin"
)

func SetRouter(route *gin.Engine) {
	route.Use(middleware.GzipDecodeMiddleware())
	route.Use(middleware.GzipEncodeMiddleware())
	route.Use(middleware.BodyLimit(common.MaxUploadBytes))

	SetApiRouter(route)
	setWebRouter(route)
}

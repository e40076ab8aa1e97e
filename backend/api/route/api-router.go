package route

import (
	"campus-board/backend/api/handler"
	"campus-board/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(route *gin.Engine) {
	root := route.Group("/")
	root.Use(middleware.GlobalAPIRateLimit())
	{
		// Student view
		root.GET("/", handler.GetPublicListings)

		// Landlord hub: GET shows lock state or the form data, POST is either
		// a gate unlock attempt or a listing submission.
		landlordRoute := root.Group("/landlord")
		{
			landlordRoute.GET("", handler.GetLandlordHub)
			landlordRoute.POST("", middleware.CriticalRateLimit(), handler.PostLandlordHub)
		}

		// Admin console: same unlock-or-act multiplexing.
		adminRoute := root.Group("/admin")
		{
			adminRoute.GET("", handler.GetAdminConsole)
			adminRoute.POST("", middleware.CriticalRateLimit(), handler.PostAdminConsole)
			adminRoute.GET("/logout", handler.AdminLogout)
		}
	}

	// JSON mirrors for gated data, guarded by the gate middlewares.
	apiRouter := route.Group("/api")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		apiRouter.GET("/listings", handler.GetPublicListings)

		hubRoute := apiRouter.Group("/hub")
		hubRoute.Use(middleware.HubAuth())
		{
			hubRoute.GET("/schools", handler.GetHubSchools)
		}

		adminApiRoute := apiRouter.Group("/admin")
		adminApiRoute.Use(middleware.AdminAuth())
		{
			adminApiRoute.GET("/listings", handler.GetReviewQueue)
		}
	}
}

package cameras

import "github.com/gin-gonic/gin"

// SetupBusinessRoutes registers camera management on a business-only group
func SetupBusinessRoutes(business *gin.RouterGroup, controller *Controller) {
	business.GET("/restaurants/:id/cameras", controller.ListCameras)
	business.GET("/restaurants/:id/cameras/active", controller.ListActive)
	business.GET("/restaurants/:id/monitor", controller.GetMonitor)

	cameras := business.Group("/cameras")
	{
		cameras.POST("", controller.CreateCamera)
		cameras.PUT("/:id", controller.UpdateCamera)
		cameras.DELETE("/:id", controller.DeleteCamera)
		cameras.PATCH("/:id/enabled", controller.ToggleEnabled)
		cameras.POST("/:id/test", controller.TestConnection)
		cameras.GET("/:id/next", controller.NextCamera)
		cameras.GET("/:id/prev", controller.PrevCamera)
		cameras.POST("/:id/analyze", controller.AnalyzeCamera)
	}
}

// SetupIngestRoutes registers the detector callback; the group must
// authenticate the detector as the restaurant's business account
func SetupIngestRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.POST("/detections", controller.IngestDetections)
}

package detection

import "github.com/gin-gonic/gin"

func SetupDetectionRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.POST("/opencv", controller.AnalyzeUpload)
}

package notifications

import (
	"github.com/gin-gonic/gin"
)

// SetupAlertRoutes registers inbox routes on an authenticated group
func SetupAlertRoutes(protected *gin.RouterGroup, controller *Controller) {
	protected.GET("/alerts", controller.GetAlerts)
	protected.POST("/messages", controller.SendMessage)
}

package stats

import "github.com/gin-gonic/gin"

// SetupBusinessRoutes registers owner statistics on an already guarded group
func SetupBusinessRoutes(business *gin.RouterGroup, controller *Controller) {
	business.GET("/restaurants/:id/stats", controller.GetRestaurantStats)
}

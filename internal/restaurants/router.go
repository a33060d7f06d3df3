package restaurants

import (
	"github.com/gin-gonic/gin"
)

// SetupRestaurantRoutes registers the public catalog
func SetupRestaurantRoutes(rg *gin.RouterGroup, controller *Controller) {
	restaurants := rg.Group("/restaurants")
	{
		restaurants.GET("", controller.ListRestaurants)
		restaurants.GET("/districts", controller.ListDistricts)
		restaurants.GET("/:id", controller.GetRestaurant)
	}
}

// SetupBusinessRoutes registers owner-only routes on an already guarded group
func SetupBusinessRoutes(business *gin.RouterGroup, controller *Controller) {
	business.GET("/restaurants", controller.ListMine)
	business.POST("/restaurants", controller.CreateRestaurant)
	business.PUT("/restaurants/:id", controller.UpdateRestaurant)
}

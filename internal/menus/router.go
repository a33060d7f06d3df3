package menus

import (
	"github.com/gin-gonic/gin"
)

func SetupMenuRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/restaurants/:id/menu", controller.GetMenu)
}

// SetupBusinessRoutes expects a group already guarded for the BUSINESS role
func SetupBusinessRoutes(business *gin.RouterGroup, controller *Controller) {
	business.POST("/restaurants/:id/menu", controller.CreateItem)

	items := business.Group("/menu-items")
	{
		items.PUT("/:itemId", controller.UpdateItem)
		items.DELETE("/:itemId", controller.DeleteItem)
		items.PATCH("/:itemId/availability", controller.ToggleAvailability)
	}
}

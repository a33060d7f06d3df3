package reservations

import (
	"github.com/gin-gonic/gin"
)

// SetupReservationRoutes registers routes for any authenticated user
func SetupReservationRoutes(protected *gin.RouterGroup, controller *Controller) {
	reservations := protected.Group("/reservations")
	{
		reservations.GET("", controller.ListReservations)
		reservations.POST("", controller.CreateReservation)
		reservations.GET("/mine", controller.ListMine)
		reservations.GET("/:id", controller.GetReservation)
		reservations.PATCH("/:id", controller.PatchReservation)
		reservations.POST("/:id/cancel", controller.CancelReservation)
		reservations.GET("/:id/qr", controller.GetQRCode)
	}
}

// SetupDraftRoutes registers the booking flow on a customer-only group
func SetupDraftRoutes(customer *gin.RouterGroup, controller *Controller) {
	draft := customer.Group("/restaurants/:id/draft")
	{
		draft.GET("", controller.GetDraft)
		draft.DELETE("", controller.DiscardDraft)
		draft.PUT("/items", controller.SetItem)
		draft.DELETE("/items/:itemId", controller.RemoveItem)
		draft.POST("/items/:itemId/increment", controller.IncrementItem)
		draft.POST("/items/:itemId/decrement", controller.DecrementItem)
		draft.POST("/seats/:seatId/toggle", controller.ToggleSeat)
		draft.PUT("/schedule", controller.SetSchedule)
		draft.POST("/confirm-menu", controller.ConfirmMenu)
		draft.POST("/review", controller.Review)
		draft.POST("/cancel", controller.CancelReview)
		draft.POST("/submit", controller.SubmitDraft)
	}
}

// SetupBusinessRoutes registers owner routes on a business-only group
func SetupBusinessRoutes(business *gin.RouterGroup, controller *Controller) {
	business.GET("/restaurants/:id/reservations", controller.ListRestaurantReservations)
	business.POST("/reservations/:id/confirm", controller.ConfirmReservation)
	business.POST("/reservations/:id/complete", controller.CompleteReservation)
	business.POST("/reservations/:id/cancel", controller.CancelReservation)
}

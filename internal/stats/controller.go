package stats

import (
	"errors"
	"net/http"
	"strconv"

	"zari/internal/restaurants"
	"zari/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetRestaurantStats godoc
// @Summary Reservation statistics for an owned restaurant
// @Tags business
// @Param id path string true "restaurant"
// @Param days query int false "window in days (default 7, max 90)"
// @Success 200 {object} response.StandardApiResponse
// @Router /business/restaurants/{id}/stats [get]
func (c *Controller) GetRestaurantStats(ctx *gin.Context) {
	ownerID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}
	restaurantID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid restaurant ID", nil, nil)
		return
	}
	days := DefaultDays
	if raw := ctx.Query("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "days must be a number", nil, nil)
			return
		}
	}

	stats, err := c.service.ForRestaurant(ctx.Request.Context(), ownerID, restaurantID, days)
	switch {
	case err == nil:
		response.RespondJSON(ctx, "success", http.StatusOK, "Statistics retrieved successfully", stats, nil)
	case errors.Is(err, restaurants.ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not manage this restaurant", nil, nil)
	case errors.Is(err, restaurants.ErrRestaurantNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Restaurant not found", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get statistics", nil, nil)
	}
}

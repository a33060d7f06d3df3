package menus

import (
	"errors"
	"net/http"

	"zari/internal/restaurants"
	"zari/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{service: service, validator: validator.New()}
}

func (c *Controller) handleError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMenuItemNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Menu item not found", nil, nil)
	case errors.Is(err, ErrInvalidCategory):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid menu category", nil, nil)
	case errors.Is(err, restaurants.ErrRestaurantNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Restaurant not found", nil, nil)
	case errors.Is(err, restaurants.ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not manage this restaurant", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}

// GetMenu godoc
// @Summary Restaurant menu
// @Tags menus
// @Param id path string true "restaurant id"
// @Param all query bool false "include unavailable items"
// @Success 200 {object} response.StandardApiResponse
// @Router /restaurants/{id}/menu [get]
func (c *Controller) GetMenu(ctx *gin.Context) {
	restaurantID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid restaurant ID", nil, nil)
		return
	}

	items, err := c.service.List(ctx.Request.Context(), restaurantID, ctx.Query("all") != "true")
	if err != nil {
		c.handleError(ctx, err, "Failed to get menu")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Menu retrieved successfully", items, nil)
}

func (c *Controller) CreateItem(ctx *gin.Context) {
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

	var req CreateMenuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	item, err := c.service.Create(ctx.Request.Context(), ownerID, restaurantID, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to create menu item")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Menu item created successfully", item, nil)
}

// itemParams resolves the caller and the :itemId path parameter
func (c *Controller) itemParams(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	ownerID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, uuid.Nil, false
	}
	itemID, err := uuid.Parse(ctx.Param("itemId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid menu item ID", nil, nil)
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, itemID, true
}

func (c *Controller) UpdateItem(ctx *gin.Context) {
	ownerID, itemID, ok := c.itemParams(ctx)
	if !ok {
		return
	}

	var req UpdateMenuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	item, err := c.service.Update(ctx.Request.Context(), ownerID, itemID, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to update menu item")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Menu item updated successfully", item, nil)
}

func (c *Controller) DeleteItem(ctx *gin.Context) {
	ownerID, itemID, ok := c.itemParams(ctx)
	if !ok {
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), ownerID, itemID); err != nil {
		c.handleError(ctx, err, "Failed to delete menu item")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Menu item deleted successfully", nil, nil)
}

func (c *Controller) ToggleAvailability(ctx *gin.Context) {
	ownerID, itemID, ok := c.itemParams(ctx)
	if !ok {
		return
	}

	item, err := c.service.ToggleAvailability(ctx.Request.Context(), ownerID, itemID)
	if err != nil {
		c.handleError(ctx, err, "Failed to update availability")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Availability updated successfully", item, nil)
}

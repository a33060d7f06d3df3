package restaurants

import (
	"errors"
	"net/http"

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
	case errors.Is(err, ErrRestaurantNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Restaurant not found", nil, nil)
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not manage this restaurant", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}

// ListRestaurants godoc
// @Summary List restaurants
// @Tags restaurants
// @Param q query string false "name or cuisine"
// @Param district query string false "district"
// @Success 200 {object} response.StandardApiResponse
// @Router /restaurants [get]
func (c *Controller) ListRestaurants(ctx *gin.Context) {
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := c.service.List(ctx.Request.Context(), query)
	if err != nil {
		c.handleError(ctx, err, "Failed to list restaurants")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Restaurants retrieved successfully", list, nil)
}

func (c *Controller) ListDistricts(ctx *gin.Context) {
	districts, err := c.service.Districts(ctx.Request.Context())
	if err != nil {
		c.handleError(ctx, err, "Failed to list districts")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Districts retrieved successfully", districts, nil)
}

func (c *Controller) GetRestaurant(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid restaurant ID", nil, nil)
		return
	}

	restaurant, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		c.handleError(ctx, err, "Failed to get restaurant")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Restaurant retrieved successfully", restaurant, nil)
}

func (c *Controller) ListMine(ctx *gin.Context) {
	ownerID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	list, err := c.service.ListByOwner(ctx.Request.Context(), ownerID)
	if err != nil {
		c.handleError(ctx, err, "Failed to list restaurants")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Restaurants retrieved successfully", list, nil)
}

func (c *Controller) CreateRestaurant(ctx *gin.Context) {
	ownerID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateRestaurantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	restaurant, err := c.service.Create(ctx.Request.Context(), ownerID, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to create restaurant")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Restaurant created successfully", restaurant, nil)
}

func (c *Controller) UpdateRestaurant(ctx *gin.Context) {
	ownerID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid restaurant ID", nil, nil)
		return
	}

	var req UpdateRestaurantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	restaurant, err := c.service.Update(ctx.Request.Context(), id, ownerID, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to update restaurant")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Restaurant updated successfully", restaurant, nil)
}

package reservations

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"zari/internal/menus"
	"zari/internal/ordering"
	"zari/internal/restaurants"
	"zari/internal/seats"
	"zari/internal/shared/utils/response"
	"zari/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	drafts    DraftService
	validator *validator.Validate
}

func NewController(service Service, drafts DraftService) *Controller {
	return &Controller{service: service, drafts: drafts, validator: validator.New()}
}

// actorFrom reads the caller placed on the context by the auth middleware
func actorFrom(ctx *gin.Context) (Actor, bool) {
	id, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return Actor{}, false
	}
	return Actor{ID: id, Name: ctx.GetString("user_name"), Role: users.Role(ctx.GetString("user_role"))}, true
}

func parseID(ctx *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid "+label+" ID", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps domain errors to responses; data is echoed so draft
// clients can re-render after a rejected command
func (c *Controller) handleError(ctx *gin.Context, err error, data interface{}, fallback string) {
	var verr *ValidationError
	var missing *MissingFieldError
	switch {
	case errors.As(err, &verr):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, verr.Message, data, verr)
	case errors.As(err, &missing):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, missing.Error(), data, map[string]string{missing.Field: "required"})
	case errors.Is(err, ErrReservationNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Reservation not found", data, nil)
	case errors.Is(err, restaurants.ErrRestaurantNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Restaurant not found", data, nil)
	case errors.Is(err, menus.ErrMenuItemNotFound), errors.Is(err, ordering.ErrItemNotInOrder):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Menu item not found", data, nil)
	case errors.Is(err, seats.ErrSeatNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Seat not found", data, nil)
	case errors.Is(err, ErrDraftNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "No reservation draft", data, nil)
	case errors.Is(err, ErrForbidden), errors.Is(err, restaurants.ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You cannot access this reservation", data, nil)
	case errors.Is(err, menus.ErrItemUnavailable):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Menu item is not available", data, nil)
	case errors.Is(err, seats.ErrSeatOccupied):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Seat is occupied", data, nil)
	case errors.Is(err, ErrNotCancellable):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Reservation can no longer be cancelled", data, nil)
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrStatusConflict), errors.Is(err, ErrReservationInactive),
		errors.Is(err, ErrReservationClosed):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), data, nil)
	case errors.Is(err, ErrDraftBusy), errors.Is(err, ErrSubmitting):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Reservation is being submitted, please wait", data, nil)
	case errors.Is(err, ErrNotAwaitingConfirmation):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Review the reservation before submitting", data, nil)
	case errors.Is(err, ErrInvalidSchedule):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation date or time", data, nil)
	case errors.Is(err, ordering.ErrInvalidQuantity):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Quantity must be at least 1", data, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, data, nil)
	}
}

// ListReservations godoc
// @Summary Filter reservations
// @Tags reservations
// @Param restaurant_id query string false "restaurant"
// @Param customer_id query string false "customer"
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {object} response.StandardApiResponse
// @Router /reservations [get]
func (c *Controller) ListReservations(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := c.service.List(ctx.Request.Context(), actor, query)
	if err != nil {
		c.handleError(ctx, err, nil, "Failed to list reservations")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", list, nil)
}

func (c *Controller) CreateReservation(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	reservation, err := c.service.CreateFromRequest(ctx.Request.Context(), actor, req)
	if err != nil {
		c.handleError(ctx, err, nil, "Failed to create reservation")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Reservation created successfully", reservation, nil)
}

func (c *Controller) PatchReservation(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id", "reservation")
	if !ok {
		return
	}
	var req PatchReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	reservation, err := c.service.Patch(ctx.Request.Context(), actor, id, req)
	if err != nil {
		c.handleError(ctx, err, nil, "Failed to update reservation")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation updated successfully", reservation, nil)
}

func (c *Controller) ListMine(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	list, err := c.service.ListMine(ctx.Request.Context(), actor.ID)
	if err != nil {
		c.handleError(ctx, err, nil, "Failed to list reservations")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", list, nil)
}

func (c *Controller) GetReservation(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id", "reservation")
	if !ok {
		return
	}

	reservation, err := c.service.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		c.handleError(ctx, err, nil, "Failed to get reservation")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation retrieved successfully", reservation, nil)
}

func (c *Controller) CancelReservation(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id", "reservation")
	if !ok {
		return
	}

	reservation, err := c.service.Cancel(ctx.Request.Context(), actor, id)
	if err != nil {
		c.handleError(ctx, err, nil, "Failed to cancel reservation")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation cancelled successfully", reservation, nil)
}

// GetQRCode serves image/png, or base64 JSON with ?format=json
func (c *Controller) GetQRCode(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id", "reservation")
	if !ok {
		return
	}

	png, err := c.service.QRCode(ctx.Request.Context(), actor, id)
	if err != nil {
		c.handleError(ctx, err, nil, "Failed to generate QR code")
		return
	}
	if ctx.Query("format") == "json" {
		response.RespondJSON(ctx, "success", http.StatusOK, "QR code generated", QRResponse{
			ReservationID: id.String(),
			PNGBase64:     base64.StdEncoding.EncodeToString(png),
		}, nil)
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}

func (c *Controller) ListRestaurantReservations(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	restaurantID, ok := parseID(ctx, "id", "restaurant")
	if !ok {
		return
	}
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := c.service.ListForRestaurant(ctx.Request.Context(), actor.ID, restaurantID, query)
	if err != nil {
		c.handleError(ctx, err, nil, "Failed to list reservations")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", list, nil)
}

func (c *Controller) ConfirmReservation(ctx *gin.Context) {
	c.ownerTransition(ctx, c.service.Confirm, "Reservation confirmed successfully")
}

func (c *Controller) CompleteReservation(ctx *gin.Context) {
	c.ownerTransition(ctx, c.service.Complete, "Reservation completed successfully")
}

func (c *Controller) ownerTransition(ctx *gin.Context, step func(context.Context, uuid.UUID, uuid.UUID) (*Reservation, error), msg string) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id", "reservation")
	if !ok {
		return
	}

	reservation, err := step(ctx.Request.Context(), actor.ID, id)
	if err != nil {
		c.handleError(ctx, err, nil, "Failed to update reservation")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, msg, reservation, nil)
}

package reservations

import (
	"net/http"
	"strconv"

	"zari/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// draftTarget resolves the caller and the :id restaurant of a draft route
func (c *Controller) draftTarget(ctx *gin.Context) (Actor, uuid.UUID, bool) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return Actor{}, uuid.Nil, false
	}
	restaurantID, ok := parseID(ctx, "id", "restaurant")
	if !ok {
		return Actor{}, uuid.Nil, false
	}
	return actor, restaurantID, true
}

func (c *Controller) respondDraft(ctx *gin.Context, draft *DraftResponse, err error, msg string) {
	if err != nil {
		c.handleError(ctx, err, draft, "Failed to update reservation draft")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, msg, draft, nil)
}

// GetDraft godoc
// @Summary Current reservation draft for a restaurant
// @Tags drafts
// @Param id path string true "restaurant id"
// @Param refresh query bool false "re-derive the seat map keeping selections"
// @Success 200 {object} response.StandardApiResponse
// @Router /restaurants/{id}/draft [get]
func (c *Controller) GetDraft(ctx *gin.Context) {
	actor, restaurantID, ok := c.draftTarget(ctx)
	if !ok {
		return
	}
	draft, err := c.drafts.Get(ctx.Request.Context(), actor.ID, restaurantID, ctx.Query("refresh") == "true")
	c.respondDraft(ctx, draft, err, "Draft retrieved successfully")
}

func (c *Controller) DiscardDraft(ctx *gin.Context) {
	actor, restaurantID, ok := c.draftTarget(ctx)
	if !ok {
		return
	}
	if err := c.drafts.Discard(ctx.Request.Context(), actor.ID, restaurantID); err != nil {
		c.handleError(ctx, err, nil, "Failed to discard draft")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Draft discarded", nil, nil)
}

func (c *Controller) SetItem(ctx *gin.Context) {
	actor, restaurantID, ok := c.draftTarget(ctx)
	if !ok {
		return
	}
	var req SetItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	draft, err := c.drafts.SetItem(ctx.Request.Context(), actor.ID, restaurantID, req)
	c.respondDraft(ctx, draft, err, "Order updated")
}

func (c *Controller) RemoveItem(ctx *gin.Context) {
	actor, restaurantID, ok := c.draftTarget(ctx)
	if !ok {
		return
	}
	draft, err := c.drafts.RemoveItem(ctx.Request.Context(), actor.ID, restaurantID, ctx.Param("itemId"))
	c.respondDraft(ctx, draft, err, "Item removed")
}

func (c *Controller) IncrementItem(ctx *gin.Context) {
	actor, restaurantID, ok := c.draftTarget(ctx)
	if !ok {
		return
	}
	draft, err := c.drafts.IncrementItem(ctx.Request.Context(), actor.ID, restaurantID, ctx.Param("itemId"))
	c.respondDraft(ctx, draft, err, "Order updated")
}

func (c *Controller) DecrementItem(ctx *gin.Context) {
	actor, restaurantID, ok := c.draftTarget(ctx)
	if !ok {
		return
	}
	draft, err := c.drafts.DecrementItem(ctx.Request.Context(), actor.ID, restaurantID, ctx.Param("itemId"))
	c.respondDraft(ctx, draft, err, "Order updated")
}

func (c *Controller) ToggleSeat(ctx *gin.Context) {
	actor, restaurantID, ok := c.draftTarget(ctx)
	if !ok {
		return
	}
	seatID, err := strconv.Atoi(ctx.Param("seatId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID", nil, nil)
		return
	}

	draft, err := c.drafts.ToggleSeat(ctx.Request.Context(), actor.ID, restaurantID, seatID)
	c.respondDraft(ctx, draft, err, "Seat selection updated")
}

func (c *Controller) SetSchedule(ctx *gin.Context) {
	actor, restaurantID, ok := c.draftTarget(ctx)
	if !ok {
		return
	}
	var req ScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	draft, err := c.drafts.SetSchedule(ctx.Request.Context(), actor.ID, restaurantID, req)
	c.respondDraft(ctx, draft, err, "Schedule updated")
}

func (c *Controller) ConfirmMenu(ctx *gin.Context) {
	actor, restaurantID, ok := c.draftTarget(ctx)
	if !ok {
		return
	}
	draft, err := c.drafts.ConfirmMenu(ctx.Request.Context(), actor.ID, restaurantID)
	c.respondDraft(ctx, draft, err, "Menu confirmed")
}

func (c *Controller) Review(ctx *gin.Context) {
	actor, restaurantID, ok := c.draftTarget(ctx)
	if !ok {
		return
	}
	draft, err := c.drafts.RequestConfirmation(ctx.Request.Context(), actor.ID, restaurantID)
	c.respondDraft(ctx, draft, err, "Please confirm your reservation")
}

func (c *Controller) CancelReview(ctx *gin.Context) {
	actor, restaurantID, ok := c.draftTarget(ctx)
	if !ok {
		return
	}
	draft, err := c.drafts.CancelConfirmation(ctx.Request.Context(), actor.ID, restaurantID)
	c.respondDraft(ctx, draft, err, "Back to seat selection")
}

// SubmitDraft godoc
// @Summary Submit the reviewed draft
// @Tags drafts
// @Param id path string true "restaurant id"
// @Success 201 {object} response.StandardApiResponse
// @Router /restaurants/{id}/draft/submit [post]
func (c *Controller) SubmitDraft(ctx *gin.Context) {
	actor, restaurantID, ok := c.draftTarget(ctx)
	if !ok {
		return
	}
	draft, err := c.drafts.Submit(ctx.Request.Context(), actor, restaurantID)
	if err != nil {
		c.handleError(ctx, err, draft, "Reservation failed, please try again")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Reservation confirmed", draft, nil)
}

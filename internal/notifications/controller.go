package notifications

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

func (c *Controller) GetAlerts(ctx *gin.Context) {
	userID := ctx.GetString("user_id")
	if userID == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	alerts, err := c.service.Alerts(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load alerts", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Alerts retrieved successfully", alerts, nil)
}

func (c *Controller) SendMessage(ctx *gin.Context) {
	senderID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	alert, err := c.service.SendMessage(ctx.Request.Context(), senderID, ctx.GetString("user_name"), req)
	switch {
	case err == nil:
		response.RespondJSON(ctx, "success", http.StatusCreated, "Message sent successfully", alert, nil)
	case errors.Is(err, ErrRecipientUnknown):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Recipient not found", nil, nil)
	case errors.Is(err, ErrMessageToSelf):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Cannot send a message to yourself", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to send message", nil, nil)
	}
}

package cameras

import (
	"context"
	"errors"
	"net/http"

	"zari/internal/detection"
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
	case errors.Is(err, ErrCameraNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Camera not found", nil, nil)
	case errors.Is(err, restaurants.ErrRestaurantNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Restaurant not found", nil, nil)
	case errors.Is(err, restaurants.ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not manage this restaurant", nil, nil)
	case errors.Is(err, ErrCameraDisabled):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Camera is disabled", nil, nil)
	case errors.Is(err, ErrNoActiveCameras):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "No active cameras", nil, nil)
	case errors.Is(err, detection.ErrNoRegions):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Detector is not configured", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}

// params reads the owner and the :id path parameter
func (c *Controller) params(ctx *gin.Context, label string) (uuid.UUID, uuid.UUID, bool) {
	ownerID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid "+label+" ID", nil, nil)
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, id, true
}

func (c *Controller) ListCameras(ctx *gin.Context) {
	ownerID, restaurantID, ok := c.params(ctx, "restaurant")
	if !ok {
		return
	}
	list, err := c.service.List(ctx.Request.Context(), ownerID, restaurantID)
	if err != nil {
		c.handleError(ctx, err, "Failed to list cameras")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Cameras retrieved successfully", list, nil)
}

func (c *Controller) ListActive(ctx *gin.Context) {
	ownerID, restaurantID, ok := c.params(ctx, "restaurant")
	if !ok {
		return
	}
	list, err := c.service.Active(ctx.Request.Context(), ownerID, restaurantID)
	if err != nil {
		c.handleError(ctx, err, "Failed to list cameras")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Active cameras retrieved successfully", list, nil)
}

func (c *Controller) CreateCamera(ctx *gin.Context) {
	ownerID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}
	var req CreateCameraRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	camera, err := c.service.Create(ctx.Request.Context(), ownerID, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to create camera")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Camera created successfully", camera, nil)
}

func (c *Controller) UpdateCamera(ctx *gin.Context) {
	ownerID, id, ok := c.params(ctx, "camera")
	if !ok {
		return
	}
	var req UpdateCameraRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	camera, err := c.service.Update(ctx.Request.Context(), ownerID, id, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to update camera")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Camera updated successfully", camera, nil)
}

func (c *Controller) DeleteCamera(ctx *gin.Context) {
	ownerID, id, ok := c.params(ctx, "camera")
	if !ok {
		return
	}
	if err := c.service.Delete(ctx.Request.Context(), ownerID, id); err != nil {
		c.handleError(ctx, err, "Failed to delete camera")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Camera deleted successfully", nil, nil)
}

func (c *Controller) ToggleEnabled(ctx *gin.Context) {
	c.cameraAction(ctx, c.service.ToggleEnabled, "Camera updated")
}

func (c *Controller) TestConnection(ctx *gin.Context) {
	c.cameraAction(ctx, c.service.TestConnection, "Connection tested")
}

func (c *Controller) NextCamera(ctx *gin.Context) {
	c.cameraAction(ctx, c.service.Next, "Next camera")
}

func (c *Controller) PrevCamera(ctx *gin.Context) {
	c.cameraAction(ctx, c.service.Prev, "Previous camera")
}

func (c *Controller) cameraAction(ctx *gin.Context, action func(context.Context, uuid.UUID, uuid.UUID) (*Camera, error), msg string) {
	ownerID, id, ok := c.params(ctx, "camera")
	if !ok {
		return
	}
	camera, err := action(ctx.Request.Context(), ownerID, id)
	if err != nil {
		c.handleError(ctx, err, "Camera operation failed")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, msg, camera, nil)
}

// AnalyzeCamera godoc
// @Summary Run seat detection on a camera
// @Tags cameras
// @Param id path string true "camera id"
// @Success 200 {object} response.StandardApiResponse
// @Router /business/cameras/{id}/analyze [post]
func (c *Controller) AnalyzeCamera(ctx *gin.Context) {
	ownerID, id, ok := c.params(ctx, "camera")
	if !ok {
		return
	}
	snap, err := c.service.Analyze(ctx.Request.Context(), ownerID, id)
	if err != nil {
		c.handleError(ctx, err, "Failed to analyze camera")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seats detected", snap, nil)
}

func (c *Controller) GetMonitor(ctx *gin.Context) {
	ownerID, restaurantID, ok := c.params(ctx, "restaurant")
	if !ok {
		return
	}
	resp, err := c.service.Monitor(ctx.Request.Context(), ownerID, restaurantID)
	if err != nil {
		c.handleError(ctx, err, "Failed to load seat monitor")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seat monitor retrieved successfully", resp, nil)
}

// IngestDetections godoc
// @Summary Ingest person boxes from an external detector
// @Tags cameras
// @Accept json
// @Param body body DetectionsRequest true "detections"
// @Success 200 {object} response.StandardApiResponse
// @Router /detections [post]
func (c *Controller) IngestDetections(ctx *gin.Context) {
	ownerID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}
	var req DetectionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	snap, err := c.service.Ingest(ctx.Request.Context(), ownerID, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to ingest detections")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Detections recorded", snap, nil)
}

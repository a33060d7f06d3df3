package detection

import (
	"errors"
	"io"
	"net/http"

	"zari/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	maxSize int64
}

func NewController(service Service, maxSize int64) *Controller {
	return &Controller{service: service, maxSize: maxSize}
}

// AnalyzeUpload godoc
// @Summary Detect seat states in an uploaded frame
// @Tags detection
// @Accept multipart/form-data
// @Param image formData file true "camera frame"
// @Success 200 {object} response.StandardApiResponse
// @Router /opencv [post]
func (c *Controller) AnalyzeUpload(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "No image provided", nil, nil)
		return
	}
	if c.maxSize > 0 && file.Size > c.maxSize {
		response.RespondJSON(ctx, "error", http.StatusRequestEntityTooLarge, "Image is too large", nil, nil)
		return
	}

	f, err := file.Open()
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Unreadable image", nil, nil)
		return
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Unreadable image", nil, nil)
		return
	}

	result, err := c.service.Analyze(ctx.Request.Context(), "upload", image)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoImage):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "No image provided", nil, nil)
		case errors.Is(err, ErrUnsupportedImage):
			response.RespondJSON(ctx, "error", http.StatusUnsupportedMediaType, "Unsupported image type", nil, err.Error())
		case errors.Is(err, ErrImageTooLarge):
			response.RespondJSON(ctx, "error", http.StatusRequestEntityTooLarge, "Image is too large", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to process image", nil, nil)
		}
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seats detected", result, nil)
}

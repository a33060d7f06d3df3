package cameras

import "zari/internal/detection"

type CreateCameraRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required,uuid" copier:"-"`
	Name         string `json:"name" validate:"required,max=80"`
	Location     string `json:"location" validate:"omitempty,max=120"`
	Type         string `json:"type" validate:"required,oneof=ip usb rtsp"`
	URL          string `json:"url" validate:"omitempty,max=500"`
}

// UpdateCameraRequest applies only the fields that are present
type UpdateCameraRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=80"`
	Location *string `json:"location" validate:"omitempty,max=120"`
	Type     *string `json:"type" validate:"omitempty,oneof=ip usb rtsp"`
	URL      *string `json:"url" validate:"omitempty,max=500"`
}

// DetectionsRequest carries boxes from an external detector watching a camera
type DetectionsRequest struct {
	CameraID   string          `json:"camera_id" validate:"required,uuid"`
	Detections []detection.Box `json:"detections" validate:"dive"`
}

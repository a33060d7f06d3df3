package cameras

import (
	"time"

	"zari/internal/detection"
)

// Snapshot is the latest detection stored for a camera and its restaurant
type Snapshot struct {
	CameraID     string                `json:"camera_id"`
	CameraName   string                `json:"camera_name"`
	RestaurantID string                `json:"restaurant_id"`
	Seats        []detection.SeatState `json:"seats"`
	Available    int                   `json:"available"`
	Occupied     int                   `json:"occupied"`
	Occupancy    int                   `json:"occupancy"`
	CapturedAt   time.Time             `json:"captured_at"`
}

func newSnapshot(camera *Camera, result *detection.Result) Snapshot {
	available, occupied := result.Counts()
	return Snapshot{
		CameraID:     camera.ID.String(),
		CameraName:   camera.Name,
		RestaurantID: camera.RestaurantID.String(),
		Seats:        result.Seats,
		Available:    available,
		Occupied:     occupied,
		Occupancy:    result.OccupancyPercent(),
		CapturedAt:   result.Timestamp,
	}
}

// result rebuilds the detection result a snapshot was made from
func (s Snapshot) result() *detection.Result {
	return &detection.Result{Timestamp: s.CapturedAt, Seats: s.Seats}
}

// MonitorResponse is what the live seat monitor polls
type MonitorResponse struct {
	RestaurantID string    `json:"restaurant_id"`
	Latest       *Snapshot `json:"latest,omitempty"`
	Cameras      []Camera  `json:"cameras"`
}

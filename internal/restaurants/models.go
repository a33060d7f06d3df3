package restaurants

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrNotOwner           = errors.New("restaurant belongs to another business")
	ErrInvalidOccupancy   = errors.New("occupancy must be between 0 and 100")
)

type Restaurant struct {
	ID                 uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	OwnerID            *uuid.UUID `json:"owner_id,omitempty" gorm:"type:uuid;index"`
	Name               string     `json:"name" gorm:"not null"`
	Slug               string     `json:"slug" gorm:"uniqueIndex;not null"`
	Cuisine            string     `json:"cuisine" gorm:"not null;index"`
	Rating             float64    `json:"rating" gorm:"not null;default:0"`
	Image              string     `json:"image"`
	Address            string     `json:"address"`
	District           string     `json:"district" gorm:"not null;index"`
	Occupancy          int        `json:"occupancy" gorm:"not null;default:0"`
	OccupancyUpdatedAt *time.Time `json:"occupancy_updated_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type OccupancyLevel string

const (
	OccupancyLow    OccupancyLevel = "low"
	OccupancyMedium OccupancyLevel = "medium"
	OccupancyHigh   OccupancyLevel = "high"
)

// LevelOf buckets an occupancy percentage for display
func LevelOf(pct int) OccupancyLevel {
	switch {
	case pct < 50:
		return OccupancyLow
	case pct < 80:
		return OccupancyMedium
	default:
		return OccupancyHigh
	}
}

// ListQuery filters the catalog. Q matches name or cuisine, case-insensitive;
// District must match exactly.
type ListQuery struct {
	Q        string `form:"q"`
	District string `form:"district"`
}

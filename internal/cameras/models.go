package cameras

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCameraNotFound  = errors.New("camera not found")
	ErrCameraDisabled  = errors.New("camera is disabled")
	ErrNoActiveCameras = errors.New("no active cameras")
	ErrNoSnapshot      = errors.New("no seat snapshot yet")
)

type Type string

const (
	TypeIP   Type = "ip"
	TypeUSB  Type = "usb"
	TypeRTSP Type = "rtsp"
)

type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusError   Status = "error"
)

type Camera struct {
	ID            uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RestaurantID  uuid.UUID  `json:"restaurant_id" gorm:"type:uuid;not null;index"`
	Name          string     `json:"name" gorm:"not null"`
	Location      string     `json:"location"`
	Type          Type       `json:"type" gorm:"type:varchar(10);not null;default:'ip'"`
	URL           string     `json:"url"`
	Status        Status     `json:"status" gorm:"type:varchar(10);not null;default:'offline'"`
	Enabled       bool       `json:"enabled" gorm:"not null;default:true"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Camera) TableName() string {
	return "cameras"
}

// IsActive means enabled and reachable at the last check
func (c *Camera) IsActive() bool {
	return c.Enabled && c.Status == StatusOnline
}

package users

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleBusiness Role = "BUSINESS"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"not null;default:'CUSTOMER'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParseRole accepts any casing; unknown values are rejected
func ParseRole(role string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(role))); r {
	case RoleCustomer, RoleBusiness:
		return r, true
	}
	return "", false
}

package menus

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrItemUnavailable  = errors.New("menu item is not available")
	ErrInvalidCategory  = errors.New("invalid menu category")
)

type Category string

const (
	CategoryAppetizer Category = "APPETIZER"
	CategoryMain      Category = "MAIN"
	CategoryDessert   Category = "DESSERT"
	CategoryDrink     Category = "DRINK"
	CategorySide      Category = "SIDE"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryAppetizer, CategoryMain, CategoryDessert, CategoryDrink, CategorySide:
		return true
	}
	return false
}

// MenuItem is a catalog entry. Prices are whole won.
type MenuItem struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RestaurantID uuid.UUID `json:"restaurant_id" gorm:"type:uuid;not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        int64     `json:"price" gorm:"not null"`
	Image        string    `json:"image"`
	Category     Category  `json:"category" gorm:"not null;default:'MAIN'"`
	Available    bool      `json:"available" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

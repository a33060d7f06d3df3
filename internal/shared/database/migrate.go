package database

import (
	"zari/internal/cameras"
	"zari/internal/menus"
	"zari/internal/reservations"
	"zari/internal/restaurants"
	"zari/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&restaurants.Restaurant{},
		&menus.MenuItem{},
		&reservations.Reservation{},
		&reservations.ReservationItem{},
		&cameras.Camera{},
	)
}

package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the checks and composite indexes AutoMigrate cannot express
func MigrateConstraints(db *gorm.DB) error {
	statements := []string{
		`DO $$ BEGIN
			ALTER TABLE reservations
			ADD CONSTRAINT chk_reservations_status
			CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled'));
		EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,

		`DO $$ BEGIN
			ALTER TABLE restaurants
			ADD CONSTRAINT chk_restaurants_occupancy
			CHECK (occupancy BETWEEN 0 AND 100);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,

		// owner listings and stats filter by restaurant and date
		`CREATE INDEX IF NOT EXISTS idx_reservations_restaurant_date
		ON reservations (restaurant_id, date);`,

		// lifecycle sweep
		`CREATE INDEX IF NOT EXISTS idx_reservations_status_scheduled
		ON reservations (status, scheduled_at);`,

		`CREATE INDEX IF NOT EXISTS idx_cameras_active
		ON cameras (restaurant_id) WHERE enabled AND status = 'online';`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

package stats

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository aggregates reservations of one restaurant whose date is on or
// after since (YYYY-MM-DD).
type Repository interface {
	Summary(ctx context.Context, restaurantID uuid.UUID, since string) (*Summary, error)
	StatusBreakdown(ctx context.Context, restaurantID uuid.UUID, since string) ([]StatusCount, error)
	Daily(ctx context.Context, restaurantID uuid.UUID, since string) ([]DailyStat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Summary(ctx context.Context, restaurantID uuid.UUID, since string) (*Summary, error) {
	var summary Summary
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(DISTINCT COALESCE(customer_id::text, customer_name)) AS customers,
			COUNT(*) AS reservations,
			COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN total_amount ELSE 0 END), 0) AS revenue,
			COALESCE(AVG(cardinality(seats)), 0) AS average_seats
		FROM reservations
		WHERE restaurant_id = ? AND date >= ?
	`, restaurantID, since).Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation summary: %w", err)
	}
	return &summary, nil
}

func (r *repository) StatusBreakdown(ctx context.Context, restaurantID uuid.UUID, since string) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS count
		FROM reservations
		WHERE restaurant_id = ? AND date >= ?
		GROUP BY status
	`, restaurantID, since).Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get status breakdown: %w", err)
	}
	return counts, nil
}

func (r *repository) Daily(ctx context.Context, restaurantID uuid.UUID, since string) ([]DailyStat, error) {
	var daily []DailyStat
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			date,
			COUNT(*) AS reservations,
			COALESCE(SUM(cardinality(seats)), 0) AS seats,
			COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN total_amount ELSE 0 END), 0) AS revenue
		FROM reservations
		WHERE restaurant_id = ? AND date >= ?
		GROUP BY date
		ORDER BY date ASC
	`, restaurantID, since).Scan(&daily).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}
	return daily, nil
}

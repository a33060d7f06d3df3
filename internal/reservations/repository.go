package reservations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, reservation *Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	List(ctx context.Context, query ListQuery) ([]Reservation, error)
	// Update writes updates only while the stored status is still from
	Update(ctx context.Context, id uuid.UUID, from Status, updates map[string]interface{}) error
	// TransitionStatus moves id from one status to another and fails with
	// ErrStatusConflict if the stored status is no longer from
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status, at time.Time) error

	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]Reservation, error)
	ListConfirmedScheduledBefore(ctx context.Context, cutoff time.Time) ([]Reservation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Reservation, error) {
	var list []Reservation
	err := r.applyFilters(r.db.WithContext(ctx).Model(&Reservation{}), query).
		Preload("Items").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, from Status, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Reservation{}).Where("id = ? AND status = ?", id, from).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		var count int64
		if err := tx.Model(&Reservation{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrReservationNotFound
		}
		return ErrStatusConflict
	})
}

func (r *repository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status, at time.Time) error {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": at,
	}
	if to == StatusCancelled {
		updates["cancelled_at"] = at
	}

	result := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *repository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]Reservation, error) {
	var list []Reservation
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", StatusPending, cutoff).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) ListConfirmedScheduledBefore(ctx context.Context, cutoff time.Time) ([]Reservation, error) {
	var list []Reservation
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at < ?", StatusConfirmed, cutoff).
		Order("scheduled_at ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) applyFilters(query *gorm.DB, filters ListQuery) *gorm.DB {
	if id, err := uuid.Parse(filters.RestaurantID); err == nil {
		query = query.Where("restaurant_id = ?", id)
	}
	if id, err := uuid.Parse(filters.CustomerID); err == nil {
		query = query.Where("customer_id = ?", id)
	}
	if filters.Date != "" {
		query = query.Where("date = ?", filters.Date)
	}
	if Status(filters.Status).IsValid() {
		query = query.Where("status = ?", filters.Status)
	}
	return query
}

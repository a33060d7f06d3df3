package cameras

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, camera *Camera) error
	GetByID(ctx context.Context, id uuid.UUID) (*Camera, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Camera, error)
	// ListActive returns enabled online cameras; uuid.Nil lists every restaurant
	ListActive(ctx context.Context, restaurantID uuid.UUID) ([]Camera, error)
	Save(ctx context.Context, camera *Camera) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, camera *Camera) error {
	return r.db.WithContext(ctx).Create(camera).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Camera, error) {
	var camera Camera
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&camera).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCameraNotFound
		}
		return nil, err
	}
	return &camera, nil
}

func (r *repository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Camera, error) {
	var list []Camera
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) ListActive(ctx context.Context, restaurantID uuid.UUID) ([]Camera, error) {
	query := r.db.WithContext(ctx).Where("enabled = ? AND status = ?", true, StatusOnline)
	if restaurantID != uuid.Nil {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	var list []Camera
	err := query.Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *repository) Save(ctx context.Context, camera *Camera) error {
	return r.db.WithContext(ctx).Save(camera).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Camera{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCameraNotFound
	}
	return nil
}

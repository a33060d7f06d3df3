package restaurants

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// likeEscaper makes user input match literally inside a LIKE pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Repository interface {
	Create(ctx context.Context, restaurant *Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Restaurant, error)
	List(ctx context.Context, query ListQuery) ([]Restaurant, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Restaurant, error)
	Districts(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Restaurant, error)
	UpdateOccupancy(ctx context.Context, id uuid.UUID, pct int, at time.Time) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, restaurant *Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Restaurant, error) {
	var restaurant Restaurant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Restaurant, error) {
	db := r.db.WithContext(ctx).Model(&Restaurant{})

	if q := strings.TrimSpace(query.Q); q != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		db = db.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(cuisine) LIKE ? ESCAPE '\'`, like, like)
	}
	if query.District != "" {
		db = db.Where("district = ?", query.District)
	}

	var list []Restaurant
	if err := db.Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Restaurant, error) {
	var list []Restaurant
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *repository) Districts(ctx context.Context) ([]string, error) {
	var districts []string
	err := r.db.WithContext(ctx).Model(&Restaurant{}).
		Distinct("district").
		Order("district ASC").
		Pluck("district", &districts).Error
	return districts, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Restaurant, error) {
	result := r.db.WithContext(ctx).Model(&Restaurant{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRestaurantNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *repository) UpdateOccupancy(ctx context.Context, id uuid.UUID, pct int, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&Restaurant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"occupancy": pct, "occupancy_updated_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Restaurant{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

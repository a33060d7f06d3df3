package restaurants

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zari/internal/shared/constants"
	"zari/pkg/cache"
	"zari/pkg/logger"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	List(ctx context.Context, query ListQuery) ([]RestaurantResponse, error)
	Districts(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id uuid.UUID) (*RestaurantResponse, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]RestaurantResponse, error)
	Create(ctx context.Context, ownerID uuid.UUID, req CreateRestaurantRequest) (*RestaurantResponse, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, req UpdateRestaurantRequest) (*RestaurantResponse, error)

	// AssertOwner returns ErrNotOwner unless ownerID owns the restaurant
	AssertOwner(ctx context.Context, restaurantID, ownerID uuid.UUID) error
	SetOccupancy(ctx context.Context, id uuid.UUID, pct int) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) invalidate(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_RESTAURANTS); err != nil {
		s.log.Warn("restaurant cache invalidation failed", "error", err)
	}
}

func (s *service) List(ctx context.Context, query ListQuery) ([]RestaurantResponse, error) {
	query.Q = strings.TrimSpace(query.Q)
	fetch := func() (interface{}, error) {
		list, err := s.repo.List(ctx, query)
		if err != nil {
			return nil, err
		}
		out := make([]RestaurantResponse, 0, len(list))
		for i := range list {
			out = append(out, toResponse(&list[i]))
		}
		return out, nil
	}

	if s.cacheService == nil {
		v, err := fetch()
		if err != nil {
			return nil, err
		}
		return v.([]RestaurantResponse), nil
	}

	var out []RestaurantResponse
	key := constants.BuildRestaurantListKey(strings.ToLower(query.Q), query.District)
	if err := s.cacheService.GetOrSet(ctx, key, constants.TTL_RESTAURANTS_LIST, fetch, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Districts(ctx context.Context) ([]string, error) {
	if s.cacheService == nil {
		return s.repo.Districts(ctx)
	}
	var out []string
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_RESTAURANTS_DISTRICTS, constants.TTL_RESTAURANT_DISTRICTS,
		func() (interface{}, error) { return s.repo.Districts(ctx) }, &out)
	return out, err
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*RestaurantResponse, error) {
	key := constants.BuildRestaurantDetailKey(id.String())
	if s.cacheService != nil {
		var cached RestaurantResponse
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	restaurant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(restaurant)
	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, key, resp, constants.TTL_RESTAURANT_DETAIL)
	}
	return &resp, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]RestaurantResponse, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]RestaurantResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	return out, nil
}

// uniqueSlug derives a slug from name, suffixing it when already taken
func (s *service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "restaurant"
	}
	candidate := base
	for i := 0; i < 5; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + uuid.NewString()[:6]
	}
	return "", fmt.Errorf("could not find a free slug for %q", name)
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateRestaurantRequest) (*RestaurantResponse, error) {
	slugValue, err := s.uniqueSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	restaurant := &Restaurant{
		OwnerID:  &ownerID,
		Name:     strings.TrimSpace(req.Name),
		Slug:     slugValue,
		Cuisine:  req.Cuisine,
		Rating:   req.Rating,
		Image:    req.Image,
		Address:  req.Address,
		District: req.District,
	}
	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	resp := toResponse(restaurant)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, id, ownerID uuid.UUID, req UpdateRestaurantRequest) (*RestaurantResponse, error) {
	if err := s.AssertOwner(ctx, id, ownerID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Cuisine != nil {
		updates["cuisine"] = *req.Cuisine
	}
	if req.District != nil {
		updates["district"] = *req.District
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	restaurant, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	resp := toResponse(restaurant)
	return &resp, nil
}

func (s *service) AssertOwner(ctx context.Context, restaurantID, ownerID uuid.UUID) error {
	restaurant, err := s.repo.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if restaurant.OwnerID == nil || *restaurant.OwnerID != ownerID {
		return ErrNotOwner
	}
	return nil
}

func (s *service) SetOccupancy(ctx context.Context, id uuid.UUID, pct int) error {
	if pct < 0 || pct > 100 {
		return ErrInvalidOccupancy
	}
	if err := s.repo.UpdateOccupancy(ctx, id, pct, time.Now().UTC()); err != nil {
		if errors.Is(err, ErrRestaurantNotFound) {
			return err
		}
		return fmt.Errorf("update occupancy: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

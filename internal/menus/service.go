package menus

import (
	"context"
	"fmt"

	"zari/internal/shared/constants"
	"zari/pkg/cache"
	"zari/pkg/logger"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// OwnerChecker is satisfied by restaurants.Service
type OwnerChecker interface {
	AssertOwner(ctx context.Context, restaurantID, ownerID uuid.UUID) error
}

type Service interface {
	SetCacheService(cacheService cache.Service)

	List(ctx context.Context, restaurantID uuid.UUID, onlyAvailable bool) ([]MenuItem, error)
	// Resolve returns an orderable item of the given restaurant
	Resolve(ctx context.Context, restaurantID, itemID uuid.UUID) (*MenuItem, error)

	Create(ctx context.Context, ownerID, restaurantID uuid.UUID, req CreateMenuItemRequest) (*MenuItem, error)
	Update(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateMenuItemRequest) (*MenuItem, error)
	Delete(ctx context.Context, ownerID, itemID uuid.UUID) error
	ToggleAvailability(ctx context.Context, ownerID, itemID uuid.UUID) (*MenuItem, error)
}

type service struct {
	repo         Repository
	owners       OwnerChecker
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository, owners OwnerChecker, log *logger.Logger) Service {
	return &service{repo: repo, owners: owners, log: log}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) invalidate(ctx context.Context, restaurantID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildRestaurantMenuKey(restaurantID.String())); err != nil {
		s.log.Warn("menu cache invalidation failed", "restaurant_id", restaurantID, "error", err)
	}
}

func (s *service) List(ctx context.Context, restaurantID uuid.UUID, onlyAvailable bool) ([]MenuItem, error) {
	var items []MenuItem
	if s.cacheService != nil {
		err := s.cacheService.GetOrSet(ctx, constants.BuildRestaurantMenuKey(restaurantID.String()), constants.TTL_RESTAURANT_MENU,
			func() (interface{}, error) { return s.repo.ListByRestaurant(ctx, restaurantID) }, &items)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		if items, err = s.repo.ListByRestaurant(ctx, restaurantID); err != nil {
			return nil, err
		}
	}

	if !onlyAvailable {
		return items, nil
	}
	out := items[:0]
	for _, it := range items {
		if it.Available {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *service) Resolve(ctx context.Context, restaurantID, itemID uuid.UUID) (*MenuItem, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != restaurantID {
		return nil, ErrMenuItemNotFound
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}
	return item, nil
}

func (s *service) Create(ctx context.Context, ownerID, restaurantID uuid.UUID, req CreateMenuItemRequest) (*MenuItem, error) {
	if err := s.owners.AssertOwner(ctx, restaurantID, ownerID); err != nil {
		return nil, err
	}

	item := &MenuItem{RestaurantID: restaurantID, Available: true}
	if err := copier.Copy(item, &req); err != nil {
		return nil, fmt.Errorf("map menu item: %w", err)
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if !item.Category.IsValid() {
		return nil, ErrInvalidCategory
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, restaurantID)
	return item, nil
}

// ownedItem loads an item and checks the caller manages its restaurant
func (s *service) ownedItem(ctx context.Context, ownerID, itemID uuid.UUID) (*MenuItem, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.owners.AssertOwner(ctx, item.RestaurantID, ownerID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateMenuItemRequest) (*MenuItem, error) {
	item, err := s.ownedItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Category != nil {
		c := Category(*req.Category)
		if !c.IsValid() {
			return nil, ErrInvalidCategory
		}
		item.Category = c
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, item.RestaurantID)
	return item, nil
}

func (s *service) Delete(ctx context.Context, ownerID, itemID uuid.UUID) error {
	item, err := s.ownedItem(ctx, ownerID, itemID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return err
	}
	s.invalidate(ctx, item.RestaurantID)
	return nil
}

func (s *service) ToggleAvailability(ctx context.Context, ownerID, itemID uuid.UUID) (*MenuItem, error) {
	item, err := s.ownedItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}
	item.Available = !item.Available
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, item.RestaurantID)
	return item, nil
}

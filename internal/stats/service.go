package stats

import (
	"context"
	"time"

	"zari/internal/restaurants"
	"zari/internal/shared/constants"
	"zari/pkg/cache"
	"zari/pkg/logger"

	"github.com/google/uuid"
)

// RestaurantReader is the part of the restaurant catalog stats needs
type RestaurantReader interface {
	AssertOwner(ctx context.Context, restaurantID, ownerID uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*restaurants.RestaurantResponse, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	ForRestaurant(ctx context.Context, ownerID, restaurantID uuid.UUID, days int) (*RestaurantStats, error)
}

type service struct {
	repo         Repository
	restaurants  RestaurantReader
	cacheService cache.Service
	log          *logger.Logger
	now          func() time.Time
}

func NewService(repo Repository, restaurants RestaurantReader, log *logger.Logger) Service {
	return &service{repo: repo, restaurants: restaurants, log: log.WithComponent("stats"), now: time.Now}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// ForRestaurant aggregates the last days reservation dates, today included.
// Occupancy is read live and never cached.
func (s *service) ForRestaurant(ctx context.Context, ownerID, restaurantID uuid.UUID, days int) (*RestaurantStats, error) {
	if err := s.restaurants.AssertOwner(ctx, restaurantID, ownerID); err != nil {
		return nil, err
	}
	days = ClampDays(days)

	fetch := func() (interface{}, error) {
		return s.aggregate(ctx, restaurantID, days)
	}

	var out RestaurantStats
	if s.cacheService == nil {
		v, err := fetch()
		if err != nil {
			return nil, err
		}
		out = *v.(*RestaurantStats)
	} else {
		key := constants.BuildStatsKey(restaurantID.String(), days)
		if err := s.cacheService.GetOrSet(ctx, key, constants.TTL_STATS, fetch, &out); err != nil {
			return nil, err
		}
	}

	restaurant, err := s.restaurants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	out.Occupancy = restaurant.Occupancy
	return &out, nil
}

func (s *service) aggregate(ctx context.Context, restaurantID uuid.UUID, days int) (*RestaurantStats, error) {
	since := s.now().AddDate(0, 0, -(days - 1)).Format("2006-01-02")

	summary, err := s.repo.Summary(ctx, restaurantID, since)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.StatusBreakdown(ctx, restaurantID, since)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.Daily(ctx, restaurantID, since)
	if err != nil {
		return nil, err
	}

	breakdown := map[string]int{"pending": 0, "confirmed": 0, "completed": 0, "cancelled": 0}
	for _, c := range counts {
		breakdown[c.Status] = c.Count
	}
	if daily == nil {
		daily = []DailyStat{}
	}

	s.log.Debug("stats aggregated", "restaurant_id", restaurantID, "days", days, "reservations", summary.Reservations)
	return &RestaurantStats{
		RestaurantID:    restaurantID.String(),
		Days:            days,
		Since:           since,
		Summary:         *summary,
		StatusBreakdown: breakdown,
		Daily:           daily,
	}, nil
}

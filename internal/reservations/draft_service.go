package reservations

import (
	"context"
	"errors"
	"time"

	"zari/internal/ordering"
	"zari/internal/seats"
	"zari/pkg/logger"

	"github.com/google/uuid"
)

// SeatStatusReader reports the detected seat states of a restaurant, keyed by
// seat id. An empty map means nothing has been detected yet.
type SeatStatusReader interface {
	SeatStatuses(ctx context.Context, restaurantID uuid.UUID) (map[int]seats.Status, error)
}

type DraftConfig struct {
	Layout        seats.Layout
	OccupiedRatio float64
	SubmitLatency time.Duration
}

// DraftService runs draft commands for one customer and restaurant at a time.
// Commands that fail validation still return the updated draft alongside the error.
type DraftService interface {
	Get(ctx context.Context, userID, restaurantID uuid.UUID, refresh bool) (*DraftResponse, error)
	Discard(ctx context.Context, userID, restaurantID uuid.UUID) error

	SetItem(ctx context.Context, userID, restaurantID uuid.UUID, req SetItemRequest) (*DraftResponse, error)
	RemoveItem(ctx context.Context, userID, restaurantID uuid.UUID, itemID string) (*DraftResponse, error)
	IncrementItem(ctx context.Context, userID, restaurantID uuid.UUID, itemID string) (*DraftResponse, error)
	DecrementItem(ctx context.Context, userID, restaurantID uuid.UUID, itemID string) (*DraftResponse, error)

	ToggleSeat(ctx context.Context, userID, restaurantID uuid.UUID, seatID int) (*DraftResponse, error)
	SetSchedule(ctx context.Context, userID, restaurantID uuid.UUID, req ScheduleRequest) (*DraftResponse, error)

	ConfirmMenu(ctx context.Context, userID, restaurantID uuid.UUID) (*DraftResponse, error)
	RequestConfirmation(ctx context.Context, userID, restaurantID uuid.UUID) (*DraftResponse, error)
	CancelConfirmation(ctx context.Context, userID, restaurantID uuid.UUID) (*DraftResponse, error)
	Submit(ctx context.Context, customer Actor, restaurantID uuid.UUID) (*DraftResponse, error)
}

type draftService struct {
	store        *DraftStore
	reservations Service
	restaurants  RestaurantDirectory
	menus        MenuResolver
	detections   SeatStatusReader
	cfg          DraftConfig
	log          *logger.Logger
}

func NewDraftService(store *DraftStore, reservations Service, restaurants RestaurantDirectory, menus MenuResolver,
	detections SeatStatusReader, cfg DraftConfig, log *logger.Logger) DraftService {
	if !cfg.Layout.Valid() {
		cfg.Layout = seats.DefaultLayout
	}
	return &draftService{
		store:        store,
		reservations: reservations,
		restaurants:  restaurants,
		menus:        menus,
		detections:   detections,
		cfg:          cfg,
		log:          log.WithComponent("reservations.draft"),
	}
}

// seatSource prefers detected seat states and falls back to random occupancy
func (s *draftService) seatSource(ctx context.Context, restaurantID uuid.UUID) seats.StatusSource {
	fallback := seats.NewRandomSource(s.cfg.OccupiedRatio, nil)
	if s.detections == nil {
		return fallback
	}
	known, err := s.detections.SeatStatuses(ctx, restaurantID)
	if err != nil {
		s.log.Warn("seat snapshot unavailable", "restaurant_id", restaurantID, "error", err)
		return fallback
	}
	if len(known) == 0 {
		return fallback
	}
	return seats.StaticSource{Known: known, Fallback: fallback}
}

// load restores the stored draft or starts a new one for an existing restaurant
func (s *draftService) load(ctx context.Context, userID, restaurantID uuid.UUID) (*Assembler, error) {
	snap, err := s.store.Load(ctx, userID.String(), restaurantID.String())
	if err == nil {
		a, rerr := RestoreAssembler(*snap, s.cfg.SubmitLatency)
		if rerr == nil {
			return a, nil
		}
		s.log.Warn("discarding unreadable draft", "user_id", userID, "restaurant_id", restaurantID, "error", rerr)
	} else if !errors.Is(err, ErrDraftNotFound) {
		return nil, err
	}

	if _, err := s.restaurants.Get(ctx, restaurantID); err != nil {
		return nil, err
	}
	selector := seats.NewSelector(s.cfg.Layout, s.seatSource(ctx, restaurantID), nil)
	return NewAssembler(restaurantID.String(), selector, s.cfg.SubmitLatency), nil
}

// mutate runs fn on the locked draft and always persists the result, so a
// failed validation still records the routed state
func (s *draftService) mutate(ctx context.Context, userID, restaurantID uuid.UUID, fn func(a *Assembler) error) (*DraftResponse, error) {
	lock, err := s.store.Lock(ctx, userID.String(), restaurantID.String())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			s.log.Warn("failed to release draft lock", "error", err)
		}
	}()

	a, err := s.load(ctx, userID, restaurantID)
	if err != nil {
		return nil, err
	}

	opErr := fn(a)
	snap := a.Snapshot()
	if err := s.store.Save(context.WithoutCancel(ctx), userID.String(), restaurantID.String(), snap); err != nil {
		return nil, err
	}
	return newDraftResponse(snap), opErr
}

func (s *draftService) Get(ctx context.Context, userID, restaurantID uuid.UUID, refresh bool) (*DraftResponse, error) {
	if !refresh {
		snap, err := s.store.Load(ctx, userID.String(), restaurantID.String())
		if err == nil {
			return newDraftResponse(*snap), nil
		}
		if !errors.Is(err, ErrDraftNotFound) {
			return nil, err
		}
	}

	return s.mutate(ctx, userID, restaurantID, func(a *Assembler) error {
		if !refresh {
			return nil
		}
		// selected seats survive; everything else is re-derived
		selected := a.Selector().SelectedIDs()
		layout := a.Selector().Layout()
		return a.ReplaceSelector(seats.NewSelector(layout, s.seatSource(ctx, restaurantID), selected))
	})
}

func (s *draftService) Discard(ctx context.Context, userID, restaurantID uuid.UUID) error {
	lock, err := s.store.Lock(ctx, userID.String(), restaurantID.String())
	if err != nil {
		return err
	}
	defer lock.Release(context.WithoutCancel(ctx))
	return s.store.Delete(ctx, userID.String(), restaurantID.String())
}

func (s *draftService) SetItem(ctx context.Context, userID, restaurantID uuid.UUID, req SetItemRequest) (*DraftResponse, error) {
	itemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		return nil, ordering.ErrItemNotInOrder
	}
	item, err := s.menus.Resolve(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}

	line := ordering.MenuItem{ID: item.ID.String(), Name: item.Name, Price: item.Price, Image: item.Image}
	return s.mutate(ctx, userID, restaurantID, func(a *Assembler) error {
		return a.SetItem(line, ordering.ClampQuantity(req.Quantity))
	})
}

func (s *draftService) RemoveItem(ctx context.Context, userID, restaurantID uuid.UUID, itemID string) (*DraftResponse, error) {
	return s.mutate(ctx, userID, restaurantID, func(a *Assembler) error {
		return a.RemoveItem(itemID)
	})
}

func (s *draftService) IncrementItem(ctx context.Context, userID, restaurantID uuid.UUID, itemID string) (*DraftResponse, error) {
	return s.mutate(ctx, userID, restaurantID, func(a *Assembler) error {
		return a.IncrementItem(itemID)
	})
}

func (s *draftService) DecrementItem(ctx context.Context, userID, restaurantID uuid.UUID, itemID string) (*DraftResponse, error) {
	return s.mutate(ctx, userID, restaurantID, func(a *Assembler) error {
		return a.DecrementItem(itemID)
	})
}

func (s *draftService) ToggleSeat(ctx context.Context, userID, restaurantID uuid.UUID, seatID int) (*DraftResponse, error) {
	return s.mutate(ctx, userID, restaurantID, func(a *Assembler) error {
		_, err := a.ToggleSeat(seatID)
		return err
	})
}

func (s *draftService) SetSchedule(ctx context.Context, userID, restaurantID uuid.UUID, req ScheduleRequest) (*DraftResponse, error) {
	return s.mutate(ctx, userID, restaurantID, func(a *Assembler) error {
		return a.SetSchedule(req.Date, req.Time)
	})
}

func (s *draftService) ConfirmMenu(ctx context.Context, userID, restaurantID uuid.UUID) (*DraftResponse, error) {
	return s.mutate(ctx, userID, restaurantID, func(a *Assembler) error {
		return a.ConfirmMenu()
	})
}

func (s *draftService) RequestConfirmation(ctx context.Context, userID, restaurantID uuid.UUID) (*DraftResponse, error) {
	return s.mutate(ctx, userID, restaurantID, func(a *Assembler) error {
		return a.RequestConfirmation()
	})
}

func (s *draftService) CancelConfirmation(ctx context.Context, userID, restaurantID uuid.UUID) (*DraftResponse, error) {
	return s.mutate(ctx, userID, restaurantID, func(a *Assembler) error {
		return a.CancelConfirmation()
	})
}

// Submit holds the draft lock for the whole submission. The SUBMITTING state
// is persisted before the simulated latency so readers can see it.
func (s *draftService) Submit(ctx context.Context, customer Actor, restaurantID uuid.UUID) (*DraftResponse, error) {
	userID := customer.ID.String()
	submitter := SubmitterFunc(func(ctx context.Context, d Draft) (*Reservation, error) {
		labels := make([]string, 0, len(d.Seats))
		for _, ref := range d.Seats {
			labels = append(labels, ref.Label)
		}
		customerID := customer.ID
		return s.reservations.Create(ctx, NewReservation{
			RestaurantID: restaurantID,
			CustomerID:   &customerID,
			CustomerName: customer.Name,
			Date:         d.Date,
			Time:         d.Time,
			Seats:        labels,
			Lines:        d.Items,
		})
	})

	var reservation *Reservation
	resp, err := s.mutate(ctx, customer.ID, restaurantID, func(a *Assembler) error {
		a.OnSubmitting(func(a *Assembler) {
			if err := s.store.Save(context.WithoutCancel(ctx), userID, restaurantID.String(), a.Snapshot()); err != nil {
				s.log.Warn("failed to persist submitting state", "error", err)
			}
		})
		var err error
		reservation, err = a.Submit(ctx, submitter)
		return err
	})
	if resp != nil {
		resp.Reservation = reservation
	}
	return resp, err
}

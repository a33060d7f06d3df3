package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zari/internal/menus"
	"zari/internal/notifications"
	"zari/internal/ordering"
	"zari/internal/restaurants"
	"zari/internal/users"
	"zari/pkg/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/skip2/go-qrcode"
)

// RestaurantDirectory is satisfied by restaurants.Service
type RestaurantDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*restaurants.RestaurantResponse, error)
	AssertOwner(ctx context.Context, restaurantID, ownerID uuid.UUID) error
}

// MenuResolver is satisfied by menus.Service
type MenuResolver interface {
	Resolve(ctx context.Context, restaurantID, itemID uuid.UUID) (*menus.MenuItem, error)
}

// Notifier is satisfied by notifications.Service
type Notifier interface {
	Notify(ctx context.Context, alert *notifications.Alert)
}

// Actor is the authenticated caller of a reservation operation
type Actor struct {
	ID   uuid.UUID
	Name string
	Role users.Role
}

func (a Actor) IsBusiness() bool { return a.Role == users.RoleBusiness }

// NewReservation is the server-side input of Create
type NewReservation struct {
	RestaurantID uuid.UUID
	CustomerID   *uuid.UUID
	CustomerName string
	Date         string
	Time         string
	Seats        []string
	Lines        []ordering.Line
}

type Service interface {
	Create(ctx context.Context, in NewReservation) (*Reservation, error)
	CreateFromRequest(ctx context.Context, actor Actor, req CreateReservationRequest) (*Reservation, error)

	Get(ctx context.Context, actor Actor, id uuid.UUID) (*Reservation, error)
	List(ctx context.Context, actor Actor, query ListQuery) ([]Reservation, error)
	ListMine(ctx context.Context, customerID uuid.UUID) ([]Reservation, error)
	ListForRestaurant(ctx context.Context, ownerID, restaurantID uuid.UUID, query ListQuery) ([]Reservation, error)

	Patch(ctx context.Context, actor Actor, id uuid.UUID, req PatchReservationRequest) (*Reservation, error)
	Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*Reservation, error)
	Confirm(ctx context.Context, ownerID, id uuid.UUID) (*Reservation, error)
	Complete(ctx context.Context, ownerID, id uuid.UUID) (*Reservation, error)

	QRCode(ctx context.Context, actor Actor, id uuid.UUID) ([]byte, error)

	// SweepLifecycle confirms stale pending reservations and completes past confirmed ones
	SweepLifecycle(ctx context.Context, now time.Time) (confirmed, completed int, err error)
}

type service struct {
	repo             Repository
	restaurants      RestaurantDirectory
	menus            MenuResolver
	notifier         Notifier
	referencePrefix  string
	autoConfirmAfter time.Duration
	log              *logger.Logger
}

func NewService(repo Repository, restaurants RestaurantDirectory, menus MenuResolver, notifier Notifier,
	referencePrefix string, autoConfirmAfter time.Duration, log *logger.Logger) Service {
	return &service{
		repo:             repo,
		restaurants:      restaurants,
		menus:            menus,
		notifier:         notifier,
		referencePrefix:  referencePrefix,
		autoConfirmAfter: autoConfirmAfter,
		log:              log,
	}
}

// MissingFieldError reports the first required field left empty
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (s *service) Create(ctx context.Context, in NewReservation) (*Reservation, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	switch {
	case in.CustomerName == "":
		return nil, &MissingFieldError{Field: "customer_name"}
	case in.RestaurantID == uuid.Nil:
		return nil, &MissingFieldError{Field: "restaurant_id"}
	case in.Date == "":
		return nil, &MissingFieldError{Field: "date"}
	case in.Time == "":
		return nil, &MissingFieldError{Field: "time"}
	case len(in.Seats) == 0:
		return nil, &MissingFieldError{Field: "seats"}
	}

	scheduledAt, err := ParseSchedule(in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	restaurant, err := s.restaurants.Get(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reference, err := generateReference(s.referencePrefix, now)
	if err != nil {
		return nil, fmt.Errorf("generate reference: %w", err)
	}

	// total is always recomputed from the frozen lines
	order := ordering.FromLines(in.Lines)
	items := make([]ReservationItem, 0, order.Len())
	for _, line := range order.Lines() {
		items = append(items, ReservationItem{
			MenuItemID: line.ID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   line.Quantity,
		})
	}

	reservation := &Reservation{
		Reference:    reference,
		RestaurantID: in.RestaurantID,
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		Date:         in.Date,
		Time:         in.Time,
		ScheduledAt:  scheduledAt,
		Seats:        pq.StringArray(in.Seats),
		TotalAmount:  order.Total(),
		Status:       StatusPending,
		Items:        items,
	}
	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	customerID := ""
	if in.CustomerID != nil {
		customerID = in.CustomerID.String()
	}
	s.log.LogReservationCreated(ctx, reservation.ID.String(), restaurant.ID, customerID, reservation.TotalAmount)

	body := fmt.Sprintf("%s booked %d seat(s) at %s on %s %s",
		reservation.CustomerName, len(reservation.Seats), restaurant.Name, reservation.Date, reservation.Time)
	s.notify(ctx, notifications.AlertReservationCreated, restaurant.OwnerID, customerID, reservation, "New reservation "+reference, body)
	s.notify(ctx, notifications.AlertReservationCreated, customerID, "", reservation, "Reservation received "+reference, body)
	return reservation, nil
}

func (s *service) CreateFromRequest(ctx context.Context, actor Actor, req CreateReservationRequest) (*Reservation, error) {
	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, &MissingFieldError{Field: "restaurant_id"}
	}

	lines := make([]ordering.Line, 0, len(req.Items))
	for _, it := range req.Items {
		itemID, err := uuid.Parse(it.MenuItemID)
		if err != nil {
			return nil, menus.ErrMenuItemNotFound
		}
		item, err := s.menus.Resolve(ctx, restaurantID, itemID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, ordering.Line{
			MenuItem: ordering.MenuItem{ID: item.ID.String(), Name: item.Name, Price: item.Price, Image: item.Image},
			Quantity: ordering.ClampQuantity(it.Quantity),
		})
	}

	in := NewReservation{
		RestaurantID: restaurantID,
		CustomerName: req.CustomerName,
		Date:         req.Date,
		Time:         req.Time,
		Seats:        req.Seats,
		Lines:        lines,
	}
	if !actor.IsBusiness() {
		id := actor.ID
		in.CustomerID = &id
	} else if err := s.restaurants.AssertOwner(ctx, restaurantID, actor.ID); err != nil {
		return nil, err
	}
	return s.Create(ctx, in)
}

// authorize lets customers see their own reservations and owners see their restaurant's
func (s *service) authorize(ctx context.Context, actor Actor, r *Reservation) error {
	if actor.IsBusiness() {
		if err := s.restaurants.AssertOwner(ctx, r.RestaurantID, actor.ID); err != nil {
			if errors.Is(err, restaurants.ErrNotOwner) {
				return ErrForbidden
			}
			return err
		}
		return nil
	}
	if !r.IsOwnedBy(actor.ID) {
		return ErrForbidden
	}
	return nil
}

func (s *service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *service) List(ctx context.Context, actor Actor, query ListQuery) ([]Reservation, error) {
	if !actor.IsBusiness() {
		query.CustomerID = actor.ID.String()
		return s.repo.List(ctx, query)
	}

	restaurantID, err := uuid.Parse(query.RestaurantID)
	if err != nil {
		return nil, &MissingFieldError{Field: "restaurant_id"}
	}
	return s.ListForRestaurant(ctx, actor.ID, restaurantID, query)
}

func (s *service) ListMine(ctx context.Context, customerID uuid.UUID) ([]Reservation, error) {
	return s.repo.List(ctx, ListQuery{CustomerID: customerID.String()})
}

func (s *service) ListForRestaurant(ctx context.Context, ownerID, restaurantID uuid.UUID, query ListQuery) ([]Reservation, error) {
	if err := s.restaurants.AssertOwner(ctx, restaurantID, ownerID); err != nil {
		return nil, err
	}
	query.RestaurantID = restaurantID.String()
	return s.repo.List(ctx, query)
}

// Patch authorises and validates the whole request before writing; fields and
// status then land in a single guarded update
func (s *service) Patch(ctx context.Context, actor Actor, id uuid.UUID, req PatchReservationRequest) (*Reservation, error) {
	reservation, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	previous := reservation.Status
	var next Status
	if req.Status != nil && Status(*req.Status) != previous {
		next = Status(*req.Status)
		if !actor.IsBusiness() && next != StatusCancelled {
			return nil, ErrForbidden
		}
		if err := checkTransition(previous, next); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if req.CustomerName != nil && strings.TrimSpace(*req.CustomerName) != "" {
		updates["customer_name"] = strings.TrimSpace(*req.CustomerName)
	}
	if req.Date != nil || req.Time != nil {
		date, clock := reservation.Date, reservation.Time
		if req.Date != nil {
			date = *req.Date
		}
		if req.Time != nil {
			clock = *req.Time
		}
		scheduledAt, err := ParseSchedule(date, clock)
		if err != nil {
			return nil, err
		}
		updates["date"] = date
		updates["time"] = clock
		updates["scheduled_at"] = scheduledAt
	}
	if req.Seats != nil {
		if len(*req.Seats) == 0 {
			return nil, &MissingFieldError{Field: "seats"}
		}
		updates["seats"] = pq.StringArray(*req.Seats)
	}
	if len(updates) > 0 && !previous.IsEditable() {
		return nil, ErrReservationClosed
	}
	if len(updates) == 0 && next == "" {
		return reservation, nil
	}

	now := time.Now()
	if next != "" {
		updates["status"] = next
		if next == StatusCancelled {
			updates["cancelled_at"] = now
		}
	}
	if err := s.repo.Update(ctx, id, previous, updates); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if next != "" {
		s.announce(ctx, updated, previous, next, actor.ID.String())
	}
	return updated, nil
}

func (s *service) Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*Reservation, error) {
	reservation, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, reservation, StatusCancelled, actor.ID.String())
}

func (s *service) Confirm(ctx context.Context, ownerID, id uuid.UUID) (*Reservation, error) {
	reservation, err := s.Get(ctx, Actor{ID: ownerID, Role: users.RoleBusiness}, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, reservation, StatusConfirmed, ownerID.String())
}

func (s *service) Complete(ctx context.Context, ownerID, id uuid.UUID) (*Reservation, error) {
	reservation, err := s.Get(ctx, Actor{ID: ownerID, Role: users.RoleBusiness}, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, reservation, StatusCompleted, ownerID.String())
}

// transition applies one lifecycle step to a loaded reservation
func checkTransition(from, next Status) error {
	if from.CanTransitionTo(next) {
		return nil
	}
	if next == StatusCancelled {
		return ErrNotCancellable
	}
	return ErrInvalidTransition
}

func (s *service) transition(ctx context.Context, r *Reservation, next Status, actorID string) (*Reservation, error) {
	if err := checkTransition(r.Status, next); err != nil {
		return nil, err
	}

	now := time.Now()
	previous := r.Status
	if err := s.repo.TransitionStatus(ctx, r.ID, previous, next, now); err != nil {
		return nil, err
	}
	r.Status = next
	r.UpdatedAt = now
	if next == StatusCancelled {
		r.CancelledAt = &now
	}

	s.announce(ctx, r, previous, next, actorID)
	return r, nil
}

// announce logs a status change and alerts the other parties
func (s *service) announce(ctx context.Context, r *Reservation, previous, next Status, actorID string) {
	customerID := ""
	if r.CustomerID != nil {
		customerID = r.CustomerID.String()
	}

	if next == StatusCancelled {
		s.log.LogReservationCancelled(ctx, r.ID.String(), r.RestaurantID.String(), actorID)
		body := fmt.Sprintf("Reservation %s for %s %s was cancelled", r.Reference, r.Date, r.Time)
		s.notify(ctx, notifications.AlertReservationCancelled, customerID, actorID, r, "Reservation cancelled", body)
		if restaurant, err := s.restaurants.Get(ctx, r.RestaurantID); err == nil {
			s.notify(ctx, notifications.AlertReservationCancelled, restaurant.OwnerID, actorID, r, "Reservation cancelled", body)
		}
		return
	}
	s.log.LogReservationStatusChanged(ctx, r.ID.String(), previous.String(), next.String())
	body := fmt.Sprintf("Reservation %s is now %s", r.Reference, next)
	s.notify(ctx, notifications.AlertReservationStatus, customerID, actorID, r, "Reservation "+next.String(), body)
}

// notify skips empty recipients and never messages the actor about their own action
func (s *service) notify(ctx context.Context, kind notifications.AlertType, recipientID, actorID string,
	r *Reservation, title, body string) {
	if s.notifier == nil || recipientID == "" || recipientID == actorID {
		return
	}
	alert := notifications.NewAlertBuilder(kind).
		To(recipientID).
		From(actorID, "").
		WithText(title, body).
		WithReservation(r.ID.String(), r.RestaurantID.String()).
		Build()
	s.notifier.Notify(ctx, alert)
}

// QRCode encodes the reservation reference as a 256px PNG
func (s *service) QRCode(ctx context.Context, actor Actor, id uuid.UUID) ([]byte, error) {
	reservation, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !reservation.Status.IsActive() {
		return nil, ErrReservationInactive
	}
	content := fmt.Sprintf("zari:reservation:%s:%s", reservation.Reference, reservation.ID)
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

func (s *service) SweepLifecycle(ctx context.Context, now time.Time) (int, int, error) {
	stale, err := s.repo.ListPendingCreatedBefore(ctx, now.Add(-s.autoConfirmAfter))
	if err != nil {
		return 0, 0, fmt.Errorf("list pending: %w", err)
	}
	confirmed := 0
	for i := range stale {
		if _, err := s.transition(ctx, &stale[i], StatusConfirmed, ""); err != nil {
			if errors.Is(err, ErrStatusConflict) {
				continue
			}
			return confirmed, 0, err
		}
		confirmed++
	}

	due, err := s.repo.ListConfirmedScheduledBefore(ctx, now)
	if err != nil {
		return confirmed, 0, fmt.Errorf("list confirmed: %w", err)
	}
	completed := 0
	for i := range due {
		if _, err := s.transition(ctx, &due[i], StatusCompleted, ""); err != nil {
			if errors.Is(err, ErrStatusConflict) {
				continue
			}
			return confirmed, completed, err
		}
		completed++
	}
	return confirmed, completed, nil
}

package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"zari/internal/menus"
	"zari/internal/restaurants"
	"zari/internal/seats"
	"zari/internal/shared/constants"
	"zari/internal/users"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type draftFixture struct {
	mr           *miniredis.Miniredis
	store        *DraftStore
	reservations *MockService
	restaurants  *MockRestaurants
	menus        *MockMenus
	drafts       DraftService

	customer     Actor
	restaurantID uuid.UUID
	itemID       uuid.UUID
}

func newDraftFixture(t *testing.T, detections SeatStatusReader) *draftFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &draftFixture{
		mr:           mr,
		store:        NewDraftStore(client, time.Hour, 30*time.Second),
		reservations: new(MockService),
		restaurants:  new(MockRestaurants),
		menus:        new(MockMenus),
		customer:     Actor{ID: uuid.New(), Name: "Jiwoo", Role: users.RoleCustomer},
		restaurantID: uuid.New(),
		itemID:       uuid.New(),
	}
	f.restaurants.On("Get", mock.Anything, f.restaurantID).
		Return(&restaurants.RestaurantResponse{ID: f.restaurantID.String(), Name: "Han River Grill"}, nil).Maybe()
	f.menus.On("Resolve", mock.Anything, f.restaurantID, f.itemID).
		Return(&menus.MenuItem{ID: f.itemID, RestaurantID: f.restaurantID, Name: "Galbi", Price: 25000, Available: true}, nil).Maybe()

	f.drafts = NewDraftService(f.store, f.reservations, f.restaurants, f.menus, detections, DraftConfig{
		Layout:        seats.DefaultLayout,
		OccupiedRatio: 0,
	}, quietLogger())
	return f
}

func (f *draftFixture) ctx() context.Context { return context.Background() }

func TestDraftService_FullFlow(t *testing.T) {
	f := newDraftFixture(t, nil)
	id := f.customer.ID

	draft, err := f.drafts.SetItem(f.ctx(), id, f.restaurantID, SetItemRequest{MenuItemID: f.itemID.String(), Quantity: 0})
	require.NoError(t, err)
	require.Len(t, draft.OrderItems, 1)
	assert.Equal(t, 1, draft.OrderItems[0].Quantity)

	draft, err = f.drafts.IncrementItem(f.ctx(), id, f.restaurantID, f.itemID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(50000), draft.Total)

	draft, err = f.drafts.ConfirmMenu(f.ctx(), id, f.restaurantID)
	require.NoError(t, err)
	assert.Equal(t, StateComposingSeats, draft.State)
	assert.Equal(t, 20, draft.Counts.Available)

	draft, err = f.drafts.ToggleSeat(f.ctx(), id, f.restaurantID, 7)
	require.NoError(t, err)
	assert.Equal(t, []seats.SelectedSeatRef{{ID: 7, Label: "B2"}}, draft.SelectedSeats)

	_, err = f.drafts.SetSchedule(f.ctx(), id, f.restaurantID, ScheduleRequest{Date: "2026-11-02", Time: "19:00"})
	require.NoError(t, err)

	draft, err = f.drafts.RequestConfirmation(f.ctx(), id, f.restaurantID)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingConfirmation, draft.State)

	created := &Reservation{ID: uuid.New(), Reference: "ZR-20261102-AAAAAA"}
	f.reservations.On("Create", mock.Anything, mock.MatchedBy(func(in NewReservation) bool {
		return in.RestaurantID == f.restaurantID &&
			in.CustomerID != nil && *in.CustomerID == id &&
			in.CustomerName == "Jiwoo" &&
			len(in.Seats) == 1 && in.Seats[0] == "B2" &&
			len(in.Lines) == 1 && in.Lines[0].Quantity == 2
	})).Return(created, nil).Once()

	draft, err = f.drafts.Submit(f.ctx(), f.customer, f.restaurantID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, draft.Outcome)
	assert.Equal(t, StateComposingMenu, draft.State)
	assert.Equal(t, created.ID.String(), draft.ReservationID)
	assert.Same(t, created, draft.Reservation)
	assert.Empty(t, draft.OrderItems)
	assert.Empty(t, draft.SelectedSeats)
	f.reservations.AssertExpectations(t)
}

func TestDraftService_SubmitFailureKeepsDraft(t *testing.T) {
	f := newDraftFixture(t, nil)
	id := f.customer.ID
	_, err := f.drafts.SetItem(f.ctx(), id, f.restaurantID, SetItemRequest{MenuItemID: f.itemID.String(), Quantity: 1})
	require.NoError(t, err)
	_, err = f.drafts.ToggleSeat(f.ctx(), id, f.restaurantID, 1)
	require.NoError(t, err)
	_, err = f.drafts.SetSchedule(f.ctx(), id, f.restaurantID, ScheduleRequest{Date: "2026-11-02", Time: "19:00"})
	require.NoError(t, err)
	_, err = f.drafts.RequestConfirmation(f.ctx(), id, f.restaurantID)
	require.NoError(t, err)

	boom := errors.New("insert failed")
	f.reservations.On("Create", mock.Anything, mock.Anything).Return(nil, boom)

	draft, err := f.drafts.Submit(f.ctx(), f.customer, f.restaurantID)
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, draft)
	assert.Equal(t, OutcomeFailed, draft.Outcome)
	assert.Equal(t, StateAwaitingConfirmation, draft.State)
	assert.Len(t, draft.OrderItems, 1)

	stored, err := f.drafts.Get(f.ctx(), id, f.restaurantID, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, stored.Outcome)
}

func TestDraftService_ValidationFailurePersistsRoute(t *testing.T) {
	f := newDraftFixture(t, nil)
	id := f.customer.ID
	_, err := f.drafts.SetItem(f.ctx(), id, f.restaurantID, SetItemRequest{MenuItemID: f.itemID.String(), Quantity: 1})
	require.NoError(t, err)

	draft, err := f.drafts.RequestConfirmation(f.ctx(), id, f.restaurantID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, TabSeats, verr.Tab)
	require.NotNil(t, draft)
	assert.Equal(t, StateComposingSeats, draft.State)

	stored, err := f.drafts.Get(f.ctx(), id, f.restaurantID, false)
	require.NoError(t, err)
	assert.Equal(t, StateComposingSeats, stored.State)
}

func TestDraftService_BusyWhileLocked(t *testing.T) {
	f := newDraftFixture(t, nil)
	lock, err := f.store.Lock(f.ctx(), f.customer.ID.String(), f.restaurantID.String())
	require.NoError(t, err)

	_, err = f.drafts.ConfirmMenu(f.ctx(), f.customer.ID, f.restaurantID)
	assert.ErrorIs(t, err, ErrDraftBusy)

	require.NoError(t, lock.Release(f.ctx()))
	_, err = f.drafts.ConfirmMenu(f.ctx(), f.customer.ID, f.restaurantID)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDraftService_DetectedSeatsAndRefresh(t *testing.T) {
	detected := staticDetections{1: seats.StatusOccupied, 2: seats.StatusAvailable}
	f := newDraftFixture(t, detected)
	id := f.customer.ID

	draft, err := f.drafts.ToggleSeat(f.ctx(), id, f.restaurantID, 1)
	assert.ErrorIs(t, err, seats.ErrSeatOccupied)
	require.NotNil(t, draft)
	assert.Equal(t, 1, draft.Counts.Occupied)

	_, err = f.drafts.ToggleSeat(f.ctx(), id, f.restaurantID, 2)
	require.NoError(t, err)

	// the camera now sees seat 2 taken and seat 1 freed; the selection survives
	detected[1] = seats.StatusAvailable
	detected[2] = seats.StatusOccupied
	draft, err = f.drafts.Get(f.ctx(), id, f.restaurantID, true)
	require.NoError(t, err)
	assert.Equal(t, []seats.SelectedSeatRef{{ID: 2, Label: "A2"}}, draft.SelectedSeats)
	assert.Equal(t, 0, draft.Counts.Occupied)
}

func TestDraftService_UnknownRestaurant(t *testing.T) {
	f := newDraftFixture(t, nil)
	missing := uuid.New()
	f.restaurants.On("Get", mock.Anything, missing).Return(nil, restaurants.ErrRestaurantNotFound)

	_, err := f.drafts.Get(f.ctx(), f.customer.ID, missing, false)
	assert.ErrorIs(t, err, restaurants.ErrRestaurantNotFound)
}

func TestDraftStore_DiscardsMalformedSnapshot(t *testing.T) {
	f := newDraftFixture(t, nil)
	key := constants.BuildDraftKey(f.customer.ID.String(), f.restaurantID.String())
	require.NoError(t, f.mr.Set(key, "{not json"))

	_, err := f.store.Load(f.ctx(), f.customer.ID.String(), f.restaurantID.String())
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.False(t, f.mr.Exists(key))

	require.NoError(t, f.drafts.Discard(f.ctx(), f.customer.ID, f.restaurantID))
}

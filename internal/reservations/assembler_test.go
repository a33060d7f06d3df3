package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"zari/internal/ordering"
	"zari/internal/seats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bibimbap = ordering.MenuItem{ID: "m-1", Name: "Bibimbap", Price: 12000}

func newTestAssembler() *Assembler {
	selector := seats.NewSelector(seats.DefaultLayout, seats.NewRandomSource(0, nil), nil)
	a := NewAssembler("r-1", selector, 2*time.Second)
	a.SetWait(func(time.Duration) {})
	return a
}

// readyAssembler returns an assembler that passes validation
func readyAssembler(t *testing.T) *Assembler {
	t.Helper()
	a := newTestAssembler()
	require.NoError(t, a.SetItem(bibimbap, 2))
	require.NoError(t, a.ConfirmMenu())
	_, err := a.ToggleSeat(3)
	require.NoError(t, err)
	require.NoError(t, a.SetSchedule("2026-11-02", "19:30"))
	require.NoError(t, a.RequestConfirmation())
	return a
}

func TestAssembler_ValidationOrder(t *testing.T) {
	a := newTestAssembler()

	err := a.RequestConfirmation()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "order_items", verr.Field)
	assert.Equal(t, StateComposingMenu, a.State())

	require.NoError(t, a.SetItem(bibimbap, 1))
	require.ErrorAs(t, a.RequestConfirmation(), &verr)
	assert.Equal(t, "selected_seats", verr.Field)
	assert.Equal(t, TabSeats, verr.Tab)
	assert.Equal(t, StateComposingSeats, a.State())

	_, err = a.ToggleSeat(1)
	require.NoError(t, err)
	require.ErrorAs(t, a.RequestConfirmation(), &verr)
	assert.Equal(t, "date", verr.Field)

	require.NoError(t, a.SetSchedule("2026-11-02", ""))
	require.ErrorAs(t, a.RequestConfirmation(), &verr)
	assert.Equal(t, "time", verr.Field)

	require.NoError(t, a.SetSchedule("2026-11-02", "18:00"))
	require.NoError(t, a.RequestConfirmation())
	assert.Equal(t, StateAwaitingConfirmation, a.State())
}

func TestAssembler_ConfirmMenuRequiresItems(t *testing.T) {
	a := newTestAssembler()
	assert.ErrorIs(t, a.ConfirmMenu(), errNoItems)
	assert.Equal(t, StateComposingMenu, a.State())

	require.NoError(t, a.SetItem(bibimbap, 1))
	require.NoError(t, a.ConfirmMenu())
	assert.Equal(t, StateComposingSeats, a.State())
}

func TestAssembler_EditsReopenTabs(t *testing.T) {
	a := readyAssembler(t)
	require.NoError(t, a.IncrementItem(bibimbap.ID))
	assert.Equal(t, StateComposingMenu, a.State())
	assert.Equal(t, int64(36000), a.Order().Total())

	require.NoError(t, a.RequestConfirmation())
	_, err := a.ToggleSeat(4)
	require.NoError(t, err)
	assert.Equal(t, StateComposingSeats, a.State())

	require.NoError(t, a.RequestConfirmation())
	require.NoError(t, a.CancelConfirmation())
	assert.Equal(t, StateComposingSeats, a.State())
	assert.ErrorIs(t, a.CancelConfirmation(), ErrNotAwaitingConfirmation)
}

func TestAssembler_SetScheduleRejectsBadFormats(t *testing.T) {
	a := newTestAssembler()
	var verr *ValidationError
	require.ErrorAs(t, a.SetSchedule("02/11/2026", ""), &verr)
	assert.Equal(t, "date", verr.Field)
	require.ErrorAs(t, a.SetSchedule("", "7pm"), &verr)
	assert.Equal(t, "time", verr.Field)

	date, clock := a.Schedule()
	assert.Empty(t, date)
	assert.Empty(t, clock)
}

func TestAssembler_SubmitSuccessResetsDraft(t *testing.T) {
	a := readyAssembler(t)
	var waited time.Duration
	a.SetWait(func(d time.Duration) { waited = d })
	var seenState State
	a.OnSubmitting(func(a *Assembler) { seenState = a.State() })

	id := uuid.New()
	var got Draft
	res, err := a.Submit(context.Background(), SubmitterFunc(func(_ context.Context, d Draft) (*Reservation, error) {
		got = d
		return &Reservation{ID: id}, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, id, res.ID)

	assert.Equal(t, StateSubmitting, seenState)
	assert.Equal(t, 2*time.Second, waited)
	assert.Equal(t, int64(24000), got.Total)
	assert.Equal(t, []seats.SelectedSeatRef{{ID: 3, Label: "A3"}}, got.Seats)

	assert.Equal(t, StateComposingMenu, a.State())
	assert.Equal(t, OutcomeConfirmed, a.Outcome())
	assert.Equal(t, id.String(), a.LastReservationID())
	assert.True(t, a.Order().IsEmpty())
	assert.Empty(t, a.Selector().SelectedIDs())
	date, clock := a.Schedule()
	assert.Empty(t, date)
	assert.Empty(t, clock)
}

func TestAssembler_SubmitFailureKeepsDraft(t *testing.T) {
	a := readyAssembler(t)
	boom := errors.New("db down")

	_, err := a.Submit(context.Background(), SubmitterFunc(func(context.Context, Draft) (*Reservation, error) {
		return nil, boom
	}))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateAwaitingConfirmation, a.State())
	assert.Equal(t, OutcomeFailed, a.Outcome())
	assert.False(t, a.Order().IsEmpty())
	assert.Equal(t, []int{3}, a.Selector().SelectedIDs())
}

func TestAssembler_RetryAfterFailureReportsOutcome(t *testing.T) {
	a := readyAssembler(t)
	_, err := a.Submit(context.Background(), SubmitterFunc(func(context.Context, Draft) (*Reservation, error) {
		return nil, errors.New("db down")
	}))
	require.Error(t, err)
	require.Equal(t, OutcomeFailed, a.Outcome())

	var duringState State
	var duringOutcome Outcome
	a.OnSubmitting(func(a *Assembler) { duringState, duringOutcome = a.State(), a.Outcome() })
	_, err = a.Submit(context.Background(), SubmitterFunc(func(_ context.Context, d Draft) (*Reservation, error) {
		assert.Equal(t, StateSubmitting, a.State())
		return &Reservation{ID: uuid.New()}, nil
	}))
	require.NoError(t, err)

	assert.Equal(t, StateSubmitting, duringState)
	assert.Equal(t, OutcomeNone, duringOutcome)
	assert.Equal(t, StateComposingMenu, a.State())
	assert.Equal(t, OutcomeConfirmed, a.Outcome())
}

func TestAssembler_SubmitRequiresConfirmation(t *testing.T) {
	a := newTestAssembler()
	require.NoError(t, a.SetItem(bibimbap, 1))

	_, err := a.Submit(context.Background(), SubmitterFunc(func(context.Context, Draft) (*Reservation, error) {
		t.Fatal("submitter must not run")
		return nil, nil
	}))
	assert.ErrorIs(t, err, ErrNotAwaitingConfirmation)
}

func TestAssembler_EditsRejectedWhileSubmitting(t *testing.T) {
	a := readyAssembler(t)
	a.OnSubmitting(func(a *Assembler) {
		assert.ErrorIs(t, a.SetItem(bibimbap, 5), ErrSubmitting)
		_, err := a.ToggleSeat(1)
		assert.ErrorIs(t, err, ErrSubmitting)
		assert.ErrorIs(t, a.RequestConfirmation(), ErrSubmitting)
	})
	_, err := a.Submit(context.Background(), SubmitterFunc(func(context.Context, Draft) (*Reservation, error) {
		return &Reservation{ID: uuid.New()}, nil
	}))
	require.NoError(t, err)
}

func TestRestoreAssembler(t *testing.T) {
	a := readyAssembler(t)
	snap := a.Snapshot()
	snap.State = StateSubmitting

	restored, err := RestoreAssembler(snap, time.Second)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingConfirmation, restored.State())
	assert.Equal(t, int64(24000), restored.Order().Total())
	assert.Equal(t, []int{3}, restored.Selector().SelectedIDs())

	snap.State = "BOGUS"
	restored, err = RestoreAssembler(snap, time.Second)
	require.NoError(t, err)
	assert.Equal(t, StateComposingMenu, restored.State())
}

package reservations

import (
	"context"
	"errors"
	"time"

	"zari/internal/ordering"
	"zari/internal/seats"
)

// State is the position of a draft in the booking flow
type State string

const (
	StateComposingMenu        State = "COMPOSING_MENU"
	StateComposingSeats       State = "COMPOSING_SEATS"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
	StateSubmitting           State = "SUBMITTING"
)

// Outcome is the result of the last submission. A finished submission is
// reported here rather than as a state: the draft moves straight on to
// COMPOSING_MENU or back to AWAITING_CONFIRMATION.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeConfirmed Outcome = "CONFIRMED"
	OutcomeFailed    Outcome = "FAILED"
)

// Tab names the screen a validation error sends the user back to
type Tab string

const (
	TabMenu  Tab = "menu"
	TabSeats Tab = "seats"
)

var (
	ErrSubmitting              = errors.New("reservation is being submitted")
	ErrNotAwaitingConfirmation = errors.New("reservation is not awaiting confirmation")
)

// ValidationError is a recoverable draft problem shown to the user
type ValidationError struct {
	Field   string `json:"field"`
	Tab     Tab    `json:"tab"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	errNoItems = &ValidationError{Field: "order_items", Tab: TabMenu, Message: "Please select at least one menu item"}
	errNoSeats = &ValidationError{Field: "selected_seats", Tab: TabSeats, Message: "Please select at least one seat"}
	errNoDate  = &ValidationError{Field: "date", Tab: TabSeats, Message: "Please choose a reservation date"}
	errNoTime  = &ValidationError{Field: "time", Tab: TabSeats, Message: "Please choose a reservation time"}
)

// Draft is the immutable view of a draft handed to a Submitter
type Draft struct {
	RestaurantID string                  `json:"restaurant_id"`
	Date         string                  `json:"date"`
	Time         string                  `json:"time"`
	Items        []ordering.Line         `json:"order_items"`
	Seats        []seats.SelectedSeatRef `json:"selected_seats"`
	Total        int64                   `json:"total"`
}

// Submitter turns a complete draft into a stored reservation
type Submitter interface {
	Submit(ctx context.Context, draft Draft) (*Reservation, error)
}

// SubmitterFunc adapts a function to Submitter
type SubmitterFunc func(ctx context.Context, draft Draft) (*Reservation, error)

func (f SubmitterFunc) Submit(ctx context.Context, draft Draft) (*Reservation, error) {
	return f(ctx, draft)
}

// Snapshot is the persisted form of an Assembler
type Snapshot struct {
	RestaurantID  string          `json:"restaurant_id"`
	State         State           `json:"state"`
	Outcome       Outcome         `json:"outcome,omitempty"`
	ReservationID string          `json:"reservation_id,omitempty"`
	Items         []ordering.Line `json:"order_items"`
	Layout        seats.Layout    `json:"layout"`
	Seats         []seats.Seat    `json:"seats"`
	Date          string          `json:"date"`
	Time          string          `json:"time"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Assembler drives one draft through
// COMPOSING_MENU → COMPOSING_SEATS → AWAITING_CONFIRMATION → SUBMITTING → DONE.
// It is not safe for concurrent use.
type Assembler struct {
	restaurantID  string
	state         State
	outcome       Outcome
	reservationID string
	order         *ordering.Order
	selector      *seats.Selector
	date          string
	time          string

	latency time.Duration
	wait    func(time.Duration)

	// onSubmitting runs once the state is SUBMITTING, before the wait
	onSubmitting func(*Assembler)
}

func NewAssembler(restaurantID string, selector *seats.Selector, latency time.Duration) *Assembler {
	return &Assembler{
		restaurantID: restaurantID,
		state:        StateComposingMenu,
		order:        &ordering.Order{},
		selector:     selector,
		latency:      latency,
		wait:         time.Sleep,
	}
}

// RestoreAssembler rebuilds an assembler from a snapshot. A snapshot left in
// SUBMITTING belongs to a submission that never finished and is reopened at
// AWAITING_CONFIRMATION.
func RestoreAssembler(snap Snapshot, latency time.Duration) (*Assembler, error) {
	selector, err := seats.Restore(snap.Layout, snap.Seats)
	if err != nil {
		return nil, err
	}
	a := NewAssembler(snap.RestaurantID, selector, latency)
	a.order = ordering.FromLines(snap.Items)
	a.date = snap.Date
	a.time = snap.Time
	a.outcome = snap.Outcome
	a.reservationID = snap.ReservationID

	switch snap.State {
	case StateComposingMenu, StateComposingSeats, StateAwaitingConfirmation:
		a.state = snap.State
	case StateSubmitting:
		a.state = StateAwaitingConfirmation
	default:
		a.state = StateComposingMenu
	}
	return a, nil
}

func (a *Assembler) Snapshot() Snapshot {
	return Snapshot{
		RestaurantID:  a.restaurantID,
		State:         a.state,
		Outcome:       a.outcome,
		ReservationID: a.reservationID,
		Items:         a.order.Lines(),
		Layout:        a.selector.Layout(),
		Seats:         a.selector.Seats(),
		Date:          a.date,
		Time:          a.time,
		UpdatedAt:     time.Now(),
	}
}

func (a *Assembler) State() State { return a.state }
func (a *Assembler) Outcome() Outcome { return a.outcome }
func (a *Assembler) Order() *ordering.Order { return a.order }
func (a *Assembler) Selector() *seats.Selector { return a.selector }
func (a *Assembler) Schedule() (string, string) { return a.date, a.time }
func (a *Assembler) LastReservationID() string { return a.reservationID }
func (a *Assembler) SetWait(fn func(time.Duration)) { a.wait = fn }

// OnSubmitting registers the hook run when a submission starts
func (a *Assembler) OnSubmitting(fn func(*Assembler)) { a.onSubmitting = fn }

// ReplaceSelector swaps in a re-derived seat grid
func (a *Assembler) ReplaceSelector(selector *seats.Selector) error {
	if err := a.editable(); err != nil {
		return err
	}
	a.selector = selector
	return nil
}

// Draft returns the current composition
func (a *Assembler) Draft() Draft {
	return Draft{
		RestaurantID: a.restaurantID,
		Date:         a.date,
		Time:         a.time,
		Items:        a.order.Lines(),
		Seats:        a.selector.Selected(),
		Total:        a.order.Total(),
	}
}

func (a *Assembler) editable() error {
	if a.state == StateSubmitting {
		return ErrSubmitting
	}
	return nil
}

// reopen sends a draft waiting for confirmation back to the tab being edited
func (a *Assembler) reopen(tab Tab) {
	if a.state != StateAwaitingConfirmation {
		return
	}
	if tab == TabMenu {
		a.state = StateComposingMenu
	} else {
		a.state = StateComposingSeats
	}
}

func (a *Assembler) SetItem(item ordering.MenuItem, quantity int) error {
	if err := a.editable(); err != nil {
		return err
	}
	if err := a.order.AddOrUpdateItem(item, quantity); err != nil {
		return err
	}
	a.reopen(TabMenu)
	return nil
}

func (a *Assembler) RemoveItem(id string) error {
	if err := a.editable(); err != nil {
		return err
	}
	if !a.order.RemoveItem(id) {
		return ordering.ErrItemNotInOrder
	}
	a.reopen(TabMenu)
	return nil
}

func (a *Assembler) IncrementItem(id string) error {
	if err := a.editable(); err != nil {
		return err
	}
	if err := a.order.Increment(id); err != nil {
		return err
	}
	a.reopen(TabMenu)
	return nil
}

func (a *Assembler) DecrementItem(id string) error {
	if err := a.editable(); err != nil {
		return err
	}
	if err := a.order.Decrement(id); err != nil {
		return err
	}
	a.reopen(TabMenu)
	return nil
}

func (a *Assembler) ToggleSeat(id int) ([]seats.SelectedSeatRef, error) {
	if err := a.editable(); err != nil {
		return nil, err
	}
	selected, err := a.selector.Toggle(id)
	if err != nil {
		return selected, err
	}
	a.reopen(TabSeats)
	return selected, nil
}

// SetSchedule stores the date and time. Either may be empty to clear it.
func (a *Assembler) SetSchedule(date, clock string) error {
	if err := a.editable(); err != nil {
		return err
	}
	if date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return &ValidationError{Field: "date", Tab: TabSeats, Message: "Date must be YYYY-MM-DD"}
		}
	}
	if clock != "" {
		if _, err := time.Parse(TimeLayout, clock); err != nil {
			return &ValidationError{Field: "time", Tab: TabSeats, Message: "Time must be HH:MM"}
		}
	}
	a.date, a.time = date, clock
	a.reopen(TabSeats)
	return nil
}

// ConfirmMenu moves from the menu tab to the seat tab
func (a *Assembler) ConfirmMenu() error {
	if err := a.editable(); err != nil {
		return err
	}
	if a.order.IsEmpty() {
		a.state = StateComposingMenu
		return errNoItems
	}
	a.state = StateComposingSeats
	return nil
}

// validate returns the first missing piece in menu, seats, date, time order
func (a *Assembler) validate() *ValidationError {
	switch {
	case a.order.IsEmpty():
		return errNoItems
	case len(a.selector.SelectedIDs()) == 0:
		return errNoSeats
	case a.date == "":
		return errNoDate
	case a.time == "":
		return errNoTime
	}
	return nil
}

// RequestConfirmation opens the confirmation step or routes the user to the
// tab holding the first problem
func (a *Assembler) RequestConfirmation() error {
	if err := a.editable(); err != nil {
		return err
	}
	if verr := a.validate(); verr != nil {
		if verr.Tab == TabMenu {
			a.state = StateComposingMenu
		} else {
			a.state = StateComposingSeats
		}
		return verr
	}
	a.state = StateAwaitingConfirmation
	return nil
}

// CancelConfirmation returns to the seat tab keeping everything
func (a *Assembler) CancelConfirmation() error {
	if err := a.editable(); err != nil {
		return err
	}
	if a.state != StateAwaitingConfirmation {
		return ErrNotAwaitingConfirmation
	}
	a.state = StateComposingSeats
	return nil
}

// Submit waits the simulated latency and hands the draft to submitter. The
// wait and the submission ignore cancellation of ctx. On success the draft is
// cleared and the flow restarts at COMPOSING_MENU; on failure the draft is
// kept at AWAITING_CONFIRMATION. Either way Outcome records DONE(CONFIRMED|FAILED).
func (a *Assembler) Submit(ctx context.Context, submitter Submitter) (*Reservation, error) {
	switch a.state {
	case StateSubmitting:
		return nil, ErrSubmitting
	case StateAwaitingConfirmation:
	default:
		return nil, ErrNotAwaitingConfirmation
	}
	if verr := a.validate(); verr != nil {
		return nil, verr
	}

	draft := a.Draft()
	a.state = StateSubmitting
	a.outcome = OutcomeNone
	if a.onSubmitting != nil {
		a.onSubmitting(a)
	}

	a.wait(a.latency)
	reservation, err := submitter.Submit(context.WithoutCancel(ctx), draft)
	if err != nil {
		a.outcome = OutcomeFailed
		a.state = StateAwaitingConfirmation
		return nil, err
	}

	a.outcome = OutcomeConfirmed
	a.reservationID = reservation.ID.String()
	a.order.Reset()
	a.selector.ClearSelection()
	a.date, a.time = "", ""
	a.state = StateComposingMenu
	return reservation, nil
}

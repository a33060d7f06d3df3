package reservations

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// CanBeCancelled reports whether a reservation in this status may be cancelled
func (s Status) CanBeCancelled() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsActive is false only for cancelled reservations
func (s Status) IsActive() bool {
	return s != StatusCancelled
}

// IsEditable reports whether seats, schedule and name may still change
func (s Status) IsEditable() bool {
	return s.CanBeCancelled()
}

// CanTransitionTo encodes pending → confirmed → completed, with cancellation
// allowed from pending and confirmed
func (s Status) CanTransitionTo(next Status) bool {
	switch next {
	case StatusConfirmed:
		return s == StatusPending
	case StatusCompleted:
		return s == StatusConfirmed
	case StatusCancelled:
		return s.CanBeCancelled()
	}
	return false
}

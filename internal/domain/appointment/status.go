package appointment

import "github.com/trimsync/barbershop-api/internal/apperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func InitialStatus() Status {
	return StatusPending
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal statuses admit no further transition.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ===============================
// Transitions
// ===============================

type Operation string

const (
	OpConfirm  Operation = "confirmed"
	OpCancel   Operation = "cancelled"
	OpComplete Operation = "completed"
)

// Transition is the whole state machine: pending -> confirmed -> completed,
// with cancellation allowed from pending and confirmed. Any other combination
// fails, including a repeat of an already-applied operation.
func Transition(current Status, op Operation) (Status, error) {
	switch op {
	case OpConfirm:
		if current == StatusPending {
			return StatusConfirmed, nil
		}
	case OpCancel:
		if current == StatusPending || current == StatusConfirmed {
			return StatusCancelled, nil
		}
	case OpComplete:
		if current == StatusConfirmed {
			return StatusCompleted, nil
		}
	}
	return current, apperr.InvalidTransition(string(current), string(op))
}

package appointment

import (
	"time"

	"github.com/trimsync/barbershop-api/internal/apperr"
	"github.com/trimsync/barbershop-api/internal/models"
)

// MaxDurationMinutes caps a single booking at one working shift.
const MaxDurationMinutes = 480

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching endpoints do not conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// ValidateInterval checks the duration bound and derives nothing; EndTime is
// always StartTime + DurationMin.
func ValidateInterval(start time.Time, durationMin int) error {
	if durationMin <= 0 || durationMin > MaxDurationMinutes {
		return apperr.Validation("invalid_duration", "duration must be between 1 and 480 minutes")
	}
	if start.IsZero() {
		return apperr.Validation("missing_start_time", "start time is required")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	next, err := Transition(Status(ap.Status), OpConfirm)
	if err != nil {
		return err
	}

	ap.Status = string(next)
	ap.ConfirmedAt = &now
	return nil
}

// Cancel refuses appointments whose start time already passed.
func Cancel(ap *models.Appointment, now time.Time) error {
	next, err := Transition(Status(ap.Status), OpCancel)
	if err != nil {
		return err
	}
	if !ap.StartTime.After(now) {
		return apperr.Validation("appointment_already_started", "cannot cancel a past appointment")
	}

	ap.Status = string(next)
	ap.CancelledAt = &now
	return nil
}

// Complete refuses appointments that have not begun yet.
func Complete(ap *models.Appointment, now time.Time) error {
	next, err := Transition(Status(ap.Status), OpComplete)
	if err != nil {
		return err
	}
	if ap.StartTime.After(now) {
		return apperr.Validation("appointment_not_started", "cannot complete an appointment before it begins")
	}

	ap.Status = string(next)
	ap.CompletedAt = &now
	return nil
}

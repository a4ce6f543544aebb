package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trimsync/barbershop-api/internal/apperr"
	"github.com/trimsync/barbershop-api/internal/audit"
	domain "github.com/trimsync/barbershop-api/internal/domain/appointment"
	"github.com/trimsync/barbershop-api/internal/models"
	"github.com/trimsync/barbershop-api/internal/tenant"
	"github.com/trimsync/barbershop-api/internal/timezone"
)

type RescheduleInput struct {
	StartTime   time.Time
	DurationMin int
}

// RescheduleAppointment moves a pending or confirmed booking to a new slot.
// The conflict check excludes the appointment itself, so moving within the
// original interval is legal.
type RescheduleAppointment struct {
	repo  domain.Repository
	audit Auditor
}

func NewRescheduleAppointment(repo domain.Repository, auditor Auditor) *RescheduleAppointment {
	return &RescheduleAppointment{repo: repo, audit: auditor}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	scope tenant.Scope,
	appointmentID uuid.UUID,
	in RescheduleInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershop(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}

	ap, err := loadScoped(ctx, uc.repo, uc.audit, scope, appointmentID)
	if err != nil {
		return nil, err
	}

	if domain.Status(ap.Status).Terminal() {
		return nil, apperr.InvalidTransition(ap.Status, "rescheduled")
	}

	if err := domain.ValidateInterval(in.StartTime, in.DurationMin); err != nil {
		return nil, err
	}

	start := in.StartTime.In(timezone.Location(shop.Timezone))
	end := start.Add(time.Duration(in.DurationMin) * time.Minute)

	now := timezone.NowIn(shop.Timezone)
	if !start.After(now) {
		return nil, apperr.Validation("start_time_not_future", "start time must be in the future")
	}

	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, apperr.Validation("too_soon", "start time is below the booking lead time")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, scope.TenantID, ap.BarberID, int(start.Weekday()))
	if err != nil {
		return nil, err
	}
	if !domain.WithinWorkingHours(wh, start, end) {
		return nil, apperr.Validation("outside_working_hours", "slot is outside the barber's working hours")
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		excludeID := ap.ID
		busy, err := tx.ExistsConflict(ctx, scope.TenantID, ap.BarberID, start, end, &excludeID)
		if err != nil {
			return err
		}
		if busy {
			return apperr.Conflict("time_conflict", "the barber is already booked in this slot")
		}

		ap.StartTime = start
		ap.EndTime = end
		ap.DurationMin = in.DurationMin
		return tx.Update(ctx, ap, domain.Status(ap.Status))
	})
	if err != nil {
		return nil, err
	}

	actorID := scope.CallerID
	uc.audit.Dispatch(audit.Event{
		BarbershopID: scope.TenantID,
		ActorID:      &actorID,
		Action:       audit.ActionAppointmentRescheduled,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

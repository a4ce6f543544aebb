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

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	BarberID   uuid.UUID
	CustomerID uuid.UUID
	ServiceIDs []uuid.UUID

	StartTime   time.Time
	DurationMin int
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	catalog Catalog
	audit   Auditor
}

func NewCreateAppointment(
	repo domain.Repository,
	catalog Catalog,
	auditor Auditor,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		catalog: catalog,
		audit:   auditor,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	scope tenant.Scope,
	in CreateInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershop(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Input shape
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return nil, apperr.Validation("missing_services", "at least one service is required")
	}
	if err := domain.ValidateInterval(in.StartTime, in.DurationMin); err != nil {
		return nil, err
	}

	start := in.StartTime.In(timezone.Location(shop.Timezone))
	end := start.Add(time.Duration(in.DurationMin) * time.Minute)

	// --------------------------------------------------
	// Time rules: future start plus the shop's lead time
	// --------------------------------------------------
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

	// --------------------------------------------------
	// Scope-checked catalog lookups
	// --------------------------------------------------
	barber, err := uc.catalog.Barber(ctx, scope, in.BarberID)
	if err != nil {
		return nil, denyCrossTenant(uc.audit, scope, err, "barber", in.BarberID)
	}
	if !barber.IsActive {
		return nil, apperr.Validation("barber_inactive", "barber is not taking bookings")
	}

	if _, err := uc.catalog.Customer(ctx, scope, in.CustomerID); err != nil {
		return nil, denyCrossTenant(uc.audit, scope, err, "customer", in.CustomerID)
	}

	lines, err := uc.serviceLines(ctx, scope, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Working hours
	// --------------------------------------------------
	wh, err := uc.repo.GetWorkingHours(ctx, scope.TenantID, in.BarberID, int(start.Weekday()))
	if err != nil {
		return nil, err
	}
	if !domain.WithinWorkingHours(wh, start, end) {
		return nil, apperr.Validation("outside_working_hours", "slot is outside the barber's working hours")
	}

	// --------------------------------------------------
	// Conflict check + insert, one transaction
	// --------------------------------------------------
	ap := &models.Appointment{
		BarbershopID: scope.TenantID,
		BarberID:     in.BarberID,
		CustomerID:   in.CustomerID,
		Services:     lines,
		StartTime:    start,
		EndTime:      end,
		DurationMin:  in.DurationMin,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		busy, err := tx.ExistsConflict(ctx, scope.TenantID, in.BarberID, start, end, nil)
		if err != nil {
			return err
		}
		if busy {
			return apperr.Conflict("time_conflict", "the barber is already booked in this slot")
		}

		return tx.Create(ctx, ap)
	})
	if err != nil {
		if apperr.IsKind(err, apperr.KindConflict) {
			actorID := scope.CallerID
			uc.audit.Dispatch(audit.Event{
				BarbershopID: scope.TenantID,
				ActorID:      &actorID,
				Action:       audit.ActionAppointmentConflict,
				Entity:       "appointment",
				Metadata: map[string]any{
					"barber_id": in.BarberID,
					"start":     start,
					"end":       end,
				},
			})
		}
		return nil, err
	}

	actorID := scope.CallerID
	uc.audit.Dispatch(audit.Event{
		BarbershopID: scope.TenantID,
		ActorID:      &actorID,
		Action:       audit.ActionAppointmentCreated,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

// serviceLines resolves the requested services in order, rejecting
// duplicates, inactive entries and services of other tenants.
func (uc *CreateAppointment) serviceLines(
	ctx context.Context,
	scope tenant.Scope,
	serviceIDs []uuid.UUID,
) ([]models.AppointmentService, error) {

	seen := make(map[uuid.UUID]struct{}, len(serviceIDs))
	lines := make([]models.AppointmentService, 0, len(serviceIDs))

	for pos, id := range serviceIDs {
		if _, dup := seen[id]; dup {
			return nil, apperr.Validation("duplicate_service", "service listed more than once")
		}
		seen[id] = struct{}{}

		svc, err := uc.catalog.Service(ctx, scope, id)
		if err != nil {
			return nil, denyCrossTenant(uc.audit, scope, err, "service", id)
		}
		if !svc.IsActive {
			return nil, apperr.Validation("service_inactive", "service is not offered anymore")
		}

		lines = append(lines, models.AppointmentService{
			ServiceID: id,
			Position:  pos,
		})
	}

	return lines, nil
}

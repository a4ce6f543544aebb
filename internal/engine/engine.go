// Package engine holds the scheduling use cases: booking creation, the
// appointment state machine, rescheduling, and the tenant-scoped read paths.
// Every operation takes the caller's tenant.Scope explicitly; nothing here
// reads tenant identity from ambient state.
package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/trimsync/barbershop-api/internal/apperr"
	"github.com/trimsync/barbershop-api/internal/audit"
	domain "github.com/trimsync/barbershop-api/internal/domain/appointment"
	"github.com/trimsync/barbershop-api/internal/models"
	"github.com/trimsync/barbershop-api/internal/tenant"
)

// Catalog is the engine's view of the barber/service/customer registry.
// Implementations enforce the scope: a lookup whose row belongs to another
// tenant fails with a cross-tenant error, never returns the row.
type Catalog interface {
	Barber(ctx context.Context, scope tenant.Scope, id uuid.UUID) (*models.Barber, error)
	Service(ctx context.Context, scope tenant.Scope, id uuid.UUID) (*models.Service, error)
	Customer(ctx context.Context, scope tenant.Scope, id uuid.UUID) (*models.Customer, error)
}

// Auditor receives the engine's audit events.
type Auditor interface {
	Dispatch(ev audit.Event)
	Security(ev audit.Event)
}

// loadScoped fetches an appointment inside the caller's tenant. When the
// filtered lookup misses, the owner is re-resolved so a cross-tenant
// reference is audited before being masked as not-found upstream.
func loadScoped(
	ctx context.Context,
	repo domain.Repository,
	auditor Auditor,
	scope tenant.Scope,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, scope.TenantID, appointmentID)
	if err == nil {
		return ap, nil
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}

	owner, ownerErr := repo.AppointmentTenant(ctx, appointmentID)
	if ownerErr == nil && owner != scope.TenantID {
		return nil, denyCrossTenant(auditor, scope, apperr.CrossTenant("appointment"), "appointment", appointmentID)
	}

	return nil, err
}

// denyCrossTenant audits a cross-tenant reference and passes the error on.
// Non-cross-tenant errors flow through untouched.
func denyCrossTenant(
	auditor Auditor,
	scope tenant.Scope,
	err error,
	entity string,
	entityID uuid.UUID,
) error {
	if !apperr.IsKind(err, apperr.KindCrossTenant) {
		return err
	}

	actorID := scope.CallerID
	id := entityID
	auditor.Security(audit.Event{
		BarbershopID: scope.TenantID,
		ActorID:      &actorID,
		Action:       audit.ActionCrossTenantDenied,
		Entity:       entity,
		EntityID:     &id,
	})

	return err
}

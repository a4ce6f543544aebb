package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/trimsync/barbershop-api/internal/audit"
	domain "github.com/trimsync/barbershop-api/internal/domain/appointment"
	"github.com/trimsync/barbershop-api/internal/models"
	"github.com/trimsync/barbershop-api/internal/tenant"
	"github.com/trimsync/barbershop-api/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit Auditor
}

func NewCancelAppointment(repo domain.Repository, auditor Auditor) *CancelAppointment {
	return &CancelAppointment{repo: repo, audit: auditor}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	scope tenant.Scope,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershop(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}

	ap, err := loadScoped(ctx, uc.repo, uc.audit, scope, appointmentID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)
	prev := domain.Status(ap.Status)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, ap, prev); err != nil {
		return nil, err
	}

	actorID := scope.CallerID
	uc.audit.Dispatch(audit.Event{
		BarbershopID: scope.TenantID,
		ActorID:      &actorID,
		Action:       audit.ActionAppointmentCancelled,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

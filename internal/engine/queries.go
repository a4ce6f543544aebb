package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/trimsync/barbershop-api/internal/domain/appointment"
	"github.com/trimsync/barbershop-api/internal/models"
	"github.com/trimsync/barbershop-api/internal/tenant"
)

// ======================================================
// Details
// ======================================================

type GetAppointmentDetails struct {
	repo  domain.Repository
	audit Auditor
}

func NewGetAppointmentDetails(repo domain.Repository, auditor Auditor) *GetAppointmentDetails {
	return &GetAppointmentDetails{repo: repo, audit: auditor}
}

func (uc *GetAppointmentDetails) Execute(
	ctx context.Context,
	scope tenant.Scope,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {
	return loadScoped(ctx, uc.repo, uc.audit, scope, appointmentID)
}

// ======================================================
// Barber schedule (day/week view, ascending)
// ======================================================

type GetBarberSchedule struct {
	repo    domain.Repository
	catalog Catalog
	audit   Auditor
}

func NewGetBarberSchedule(repo domain.Repository, catalog Catalog, auditor Auditor) *GetBarberSchedule {
	return &GetBarberSchedule{repo: repo, catalog: catalog, audit: auditor}
}

func (uc *GetBarberSchedule) Execute(
	ctx context.Context,
	scope tenant.Scope,
	barberID uuid.UUID,
	fromInclusive time.Time,
	toExclusive time.Time,
) ([]models.Appointment, error) {

	if _, err := uc.catalog.Barber(ctx, scope, barberID); err != nil {
		return nil, denyCrossTenant(uc.audit, scope, err, "barber", barberID)
	}

	return uc.repo.ListForBarberRange(ctx, scope.TenantID, barberID, fromInclusive, toExclusive)
}

// ======================================================
// Customer history (most recent first)
// ======================================================

type GetCustomerHistory struct {
	repo    domain.Repository
	catalog Catalog
	audit   Auditor
}

func NewGetCustomerHistory(repo domain.Repository, catalog Catalog, auditor Auditor) *GetCustomerHistory {
	return &GetCustomerHistory{repo: repo, catalog: catalog, audit: auditor}
}

func (uc *GetCustomerHistory) Execute(
	ctx context.Context,
	scope tenant.Scope,
	customerID uuid.UUID,
	statusFilter *domain.Status,
) ([]models.Appointment, error) {

	if _, err := uc.catalog.Customer(ctx, scope, customerID); err != nil {
		return nil, denyCrossTenant(uc.audit, scope, err, "customer", customerID)
	}

	return uc.repo.ListForCustomer(ctx, scope.TenantID, customerID, statusFilter)
}

package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trimsync/barbershop-api/internal/models"
)

// Repository is the tenant-scoped storage contract of the scheduling engine.
// Every query that touches appointment rows takes the owning barbershop id;
// implementations must filter on it, never on the appointment id alone.
type Repository interface {
	// Transaction runs fn against a repository bound to one storage
	// transaction. The conflict check and the subsequent write of a booking
	// must share a transaction so the second of two racing writers blocks
	// and then fails.
	Transaction(ctx context.Context, fn func(Repository) error) error

	// -------- Barbershop --------
	GetBarbershop(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Barbershop, error)

	// -------- Appointment (create / conflict) --------
	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ExistsConflict reports whether [start,end) overlaps a pending or
	// confirmed appointment of the barber. excludeID skips the appointment
	// being rescheduled; nil means no exclusion.
	//
	// Called inside Transaction, it must also serialize concurrent writers
	// on the barber's agenda for the rest of that transaction: an empty
	// slot has no rows to lock, so without it two racing creates would
	// both count zero conflicts and both insert.
	ExistsConflict(
		ctx context.Context,
		tenantID uuid.UUID,
		barberID uuid.UUID,
		start time.Time,
		end time.Time,
		excludeID *uuid.UUID,
	) (bool, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		tenantID uuid.UUID,
		appointmentID uuid.UUID,
	) (*models.Appointment, error)

	// AppointmentTenant resolves the owning tenant of an appointment id
	// regardless of scope, so a filtered miss can be told apart from a
	// cross-tenant reference for the audit trail.
	AppointmentTenant(
		ctx context.Context,
		appointmentID uuid.UUID,
	) (uuid.UUID, error)

	// Update persists ap only while the stored row still carries
	// expectStatus. A concurrent writer that moved the status first makes
	// the write fail instead of silently re-applying the transition.
	Update(
		ctx context.Context,
		ap *models.Appointment,
		expectStatus Status,
	) error

	// -------- Range queries --------
	ListForBarberRange(
		ctx context.Context,
		tenantID uuid.UUID,
		barberID uuid.UUID,
		fromInclusive time.Time,
		toExclusive time.Time,
	) ([]models.Appointment, error)

	ListForCustomer(
		ctx context.Context,
		tenantID uuid.UUID,
		customerID uuid.UUID,
		statusFilter *Status,
	) ([]models.Appointment, error)

	// -------- Working hours --------
	GetWorkingHours(
		ctx context.Context,
		tenantID uuid.UUID,
		barberID uuid.UUID,
		weekday int,
	) (*models.WorkingHours, error)
}

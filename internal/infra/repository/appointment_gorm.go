package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trimsync/barbershop-api/internal/apperr"
	domain "github.com/trimsync/barbershop-api/internal/domain/appointment"
	"github.com/trimsync/barbershop-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershop(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("barbershop")
		}
		return nil, apperr.Internal("failed to load barbershop", err)
	}
	return &shop, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		return apperr.Internal("failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentGormRepository) ExistsConflict(
	ctx context.Context,
	tenantID uuid.UUID,
	barberID uuid.UUID,
	start time.Time,
	end time.Time,
	excludeID *uuid.UUID,
) (bool, error) {

	// Row locks cannot guard an empty slot: two inserts racing for the same
	// free interval would both count zero conflicts. The advisory lock
	// serializes writers per barber for the rest of the transaction.
	if err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", barberID.String()).Error; err != nil {
		return false, apperr.Internal("failed to lock barber agenda", err)
	}

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"barbershop_id = ? AND barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			tenantID,
			barberID,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			end,
			start,
		)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, apperr.Internal("conflict query failed", err)
	}

	return count > 0, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	tenantID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ? AND barbershop_id = ?", appointmentID, tenantID).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("appointment")
		}
		return nil, apperr.Internal("failed to load appointment", err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) AppointmentTenant(
	ctx context.Context,
	appointmentID uuid.UUID,
) (uuid.UUID, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Select("barbershop_id").
		Where("id = ?", appointmentID).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperr.NotFound("appointment")
		}
		return uuid.Nil, apperr.Internal("failed to resolve appointment tenant", err)
	}

	return ap.BarbershopID, nil
}

// Update is conditional on the status the caller read: zero affected rows
// means another writer moved the appointment first.
func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
	expectStatus domain.Status,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(expectStatus)).
		Updates(map[string]any{
			"status":       ap.Status,
			"start_time":   ap.StartTime,
			"end_time":     ap.EndTime,
			"duration_min": ap.DurationMin,
			"notes":        ap.Notes,
			"confirmed_at": ap.ConfirmedAt,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return apperr.Internal("failed to update appointment", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("stale_appointment_status", "appointment changed concurrently")
	}
	return nil
}

// --------------------------------------------------
// Range queries
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForBarberRange(
	ctx context.Context,
	tenantID uuid.UUID,
	barberID uuid.UUID,
	fromInclusive time.Time,
	toExclusive time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where(
			"barbershop_id = ? AND barber_id = ? AND start_time >= ? AND start_time < ?",
			tenantID, barberID, fromInclusive, toExclusive,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, apperr.Internal("failed to list barber schedule", err)
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForCustomer(
	ctx context.Context,
	tenantID uuid.UUID,
	customerID uuid.UUID,
	statusFilter *domain.Status,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("barbershop_id = ? AND customer_id = ?", tenantID, customerID)

	if statusFilter != nil {
		q = q.Where("status = ?", string(*statusFilter))
	}

	var apps []models.Appointment
	if err := q.Order("start_time DESC").Find(&apps).Error; err != nil {
		return nil, apperr.Internal("failed to list customer appointments", err)
	}

	return apps, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	tenantID uuid.UUID,
	barberID uuid.UUID,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND barber_id = ? AND weekday = ?", tenantID, barberID, weekday).
		First(&wh).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal("failed to load working hours", err)
	}

	return &wh, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)

package engine_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trimsync/barbershop-api/internal/apperr"
	"github.com/trimsync/barbershop-api/internal/audit"
	domain "github.com/trimsync/barbershop-api/internal/domain/appointment"
	"github.com/trimsync/barbershop-api/internal/models"
	"github.com/trimsync/barbershop-api/internal/tenant"
)

// ────────────────────────────────────────────────
// In-memory repository
// ────────────────────────────────────────────────

type memRepo struct {
	mu           sync.Mutex
	txMu         sync.Mutex
	shops        map[uuid.UUID]*models.Barbershop
	appointments []*models.Appointment
	workingHours map[uuid.UUID]map[int]*models.WorkingHours // barberID -> weekday
}

func newMemRepo() *memRepo {
	return &memRepo{
		shops:        map[uuid.UUID]*models.Barbershop{},
		workingHours: map[uuid.UUID]map[int]*models.WorkingHours{},
	}
}

func (m *memRepo) addShop(shop *models.Barbershop) {
	m.shops[shop.ID] = shop
}

// openAllWeek gives the barber the same shift every day of the week.
func (m *memRepo) openAllWeek(barberID uuid.UUID, start, end string) {
	week := map[int]*models.WorkingHours{}
	for d := 0; d < 7; d++ {
		week[d] = &models.WorkingHours{
			BarberID:  barberID,
			Weekday:   d,
			StartTime: start,
			EndTime:   end,
			Active:    true,
		}
	}
	m.workingHours[barberID] = week
}

// Transaction holds a single lock for the whole callback, the way the
// advisory lock in the SQL repository serializes writers on one agenda.
func (m *memRepo) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(m)
}

func (m *memRepo) GetBarbershop(ctx context.Context, id uuid.UUID) (*models.Barbershop, error) {
	if shop, ok := m.shops[id]; ok {
		return shop, nil
	}
	return nil, apperr.NotFound("barbershop")
}

func (m *memRepo) Create(ctx context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	now := time.Now()
	ap.CreatedAt = now
	ap.UpdatedAt = now

	m.appointments = append(m.appointments, ap)
	return nil
}

func (m *memRepo) ExistsConflict(
	ctx context.Context,
	tenantID uuid.UUID,
	barberID uuid.UUID,
	start time.Time,
	end time.Time,
	excludeID *uuid.UUID,
) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ap := range m.appointments {
		if ap.BarbershopID != tenantID || ap.BarberID != barberID {
			continue
		}
		if domain.Status(ap.Status).Terminal() {
			continue
		}
		if excludeID != nil && ap.ID == *excludeID {
			continue
		}
		if domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) GetAppointment(
	ctx context.Context,
	tenantID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ap := range m.appointments {
		if ap.ID == appointmentID && ap.BarbershopID == tenantID {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("appointment")
}

func (m *memRepo) AppointmentTenant(
	ctx context.Context,
	appointmentID uuid.UUID,
) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ap := range m.appointments {
		if ap.ID == appointmentID {
			return ap.BarbershopID, nil
		}
	}
	return uuid.Nil, apperr.NotFound("appointment")
}

func (m *memRepo) Update(ctx context.Context, ap *models.Appointment, expectStatus domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, stored := range m.appointments {
		if stored.ID != ap.ID {
			continue
		}
		if stored.Status != string(expectStatus) {
			return apperr.Conflict("stale_appointment_status", "appointment changed concurrently")
		}
		ap.UpdatedAt = time.Now()
		*stored = *ap
		return nil
	}
	return apperr.NotFound("appointment")
}

func (m *memRepo) ListForBarberRange(
	ctx context.Context,
	tenantID uuid.UUID,
	barberID uuid.UUID,
	fromInclusive time.Time,
	toExclusive time.Time,
) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.BarbershopID != tenantID || ap.BarberID != barberID {
			continue
		}
		if ap.StartTime.Before(fromInclusive) || !ap.StartTime.Before(toExclusive) {
			continue
		}
		out = append(out, *ap)
	}

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].StartTime.Before(out[j-1].StartTime); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}

	return out, nil
}

func (m *memRepo) ListForCustomer(
	ctx context.Context,
	tenantID uuid.UUID,
	customerID uuid.UUID,
	statusFilter *domain.Status,
) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.BarbershopID != tenantID || ap.CustomerID != customerID {
			continue
		}
		if statusFilter != nil && ap.Status != string(*statusFilter) {
			continue
		}
		out = append(out, *ap)
	}

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].StartTime.After(out[j-1].StartTime); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}

	return out, nil
}

func (m *memRepo) GetWorkingHours(
	ctx context.Context,
	tenantID uuid.UUID,
	barberID uuid.UUID,
	weekday int,
) (*models.WorkingHours, error) {
	if week, ok := m.workingHours[barberID]; ok {
		return week[weekday], nil
	}
	return nil, nil
}

var _ domain.Repository = (*memRepo)(nil)

// ────────────────────────────────────────────────
// Catalog double: scope-checked like the real store
// ────────────────────────────────────────────────

type memCatalog struct {
	barbers   map[uuid.UUID]*models.Barber
	services  map[uuid.UUID]*models.Service
	customers map[uuid.UUID]*models.Customer
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		barbers:   map[uuid.UUID]*models.Barber{},
		services:  map[uuid.UUID]*models.Service{},
		customers: map[uuid.UUID]*models.Customer{},
	}
}

func (m *memCatalog) Barber(ctx context.Context, scope tenant.Scope, id uuid.UUID) (*models.Barber, error) {
	b, ok := m.barbers[id]
	if !ok {
		return nil, apperr.NotFound("barber")
	}
	if !scope.Owns(b.BarbershopID) {
		return nil, apperr.CrossTenant("barber")
	}
	return b, nil
}

func (m *memCatalog) Service(ctx context.Context, scope tenant.Scope, id uuid.UUID) (*models.Service, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, apperr.NotFound("service")
	}
	if !scope.Owns(s.BarbershopID) {
		return nil, apperr.CrossTenant("service")
	}
	return s, nil
}

func (m *memCatalog) Customer(ctx context.Context, scope tenant.Scope, id uuid.UUID) (*models.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, apperr.NotFound("customer")
	}
	if !scope.Owns(c.BarbershopID) {
		return nil, apperr.CrossTenant("customer")
	}
	return c, nil
}

// ────────────────────────────────────────────────
// Recording auditor
// ────────────────────────────────────────────────

type recordingAuditor struct {
	mu       sync.Mutex
	events   []audit.Event
	security []audit.Event
}

func (r *recordingAuditor) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingAuditor) Security(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.security = append(r.security, ev)
	r.events = append(r.events, ev)
}

func (r *recordingAuditor) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

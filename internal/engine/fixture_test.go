package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "github.com/trimsync/barbershop-api/internal/domain/appointment"
	"github.com/trimsync/barbershop-api/internal/models"
	"github.com/trimsync/barbershop-api/internal/tenant"
)

// fixture wires one barbershop with a barber, a customer and a service, plus
// a second barbershop to exercise tenant isolation.
type fixture struct {
	repo    *memRepo
	catalog *memCatalog
	auditor *recordingAuditor

	scope    tenant.Scope
	shop     *models.Barbershop
	barber   *models.Barber
	customer *models.Customer
	service  *models.Service

	otherScope    tenant.Scope
	otherShop     *models.Barbershop
	otherBarber   *models.Barber
	otherCustomer *models.Customer
	otherService  *models.Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:    newMemRepo(),
		catalog: newMemCatalog(),
		auditor: &recordingAuditor{},
	}

	f.shop = &models.Barbershop{
		ID:                uuid.New(),
		Name:              "Main Street Cuts",
		Slug:              "main-street-cuts",
		Timezone:          "UTC",
		MinAdvanceMinutes: 30,
	}
	f.repo.addShop(f.shop)
	f.scope = tenant.NewScope(f.shop.ID, uuid.New(), tenant.RoleOwner)

	f.barber = &models.Barber{ID: uuid.New(), BarbershopID: f.shop.ID, Name: "Alex", IsActive: true}
	f.customer = &models.Customer{ID: uuid.New(), BarbershopID: f.shop.ID, Name: "Sam", Phone: "+111"}
	f.service = &models.Service{ID: uuid.New(), BarbershopID: f.shop.ID, Name: "Haircut", DurationMin: 30, IsActive: true}
	f.catalog.barbers[f.barber.ID] = f.barber
	f.catalog.customers[f.customer.ID] = f.customer
	f.catalog.services[f.service.ID] = f.service
	f.repo.openAllWeek(f.barber.ID, "08:00", "20:00")

	f.otherShop = &models.Barbershop{
		ID:                uuid.New(),
		Name:              "Rival Fades",
		Slug:              "rival-fades",
		Timezone:          "UTC",
		MinAdvanceMinutes: 30,
	}
	f.repo.addShop(f.otherShop)
	f.otherScope = tenant.NewScope(f.otherShop.ID, uuid.New(), tenant.RoleOwner)

	f.otherBarber = &models.Barber{ID: uuid.New(), BarbershopID: f.otherShop.ID, Name: "Riva", IsActive: true}
	f.otherCustomer = &models.Customer{ID: uuid.New(), BarbershopID: f.otherShop.ID, Name: "Kim", Phone: "+222"}
	f.otherService = &models.Service{ID: uuid.New(), BarbershopID: f.otherShop.ID, Name: "Shave", DurationMin: 20, IsActive: true}
	f.catalog.barbers[f.otherBarber.ID] = f.otherBarber
	f.catalog.customers[f.otherCustomer.ID] = f.otherCustomer
	f.catalog.services[f.otherService.ID] = f.otherService
	f.repo.openAllWeek(f.otherBarber.ID, "08:00", "20:00")

	return f
}

// tomorrowAt picks a slot far enough ahead to clear any booking lead time.
func tomorrowAt(hour, min int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, time.UTC).AddDate(0, 0, 1)
}

func (f *fixture) seedAppointment(status domain.Status, start time.Time, durationMin int) *models.Appointment {
	ap := &models.Appointment{
		BarbershopID: f.shop.ID,
		BarberID:     f.barber.ID,
		CustomerID:   f.customer.ID,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(durationMin) * time.Minute),
		DurationMin:  durationMin,
		Status:       string(status),
	}
	if err := f.repo.Create(context.Background(), ap); err != nil {
		panic(err)
	}
	return ap
}

func (f *fixture) seedOtherTenantAppointment(start time.Time, durationMin int) *models.Appointment {
	ap := &models.Appointment{
		BarbershopID: f.otherShop.ID,
		BarberID:     f.otherBarber.ID,
		CustomerID:   f.otherCustomer.ID,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(durationMin) * time.Minute),
		DurationMin:  durationMin,
		Status:       string(domain.StatusPending),
	}
	if err := f.repo.Create(context.Background(), ap); err != nil {
		panic(err)
	}
	return ap
}

func requireTimestampsClear(t *testing.T, ap *models.Appointment) {
	t.Helper()
	require.Nil(t, ap.ConfirmedAt)
	require.Nil(t, ap.CancelledAt)
	require.Nil(t, ap.CompletedAt)
}

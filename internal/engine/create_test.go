package engine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimsync/barbershop-api/internal/apperr"
	"github.com/trimsync/barbershop-api/internal/audit"
	domain "github.com/trimsync/barbershop-api/internal/domain/appointment"
	"github.com/trimsync/barbershop-api/internal/engine"
	"github.com/trimsync/barbershop-api/internal/models"
)

func (f *fixture) createInput(start time.Time, durationMin int) engine.CreateInput {
	return engine.CreateInput{
		BarberID:    f.barber.ID,
		CustomerID:  f.customer.ID,
		ServiceIDs:  []uuid.UUID{f.service.ID},
		StartTime:   start,
		DurationMin: durationMin,
	}
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture()
	uc := engine.NewCreateAppointment(f.repo, f.catalog, f.auditor)

	start := tomorrowAt(10, 0)
	in := f.createInput(start, 30)
	in.Notes = "first visit"

	ap, err := uc.Execute(context.Background(), f.scope, in)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, ap.ID)
	assert.Equal(t, f.shop.ID, ap.BarbershopID)
	assert.Equal(t, f.barber.ID, ap.BarberID)
	assert.Equal(t, f.customer.ID, ap.CustomerID)
	assert.True(t, ap.StartTime.Equal(start))
	assert.True(t, ap.EndTime.Equal(start.Add(30*time.Minute)))
	assert.Equal(t, 30, ap.DurationMin)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, "first visit", ap.Notes)
	requireTimestampsClear(t, ap)

	require.Len(t, ap.Services, 1)
	assert.Equal(t, f.service.ID, ap.Services[0].ServiceID)
	assert.Equal(t, 0, ap.Services[0].Position)

	assert.Equal(t, []string{audit.ActionAppointmentCreated}, f.auditor.actions())
}

func TestCreateAppointmentConflict(t *testing.T) {
	f := newFixture()
	uc := engine.NewCreateAppointment(f.repo, f.catalog, f.auditor)
	ctx := context.Background()

	// 10:00-10:30 books fine.
	_, err := uc.Execute(ctx, f.scope, f.createInput(tomorrowAt(10, 0), 30))
	require.NoError(t, err)

	// 10:15-10:45 overlaps and is refused.
	_, err = uc.Execute(ctx, f.scope, f.createInput(tomorrowAt(10, 15), 30))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, "time_conflict", apperr.CodeOf(err))

	// 10:30-11:00 only touches the first booking and succeeds.
	_, err = uc.Execute(ctx, f.scope, f.createInput(tomorrowAt(10, 30), 30))
	require.NoError(t, err)

	assert.Equal(t, []string{
		audit.ActionAppointmentCreated,
		audit.ActionAppointmentConflict,
		audit.ActionAppointmentCreated,
	}, f.auditor.actions())
}

func TestCreateAppointmentConcurrentSameSlot(t *testing.T) {
	f := newFixture()
	uc := engine.NewCreateAppointment(f.repo, f.catalog, f.auditor)
	ctx := context.Background()

	const writers = 8
	errs := make(chan error, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(ctx, f.scope, f.createInput(tomorrowAt(10, 0), 30))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var created, conflicted int
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		require.True(t, apperr.IsKind(err, apperr.KindConflict), "unexpected error: %v", err)
		conflicted++
	}

	assert.Equal(t, 1, created, "exactly one writer wins the slot")
	assert.Equal(t, writers-1, conflicted)
	assert.Len(t, f.repo.appointments, 1)
}

func TestCreateAppointmentCancelledSlotIsFree(t *testing.T) {
	f := newFixture()
	uc := engine.NewCreateAppointment(f.repo, f.catalog, f.auditor)

	f.seedAppointment(domain.StatusCancelled, tomorrowAt(10, 0), 30)

	_, err := uc.Execute(context.Background(), f.scope, f.createInput(tomorrowAt(10, 0), 30))
	require.NoError(t, err)
}

func TestCreateAppointmentInputValidation(t *testing.T) {
	f := newFixture()
	uc := engine.NewCreateAppointment(f.repo, f.catalog, f.auditor)
	ctx := context.Background()

	tests := []struct {
		name     string
		mutate   func(in *engine.CreateInput)
		wantCode string
	}{
		{
			name:     "no services",
			mutate:   func(in *engine.CreateInput) { in.ServiceIDs = nil },
			wantCode: "missing_services",
		},
		{
			name:     "zero duration",
			mutate:   func(in *engine.CreateInput) { in.DurationMin = 0 },
			wantCode: "invalid_duration",
		},
		{
			name:     "duration over the cap",
			mutate:   func(in *engine.CreateInput) { in.DurationMin = domain.MaxDurationMinutes + 1 },
			wantCode: "invalid_duration",
		},
		{
			name:     "start in the past",
			mutate:   func(in *engine.CreateInput) { in.StartTime = time.Now().UTC().Add(-time.Hour) },
			wantCode: "start_time_not_future",
		},
		{
			name:     "start below the lead time",
			mutate:   func(in *engine.CreateInput) { in.StartTime = time.Now().UTC().Add(10 * time.Minute) },
			wantCode: "too_soon",
		},
		{
			name: "duplicate service",
			mutate: func(in *engine.CreateInput) {
				in.ServiceIDs = []uuid.UUID{f.service.ID, f.service.ID}
			},
			wantCode: "duplicate_service",
		},
		{
			name:     "outside working hours",
			mutate:   func(in *engine.CreateInput) { in.StartTime = tomorrowAt(22, 0) },
			wantCode: "outside_working_hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.createInput(tomorrowAt(10, 0), 30)
			tt.mutate(&in)

			_, err := uc.Execute(ctx, f.scope, in)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
			assert.Equal(t, tt.wantCode, apperr.CodeOf(err))
		})
	}

	assert.Empty(t, f.repo.appointments, "rejected bookings must not be stored")
}

func TestCreateAppointmentInactiveEntities(t *testing.T) {
	f := newFixture()
	uc := engine.NewCreateAppointment(f.repo, f.catalog, f.auditor)
	ctx := context.Background()

	f.barber.IsActive = false
	_, err := uc.Execute(ctx, f.scope, f.createInput(tomorrowAt(10, 0), 30))
	require.Error(t, err)
	assert.Equal(t, "barber_inactive", apperr.CodeOf(err))
	f.barber.IsActive = true

	f.service.IsActive = false
	_, err = uc.Execute(ctx, f.scope, f.createInput(tomorrowAt(10, 0), 30))
	require.Error(t, err)
	assert.Equal(t, "service_inactive", apperr.CodeOf(err))
}

func TestCreateAppointmentUnknownReferences(t *testing.T) {
	f := newFixture()
	uc := engine.NewCreateAppointment(f.repo, f.catalog, f.auditor)
	ctx := context.Background()

	in := f.createInput(tomorrowAt(10, 0), 30)
	in.BarberID = uuid.New()
	_, err := uc.Execute(ctx, f.scope, in)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, "barber_not_found", apperr.CodeOf(err))

	in = f.createInput(tomorrowAt(10, 0), 30)
	in.CustomerID = uuid.New()
	_, err = uc.Execute(ctx, f.scope, in)
	require.Error(t, err)
	assert.Equal(t, "customer_not_found", apperr.CodeOf(err))
}

func TestCreateAppointmentCrossTenantReferences(t *testing.T) {
	f := newFixture()
	uc := engine.NewCreateAppointment(f.repo, f.catalog, f.auditor)
	ctx := context.Background()

	in := f.createInput(tomorrowAt(10, 0), 30)
	in.BarberID = f.otherBarber.ID
	_, err := uc.Execute(ctx, f.scope, in)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindCrossTenant))

	in = f.createInput(tomorrowAt(10, 0), 30)
	in.ServiceIDs = []uuid.UUID{f.otherService.ID}
	_, err = uc.Execute(ctx, f.scope, in)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindCrossTenant))

	require.Len(t, f.auditor.security, 2)
	for _, ev := range f.auditor.security {
		assert.Equal(t, audit.ActionCrossTenantDenied, ev.Action)
		assert.Equal(t, f.shop.ID, ev.BarbershopID)
	}
	assert.Empty(t, f.repo.appointments)
}

func TestCreateAppointmentMultiService(t *testing.T) {
	f := newFixture()
	uc := engine.NewCreateAppointment(f.repo, f.catalog, f.auditor)

	svcA := f.service
	svcB := &models.Service{ID: uuid.New(), BarbershopID: f.shop.ID, Name: "Beard Trim", DurationMin: 20, IsActive: true}
	f.catalog.services[svcB.ID] = svcB

	in := f.createInput(tomorrowAt(10, 0), 50)
	in.ServiceIDs = []uuid.UUID{svcB.ID, svcA.ID}

	ap, err := uc.Execute(context.Background(), f.scope, in)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{svcB.ID, svcA.ID}, ap.ServiceIDs())
	assert.Equal(t, 0, ap.Services[0].Position)
	assert.Equal(t, 1, ap.Services[1].Position)
}

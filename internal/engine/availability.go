package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trimsync/barbershop-api/internal/apperr"
	domain "github.com/trimsync/barbershop-api/internal/domain/appointment"
	"github.com/trimsync/barbershop-api/internal/dto"
	"github.com/trimsync/barbershop-api/internal/tenant"
)

// GetAvailability lists the free slots of one barber on one day, sized by the
// requested service's duration.
type GetAvailability struct {
	repo    domain.Repository
	catalog Catalog
	audit   Auditor
}

func NewGetAvailability(repo domain.Repository, catalog Catalog, auditor Auditor) *GetAvailability {
	return &GetAvailability{repo: repo, catalog: catalog, audit: auditor}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	scope tenant.Scope,
	barberID uuid.UUID,
	serviceID uuid.UUID,
	date time.Time,
) ([]dto.TimeSlot, error) {

	svc, err := uc.catalog.Service(ctx, scope, serviceID)
	if err != nil {
		return nil, denyCrossTenant(uc.audit, scope, err, "service", serviceID)
	}
	if svc.DurationMin <= 0 {
		return nil, apperr.Validation("invalid_duration", "service has no usable duration")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, scope.TenantID, barberID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if wh == nil || !wh.Active {
		return []dto.TimeSlot{}, nil
	}

	loc := date.Location()
	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(wh.StartTime)
	dayEnd := parseHM(wh.EndTime)

	hasLunch := wh.LunchStart != "" && wh.LunchEnd != ""
	var lunchStart, lunchEnd time.Time
	if hasLunch {
		lunchStart = parseHM(wh.LunchStart)
		lunchEnd = parseHM(wh.LunchEnd)
	}

	appointments, err := uc.repo.ListForBarberRange(ctx, scope.TenantID, barberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	// Only live bookings block a slot.
	busy := appointments[:0:0]
	for _, ap := range appointments {
		if !domain.Status(ap.Status).Terminal() {
			busy = append(busy, ap)
		}
	}

	slotDuration := time.Duration(svc.DurationMin) * time.Minute
	slots := []dto.TimeSlot{}

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {
		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if hasLunch && domain.Overlaps(slotStart, slotEnd, lunchStart, lunchEnd) {
			continue
		}

		conflict := false
		for _, ap := range busy {
			if domain.Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, dto.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}

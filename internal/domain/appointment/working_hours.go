package appointment

import (
	"time"

	"github.com/trimsync/barbershop-api/internal/models"
)

// WithinWorkingHours reports whether [start,end) fits inside the barber's
// shift for that weekday, outside the lunch break. A missing or inactive
// shift means the barber does not work that day.
func WithinWorkingHours(wh *models.WorkingHours, start, end time.Time) bool {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false
	}

	loc := start.Location()
	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	workStart := parseHM(wh.StartTime)
	workEnd := parseHM(wh.EndTime)

	if start.Before(workStart) || end.After(workEnd) {
		return false
	}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		lunchStart := parseHM(wh.LunchStart)
		lunchEnd := parseHM(wh.LunchEnd)
		if Overlaps(start, end, lunchStart, lunchEnd) {
			return false
		}
	}

	return true
}

package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate parses a YYYY-MM-DD day in the given timezone.
func ParseDate(tz, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, Location(tz))
}

// ParseDateTime parses a YYYY-MM-DD day plus HH:MM clock in the given timezone.
func ParseDateTime(tz, dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, Location(tz))
}

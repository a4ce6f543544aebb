package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimsync/barbershop-api/internal/timezone"
)

func TestIsValid(t *testing.T) {
	assert.True(t, timezone.IsValid("America/Sao_Paulo"))
	assert.True(t, timezone.IsValid("Europe/Lisbon"))
	assert.True(t, timezone.IsValid("UTC"))
	assert.False(t, timezone.IsValid(""))
	assert.False(t, timezone.IsValid("Mars/Olympus_Mons"))
}

func TestLocationFallsBack(t *testing.T) {
	assert.Equal(t, "Europe/Lisbon", timezone.Location("Europe/Lisbon").String())
	assert.Equal(t, timezone.DefaultTimezone, timezone.Location("").String())
	assert.Equal(t, timezone.DefaultTimezone, timezone.Location("garbage").String())
}

func TestParseDateTime(t *testing.T) {
	got, err := timezone.ParseDateTime("UTC", "2026-09-07", "10:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.September, 7, 10, 30, 0, 0, time.UTC), got)

	_, err = timezone.ParseDateTime("UTC", "2026-09-07", "25:99")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := timezone.ParseDate("UTC", "2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, time.September, got.Month())

	_, err = timezone.ParseDate("UTC", "07/09/2026")
	assert.Error(t, err)
}

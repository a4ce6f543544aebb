package validators_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimsync/barbershop-api/internal/apperr"
	"github.com/trimsync/barbershop-api/internal/validators"
)

type bookingRequest struct {
	BarberID    string `validate:"required,uuid"`
	DurationMin int    `validate:"gt=0,lte=480"`
	Email       string `validate:"omitempty,email"`
}

func TestStructValid(t *testing.T) {
	r := validators.NewRequest()

	err := r.Struct(bookingRequest{
		BarberID:    "7a3e2f9c-4a2b-4c3d-9e1f-0a1b2c3d4e5f",
		DurationMin: 30,
	})
	require.NoError(t, err)
}

func TestStructInvalid(t *testing.T) {
	r := validators.NewRequest()

	err := r.Struct(bookingRequest{
		BarberID:    "not-a-uuid",
		DurationMin: 0,
		Email:       "nope",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, "invalid_request", apperr.CodeOf(err))

	// All failing fields show up in one message.
	msg := err.Error()
	assert.Contains(t, msg, "BarberID")
	assert.Contains(t, msg, "DurationMin")
	assert.Contains(t, msg, "Email")
}

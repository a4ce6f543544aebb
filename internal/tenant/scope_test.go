package tenant_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/trimsync/barbershop-api/internal/tenant"
)

func TestScopeOwns(t *testing.T) {
	mine := uuid.New()
	theirs := uuid.New()

	scope := tenant.NewScope(mine, uuid.New(), tenant.RoleBarber)

	assert.True(t, scope.Owns(mine))
	assert.False(t, scope.Owns(theirs))
	assert.False(t, scope.Owns(uuid.Nil))
}

func TestScopeIsOwner(t *testing.T) {
	owner := tenant.NewScope(uuid.New(), uuid.New(), tenant.RoleOwner)
	barber := tenant.NewScope(uuid.New(), uuid.New(), tenant.RoleBarber)

	assert.True(t, owner.IsOwner())
	assert.False(t, barber.IsOwner())
}

package tenant

import (
	"github.com/google/uuid"
)

// Roles carried by a resolved scope.
const (
	RoleOwner  = "owner"
	RoleBarber = "barber"
)

// Scope is the resolved tenant lens for one request: which barbershop the
// caller acts inside, who the caller is, and with what role. It is built once
// by the auth middleware and passed explicitly to every scheduling operation;
// it is never stored in a global and never outlives the request.
type Scope struct {
	TenantID uuid.UUID
	CallerID uuid.UUID
	Role     string
}

func NewScope(tenantID, callerID uuid.UUID, role string) Scope {
	return Scope{TenantID: tenantID, CallerID: callerID, Role: role}
}

// Owns reports whether an entity with the given barbershop id belongs to the
// caller's tenant.
func (s Scope) Owns(tenantID uuid.UUID) bool {
	return s.TenantID == tenantID
}

func (s Scope) IsOwner() bool {
	return s.Role == RoleOwner
}

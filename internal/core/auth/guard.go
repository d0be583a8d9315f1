package auth

import "github.com/paintcompare/marketplace-api/internal/core/domain"

// Authorize passes iff identity.Role is in requiredRoles. An empty role set
// means "any authenticated identity". A nil identity yields ErrMissingToken
// (unauthenticated) rather than ErrForbidden, so the boundary can distinguish
// redirect-to-login from an explicit denial.
func Authorize(identity *domain.Identity, requiredRoles ...string) error {
	if identity == nil {
		return domain.ErrMissingToken
	}
	if len(requiredRoles) == 0 {
		return nil
	}
	for _, role := range requiredRoles {
		if identity.Role == role {
			return nil
		}
	}
	return domain.ErrForbidden
}

// Policy is the static operation-name → allowed-roles mapping, built once at
// startup and consulted by the router when wiring route guards.
type Policy map[string][]string

// Allowed returns the role set for op. An unknown operation returns an empty
// non-nil slice, which Authorize treats as "any authenticated identity";
// operations that should be public simply do not go through the guard.
func (p Policy) Allowed(op string) []string {
	roles, ok := p[op]
	if !ok {
		return []string{}
	}
	return roles
}

// DefaultPolicy is the marketplace's access table.
func DefaultPolicy() Policy {
	return Policy{
		"catalog.manage": {domain.RoleSupplier, domain.RoleAdmin},
		"orders.place":   {domain.RoleCustomer},
		"orders.view":    {}, // any authenticated; ownership enforced in the service
		"orders.update":  {domain.RoleAdmin},
		"admin.users":    {domain.RoleAdmin},
	}
}

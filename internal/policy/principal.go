package policy

import "bcms/backend/internal/models"

// Principal identifies who is performing an operation. It is threaded
// explicitly through every storage call and policy check; nothing in the
// core reads the current user from ambient state.
type Principal struct {
	ID   string
	Role models.Role
}

// Authenticated reports whether the principal represents a signed-in user.
func (p Principal) Authenticated() bool {
	return p.ID != ""
}

// System is the principal used by operator tooling (cmd/admin). It holds
// the admin role without corresponding to a profile row.
var System = Principal{ID: "system", Role: models.RoleAdmin}

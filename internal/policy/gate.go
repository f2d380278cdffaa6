// Package policy implements the row-level authorization model as a pure,
// storage-independent rule set. Every (principal, record, operation)
// triple is decided here before the storage layer touches a row.
//
// The design follows a Gate/Policy registry: the Gate holds one Policy
// per resource type, each Policy is a pure predicate over the principal,
// the action, and the record. All rules are OR-of-clauses; any true
// clause grants access.
package policy

// Policy decides authorization for one resource type.
type Policy interface {
	// Can returns true if the principal may perform action on resource.
	// For creates, resource is the record about to be written.
	Can(p Principal, action Action, resource any) bool
}

// Resource type names registered on the default gate.
const (
	ResourceProfile   = "profile"
	ResourceRole      = "role"
	ResourceComplaint = "complaint"
	ResourceComment   = "comment"
)

// Gate is the central authorization checkpoint.
type Gate struct {
	policies map[string]Policy
}

// NewGate returns a gate with the full BCMS rule set registered.
func NewGate() *Gate {
	g := &Gate{policies: make(map[string]Policy)}
	g.Register(ResourceProfile, ProfilePolicy{})
	g.Register(ResourceRole, RolePolicy{})
	g.Register(ResourceComplaint, ComplaintPolicy{})
	g.Register(ResourceComment, CommentPolicy{})
	return g
}

// Register adds or replaces the policy for a resource type.
func (g *Gate) Register(resourceType string, p Policy) {
	g.policies[resourceType] = p
}

// Authorize returns nil if the principal may perform the action,
// ErrAccessDenied otherwise. Unauthenticated principals are always
// denied; an unregistered resource type denies with ErrNoPolicy.
func (g *Gate) Authorize(p Principal, action Action, resourceType string, resource any) error {
	if !p.Authenticated() {
		return ErrAccessDenied
	}
	pol, ok := g.policies[resourceType]
	if !ok {
		return ErrNoPolicy
	}
	if !pol.Can(p, action, resource) {
		return ErrAccessDenied
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate) Can(p Principal, action Action, resourceType string, resource any) bool {
	return g.Authorize(p, action, resourceType, resource) == nil
}

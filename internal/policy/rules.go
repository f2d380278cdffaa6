package policy

import "bcms/backend/internal/models"

// ProfilePolicy covers the profiles table. Names and emails are not
// secret within the institution, so any authenticated principal may read
// any profile; only the owner may edit it. Profile deletion is an admin
// operation (account removal), never self-service.
type ProfilePolicy struct{}

func (ProfilePolicy) Can(p Principal, action Action, resource any) bool {
	switch action {
	case ActionRead:
		return true // gate already rejected unauthenticated principals
	case ActionCreate:
		// Profiles are created by the signup flow for the principal
		// themselves, or by operator tooling.
		profile, ok := resource.(*models.Profile)
		if !ok {
			return false
		}
		return profile.ID == p.ID || p.Role == models.RoleAdmin
	case ActionUpdate:
		profile, ok := resource.(*models.Profile)
		return ok && profile.ID == p.ID
	case ActionDelete:
		return p.Role == models.RoleAdmin
	}
	return false
}

// RolePolicy covers the user_roles table. A principal may read only
// their own role row; every write is admin-only. Keeping roles out of
// the profile record means no user can self-escalate through profile
// edits.
type RolePolicy struct{}

func (RolePolicy) Can(p Principal, action Action, resource any) bool {
	switch action {
	case ActionRead:
		role, ok := resource.(*models.UserRole)
		return ok && role.UserID == p.ID
	case ActionCreate, ActionUpdate, ActionDelete:
		return p.Role == models.RoleAdmin
	}
	return false
}

// ComplaintPolicy covers the complaints table.
//
// Read is broad: the owner, the current assignee, and anyone holding
// staff or admin may see a complaint. Update is narrow: only the current
// assignee (when staff) or an admin. A staff principal who is not the
// assignee must be assigned first.
type ComplaintPolicy struct{}

func (ComplaintPolicy) Can(p Principal, action Action, resource any) bool {
	c, ok := resource.(*models.Complaint)
	if !ok {
		return false
	}
	switch action {
	case ActionRead:
		return c.StudentID == p.ID ||
			isAssignee(p, c) ||
			p.Role == models.RoleStaff ||
			p.Role == models.RoleAdmin
	case ActionCreate:
		// Only as the student themselves: owner must equal the creator.
		return c.StudentID == p.ID
	case ActionUpdate:
		return (p.Role == models.RoleStaff && isAssignee(p, c)) ||
			p.Role == models.RoleAdmin
	case ActionDelete:
		return p.Role == models.RoleAdmin
	}
	return false
}

// CommentRecord bundles a comment with its parent complaint for policy
// evaluation. Comment visibility is derived from the parent; for
// thread-level reads Comment is nil.
type CommentRecord struct {
	Comment *models.Comment
	Parent  *models.Complaint
}

// CommentPolicy covers the comments table.
//
// Read requires owner, assignee, or admin on the parent complaint. This
// is narrower than complaint read: a staff principal browsing globally
// can open a complaint but not its thread unless assigned. The asymmetry
// is inherited behavior and is kept on purpose; see DESIGN.md.
type CommentPolicy struct{}

func (CommentPolicy) Can(p Principal, action Action, resource any) bool {
	rec, ok := resource.(CommentRecord)
	if !ok || rec.Parent == nil {
		return false
	}
	switch action {
	case ActionRead:
		return canReadThread(p, rec.Parent)
	case ActionCreate:
		// Author as themselves, and only where they could read.
		return rec.Comment != nil &&
			rec.Comment.UserID == p.ID &&
			canReadThread(p, rec.Parent)
	}
	// Comments are append-only: no update or delete clause exists.
	return false
}

func canReadThread(p Principal, c *models.Complaint) bool {
	return c.StudentID == p.ID || isAssignee(p, c) || p.Role == models.RoleAdmin
}

func isAssignee(p Principal, c *models.Complaint) bool {
	return c.AssignedTo != nil && *c.AssignedTo == p.ID
}

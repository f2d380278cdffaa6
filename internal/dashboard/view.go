// Package dashboard derives role-appropriate views from complaint
// snapshots. Everything here is a pure function over the collections the
// caller already fetched through the policy-checked storage layer; the
// composer performs no authorization of its own and keeps no state, so
// every mutation upstream is followed by a full re-fetch and
// recomputation.
package dashboard

import (
	"time"

	"bcms/backend/internal/models"
)

// View selects one of the three dashboard variants.
type View string

const (
	ViewStudent View = "student"
	ViewStaff   View = "staff"
	ViewAdmin   View = "admin"
)

// ViewForRole is total: every role maps to exactly one variant, and an
// unknown role falls back to the least-privileged one rather than
// misrouting.
func ViewForRole(role models.Role) View {
	switch role {
	case models.RoleStaff:
		return ViewStaff
	case models.RoleAdmin:
		return ViewAdmin
	default:
		return ViewStudent
	}
}

// ViewData is the composed dashboard payload. Sections beyond the
// complaint list are populated per variant: partition for staff and
// admin, full aggregates for admin only.
type ViewData struct {
	Variant    View               `json:"variant"`
	Complaints []models.Complaint `json:"complaints"`

	Unassigned []models.Complaint `json:"unassigned,omitempty"`
	Assigned   []models.Complaint `json:"assigned,omitempty"`

	StatusCounts   map[models.Status]int   `json:"status_counts"`
	CategoryCounts map[models.Category]int `json:"category_counts,omitempty"`
	Histogram      []DayCount              `json:"histogram,omitempty"`
	Overdue        []models.Complaint      `json:"overdue,omitempty"`
}

// Compose builds the dashboard for one role from a snapshot. The list
// section is filtered and sorted; the partition is computed after
// filter+sort; the aggregate sections summarize the whole snapshot.
func Compose(role models.Role, complaints []models.Complaint, ownerNames map[string]string, f Filter, key SortKey, now time.Time) ViewData {
	listed := Sort(f.Apply(complaints, ownerNames), key, ownerNames)

	data := ViewData{
		Variant:      ViewForRole(role),
		Complaints:   listed,
		StatusCounts: CountsByStatus(complaints),
	}

	switch data.Variant {
	case ViewStaff:
		part := Split(listed)
		data.Unassigned = part.Unassigned
		data.Assigned = part.Assigned
	case ViewAdmin:
		part := Split(listed)
		data.Unassigned = part.Unassigned
		data.Assigned = part.Assigned
		data.CategoryCounts = CountsByCategory(complaints)
		data.Histogram = Histogram(complaints, now)
		data.Overdue = Overdue(complaints, now)
	}
	return data
}

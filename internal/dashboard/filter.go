package dashboard

import (
	"strings"

	"bcms/backend/internal/models"
)

// Filter is a predicate conjunction over a complaint list. Zero-value
// fields mean "no constraint".
type Filter struct {
	// Query matches case-insensitively as a substring of the title or
	// of the owner's display name.
	Query string
	// Status must match exactly when set.
	Status models.Status
	// AssignedTo must match the assignee exactly when set.
	AssignedTo string
}

// Apply returns the complaints satisfying every set constraint, in input
// order. ownerNames maps student IDs to display names for text matching;
// a missing entry simply never matches the query.
func (f Filter) Apply(complaints []models.Complaint, ownerNames map[string]string) []models.Complaint {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if query != "" && !matchesText(c, ownerNames[c.StudentID], query) {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.AssignedTo != "" && (c.AssignedTo == nil || *c.AssignedTo != f.AssignedTo) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesText(c models.Complaint, ownerName, query string) bool {
	return strings.Contains(strings.ToLower(c.Title), query) ||
		strings.Contains(strings.ToLower(ownerName), query)
}

// Partition holds a complaint list split by assignment.
type Partition struct {
	Unassigned []models.Complaint `json:"unassigned"`
	Assigned   []models.Complaint `json:"assigned"`
}

// Split partitions complaints into unassigned and assigned, preserving
// order. Intended to run after filter and sort.
func Split(complaints []models.Complaint) Partition {
	part := Partition{
		Unassigned: []models.Complaint{},
		Assigned:   []models.Complaint{},
	}
	for _, c := range complaints {
		if c.AssignedTo == nil {
			part.Unassigned = append(part.Unassigned, c)
		} else {
			part.Assigned = append(part.Assigned, c)
		}
	}
	return part
}

package models

// Event is an invalidation hint broadcast to connected dashboards after a
// mutation. It carries identifiers only, never row data: clients that can
// see the affected record re-fetch it through the normal, policy-checked
// read path.
type Event struct {
	Type        string `json:"type"` // "complaint_created", "complaint_updated", "complaint_assigned", "complaint_deleted", "comment_added", "role_changed"
	ComplaintID string `json:"complaint_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

const (
	EventComplaintCreated  = "complaint_created"
	EventComplaintUpdated  = "complaint_updated"
	EventComplaintAssigned = "complaint_assigned"
	EventComplaintDeleted  = "complaint_deleted"
	EventCommentAdded      = "comment_added"
	EventRoleChanged       = "role_changed"
)

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the position of a complaint in its lifecycle.
// pending -> in_progress -> resolved is the reference flow, but no
// transition is forbidden beyond who may trigger it; status and
// assignment are independently mutable.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusResolved
}

// Category classifies a complaint for triage and reporting.
type Category string

const (
	CategoryAcademic       Category = "academic"
	CategoryInfrastructure Category = "infrastructure"
	CategoryAdministrative Category = "administrative"
	CategoryTechnical      Category = "technical"
	CategoryOther          Category = "other"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryAcademic,
	CategoryInfrastructure,
	CategoryAdministrative,
	CategoryTechnical,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Complaint is a student-filed issue. StudentID is the owner and is
// immutable after creation. AssignedTo is nil until an admin assigns the
// complaint to a staff member.
type Complaint struct {
	ID          string    `gorm:"primaryKey" json:"id"` // UUID
	StudentID   string    `gorm:"not null;index" json:"student_id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    Category  `gorm:"type:text;not null" json:"category"`
	Status      Status    `gorm:"type:text;not null;default:pending" json:"status"`
	AssignedTo  *string   `gorm:"index" json:"assigned_to"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	return
}

// Validate checks required fields and enum membership before the record
// touches storage.
func (c *Complaint) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.Description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if !c.Category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", c.Category)}
	}
	if !c.Status.Valid() {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", c.Status)}
	}
	return nil
}

// ValidationError reports a field that failed input validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

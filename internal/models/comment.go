package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is one entry in a complaint's append-only discussion thread.
// There is no update or delete path for comments anywhere in the system;
// threads are displayed in created_at ascending order.
type Comment struct {
	ID          string    `gorm:"primaryKey" json:"id"` // UUID
	ComplaintID string    `gorm:"not null;index" json:"complaint_id"`
	UserID      string    `gorm:"not null" json:"user_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (c *Comment) Validate() error {
	if strings.TrimSpace(c.Message) == "" {
		return &ValidationError{Field: "message", Reason: "must not be empty"}
	}
	return nil
}

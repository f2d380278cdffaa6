package storage

import (
	"encoding/json"
	"errors"
	"log"

	"bcms/backend/internal/config"
	"bcms/backend/internal/models"
	"bcms/backend/internal/policy"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ComplaintUpdate carries the mutable fields of a complaint. Nil fields
// are left untouched. There is no version check: two principals updating
// the same complaint both succeed and the last write wins.
type ComplaintUpdate struct {
	Title       *string
	Description *string
	Category    *models.Category
	Status      *models.Status
}

// CreateComplaint files a new complaint. The owner is always the acting
// principal; policy rejects any attempt to file on someone else's behalf.
func (s *Service) CreateComplaint(p policy.Principal, c *models.Complaint) error {
	if c.StudentID == "" {
		c.StudentID = p.ID
	}
	if c.Status == "" {
		c.Status = models.StatusPending
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.Gate.Authorize(p, policy.ActionCreate, policy.ResourceComplaint, c); err != nil {
		return err
	}
	if err := s.DB.Create(c).Error; err != nil {
		log.Printf("ERROR: Failed to create complaint for student %s: %v", c.StudentID, err)
		return err
	}
	s.PublishEvent(models.Event{Type: models.EventComplaintCreated, ComplaintID: c.ID})
	return nil
}

func (s *Service) GetComplaint(p policy.Principal, id string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Absent and denied are the same outcome.
		return nil, policy.ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}
	if err := s.Gate.Authorize(p, policy.ActionRead, policy.ResourceComplaint, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComplaints returns every complaint the principal may read, newest
// first. The WHERE clause mirrors the read rule so rows the principal
// cannot see never leave the database.
func (s *Service) ListComplaints(p policy.Principal) ([]models.Complaint, error) {
	q := s.DB.Order("created_at desc")
	if p.Role != models.RoleStaff && p.Role != models.RoleAdmin {
		q = q.Where("student_id = ? OR assigned_to = ?", p.ID, p.ID)
	}
	var complaints []models.Complaint
	if err := q.Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints for %s: %v", p.ID, err)
		return nil, err
	}
	return complaints, nil
}

// UpdateComplaint applies an edit as a single UPDATE statement.
func (s *Service) UpdateComplaint(p policy.Principal, id string, upd ComplaintUpdate) (*models.Complaint, error) {
	var existing models.Complaint
	err := s.DB.First(&existing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}
	if err := s.Gate.Authorize(p, policy.ActionUpdate, policy.ResourceComplaint, &existing); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if upd.Title != nil {
		existing.Title = *upd.Title
		fields["title"] = *upd.Title
	}
	if upd.Description != nil {
		existing.Description = *upd.Description
		fields["description"] = *upd.Description
	}
	if upd.Category != nil {
		existing.Category = *upd.Category
		fields["category"] = *upd.Category
	}
	if upd.Status != nil {
		existing.Status = *upd.Status
		fields["status"] = *upd.Status
	}
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return &existing, nil
	}

	if err := s.DB.Model(&models.Complaint{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		log.Printf("ERROR: Failed to update complaint %s: %v", id, err)
		return nil, err
	}
	s.PublishEvent(models.Event{Type: models.EventComplaintUpdated, ComplaintID: id})
	// Re-read so the caller sees the refreshed updated_at.
	var updated models.Complaint
	if err := s.DB.First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// AssignComplaint hands a complaint to a staff member. assigned_to and
// status move together in one atomic statement; assigning the same staff
// member twice is a no-op with the same final state. Re-assignment runs
// the same statement, so status returns to in_progress with the new
// assignee.
func (s *Service) AssignComplaint(p policy.Principal, complaintID, staffID string) (*models.Complaint, error) {
	var existing models.Complaint
	err := s.DB.First(&existing, "id = ?", complaintID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}
	if err := s.Gate.Authorize(p, policy.ActionUpdate, policy.ResourceComplaint, &existing); err != nil {
		return nil, err
	}

	// The assignee must currently hold the staff role.
	role, err := s.RoleOf(staffID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleStaff {
		return nil, &models.ValidationError{Field: "staff_id", Reason: "assignee must hold the staff role"}
	}

	err = s.DB.Model(&models.Complaint{}).Where("id = ?", complaintID).Updates(map[string]interface{}{
		"assigned_to": staffID,
		"status":      models.StatusInProgress,
	}).Error
	if err != nil {
		log.Printf("ERROR: Failed to assign complaint %s to %s: %v", complaintID, staffID, err)
		return nil, err
	}
	s.PublishEvent(models.Event{Type: models.EventComplaintAssigned, ComplaintID: complaintID, UserID: staffID})

	var updated models.Complaint
	if err := s.DB.First(&updated, "id = ?", complaintID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteComplaint(p policy.Principal, id string) error {
	var existing models.Complaint
	err := s.DB.First(&existing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return policy.ErrAccessDenied
	}
	if err != nil {
		return err
	}
	if err := s.Gate.Authorize(p, policy.ActionDelete, policy.ResourceComplaint, &existing); err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("complaint_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Complaint{}, "id = ?", id).Error
	})
	if err != nil {
		log.Printf("ERROR: Failed to delete complaint %s: %v", id, err)
		return err
	}
	s.PublishEvent(models.Event{Type: models.EventComplaintDeleted, ComplaintID: id})
	return nil
}

// ListComments returns a complaint's thread in created_at ascending
// order. Thread visibility is the comment rule, not the complaint rule:
// staff browsing globally are denied here unless they are the assignee.
func (s *Service) ListComments(p policy.Principal, complaintID string) ([]models.Comment, error) {
	var parent models.Complaint
	err := s.DB.First(&parent, "id = ?", complaintID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}
	if err := s.Gate.Authorize(p, policy.ActionRead, policy.ResourceComment, policy.CommentRecord{Parent: &parent}); err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := s.DB.Where("complaint_id = ?", complaintID).Order("created_at asc").Find(&comments).Error; err != nil {
		log.Printf("ERROR: Failed to list comments for complaint %s: %v", complaintID, err)
		return nil, err
	}
	return comments, nil
}

// AddComment appends to a complaint's thread. Comments are append-only;
// no update or delete method exists on this interface.
func (s *Service) AddComment(p policy.Principal, comment *models.Comment) error {
	if comment.UserID == "" {
		comment.UserID = p.ID
	}
	if err := comment.Validate(); err != nil {
		return err
	}

	var parent models.Complaint
	err := s.DB.First(&parent, "id = ?", comment.ComplaintID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return policy.ErrAccessDenied
	}
	if err != nil {
		return err
	}
	rec := policy.CommentRecord{Comment: comment, Parent: &parent}
	if err := s.Gate.Authorize(p, policy.ActionCreate, policy.ResourceComment, rec); err != nil {
		return err
	}

	if err := s.DB.Create(comment).Error; err != nil {
		log.Printf("ERROR: Failed to add comment to complaint %s: %v", comment.ComplaintID, err)
		return err
	}
	s.PublishEvent(models.Event{Type: models.EventCommentAdded, ComplaintID: comment.ComplaintID})
	return nil
}

// PublishEvent pushes an invalidation hint to the dashboard channel.
// Publishing is best-effort: a mutation never fails because Redis is
// down or absent.
func (s *Service) PublishEvent(ev models.Event) {
	if s.Redis == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("ERROR: Failed to marshal event %v: %v", ev, err)
		return
	}
	if err := s.Redis.Publish(s.Ctx, config.EventsChannel, string(payload)).Err(); err != nil {
		log.Printf("WARNING: Failed to publish event %s: %v", ev.Type, err)
	}
}

// SubscribeEvents subscribes to the dashboard event channel.
func (s *Service) SubscribeEvents() *redis.PubSub {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Subscribe(s.Ctx, config.EventsChannel)
}

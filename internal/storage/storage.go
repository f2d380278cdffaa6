package storage

import (
	"context"
	"errors"
	"log"
	"strings"

	"bcms/backend/internal/config"
	"bcms/backend/internal/models"
	"bcms/backend/internal/policy"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the single gateway to persisted state. Every method takes
// the acting principal explicitly and consults the policy gate before
// touching a row; nothing below this interface re-checks authorization.
type Storage interface {
	CreateAccount(fullName, email string) (*models.Profile, error)
	GetProfileByEmail(email string) (*models.Profile, error)
	GetProfile(p policy.Principal, id string) (*models.Profile, error)
	ListProfiles(p policy.Principal) ([]models.Profile, error)
	UpdateProfile(p policy.Principal, profile *models.Profile) error
	DeleteUser(p policy.Principal, userID string) error

	RoleOf(userID string) (models.Role, error)
	PrincipalFor(userID string) (policy.Principal, error)
	GetOwnRole(p policy.Principal) (*models.UserRole, error)
	SetRole(p policy.Principal, userID string, role models.Role) error

	CreateComplaint(p policy.Principal, c *models.Complaint) error
	GetComplaint(p policy.Principal, id string) (*models.Complaint, error)
	ListComplaints(p policy.Principal) ([]models.Complaint, error)
	UpdateComplaint(p policy.Principal, id string, upd ComplaintUpdate) (*models.Complaint, error)
	AssignComplaint(p policy.Principal, complaintID, staffID string) (*models.Complaint, error)
	DeleteComplaint(p policy.Principal, id string) error

	ListComments(p policy.Principal, complaintID string) ([]models.Comment, error)
	AddComment(p policy.Principal, comment *models.Comment) error

	PublishEvent(ev models.Event)
	SubscribeEvents() *redis.PubSub
}

// Service implements Storage on GORM with an optional Redis client used
// for role-resolution caching and event fan-out. Redis may be nil (the
// admin CLI and the test suite run without it); every Redis touch is
// guarded.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Gate  *policy.Gate
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Gate:  policy.NewGate(),
		Ctx:   context.Background(),
	}
}

// CreateAccount inserts a profile and its default student role in one
// transaction. This is the signup trigger-equivalent: no account can
// exist, even briefly, without exactly one role row.
func (s *Service) CreateAccount(fullName, email string) (*models.Profile, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, &models.ValidationError{Field: "full_name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(email) == "" {
		return nil, &models.ValidationError{Field: "email", Reason: "must not be empty"}
	}

	profile := &models.Profile{FullName: fullName, Email: email}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserRole{UserID: profile.ID, Role: models.RoleStudent}).Error
	})
	if err != nil {
		log.Printf("ERROR: Failed to create account for %s: %v", email, err)
		return nil, err
	}
	return profile, nil
}

// GetProfileByEmail looks up an account for token issue. This is the one
// read that runs before a principal exists, so it is not gated.
func (s *Service) GetProfileByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.Where("email = ?", email).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Service) GetProfile(p policy.Principal, id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Absent and denied are the same outcome.
		return nil, policy.ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}
	if err := s.Gate.Authorize(p, policy.ActionRead, policy.ResourceProfile, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Service) ListProfiles(p policy.Principal) ([]models.Profile, error) {
	if err := s.Gate.Authorize(p, policy.ActionRead, policy.ResourceProfile, &models.Profile{}); err != nil {
		return nil, err
	}
	var profiles []models.Profile
	if err := s.DB.Order("full_name asc").Find(&profiles).Error; err != nil {
		log.Printf("ERROR: Failed to list profiles: %v", err)
		return nil, err
	}
	return profiles, nil
}

func (s *Service) UpdateProfile(p policy.Principal, profile *models.Profile) error {
	var existing models.Profile
	err := s.DB.First(&existing, "id = ?", profile.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return policy.ErrAccessDenied
	}
	if err != nil {
		return err
	}
	if err := s.Gate.Authorize(p, policy.ActionUpdate, policy.ResourceProfile, &existing); err != nil {
		return err
	}
	return s.DB.Model(&existing).Updates(map[string]interface{}{
		"full_name": profile.FullName,
		"email":     profile.Email,
	}).Error
}

// DeleteUser removes an account. Owned complaints and their comments
// cascade away; complaints merely assigned to the user keep their rows
// and lose the assignee reference.
func (s *Service) DeleteUser(p policy.Principal, userID string) error {
	var existing models.Profile
	err := s.DB.First(&existing, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return policy.ErrAccessDenied
	}
	if err != nil {
		return err
	}
	if err := s.Gate.Authorize(p, policy.ActionDelete, policy.ResourceProfile, &existing); err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var owned []string
		if err := tx.Model(&models.Complaint{}).Where("student_id = ?", userID).Pluck("id", &owned).Error; err != nil {
			return err
		}
		if len(owned) > 0 {
			if err := tx.Where("complaint_id IN ?", owned).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", owned).Delete(&models.Complaint{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Complaint{}).Where("assigned_to = ?", userID).Update("assigned_to", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Profile{}, "id = ?", userID).Error
	})
	if err != nil {
		log.Printf("ERROR: Failed to delete user %s: %v", userID, err)
		return err
	}
	s.invalidateRoleCache(userID)
	return nil
}

// RoleOf resolves the current role for a user, consulting the Redis
// cache first. A user without a role row resolves to student; that state
// is never produced by this layer but the default keeps resolution total.
func (s *Service) RoleOf(userID string) (models.Role, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(s.Ctx, roleCacheKey(userID)).Result(); err == nil {
			return models.ParseRole(cached), nil
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("WARNING: Role cache read failed for %s: %v", userID, err)
		}
	}

	var row models.UserRole
	err := s.DB.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoleStudent, nil
	}
	if err != nil {
		return models.RoleStudent, err
	}

	if s.Redis != nil {
		if err := s.Redis.Set(s.Ctx, roleCacheKey(userID), string(row.Role), config.RoleCacheTTL).Err(); err != nil {
			log.Printf("WARNING: Role cache write failed for %s: %v", userID, err)
		}
	}
	return row.Role, nil
}

// PrincipalFor builds the acting principal for an authenticated user ID.
// The role always comes from the role store, never from token claims, so
// a promotion or demotion takes effect on the next request.
func (s *Service) PrincipalFor(userID string) (policy.Principal, error) {
	role, err := s.RoleOf(userID)
	if err != nil {
		return policy.Principal{}, err
	}
	return policy.Principal{ID: userID, Role: role}, nil
}

// GetOwnRole returns the principal's own role row. Reading another
// user's role record is denied by policy.
func (s *Service) GetOwnRole(p policy.Principal) (*models.UserRole, error) {
	var row models.UserRole
	err := s.DB.Where("user_id = ?", p.ID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}
	if err := s.Gate.Authorize(p, policy.ActionRead, policy.ResourceRole, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// SetRole promotes or demotes a user. The replacement runs in one
// transaction that deletes any existing rows and inserts the new one, so
// the one-role-per-user invariant holds after any sequence of calls.
func (s *Service) SetRole(p policy.Principal, userID string, role models.Role) error {
	if !role.Valid() {
		return &models.ValidationError{Field: "role", Reason: "unknown role"}
	}
	if err := s.Gate.Authorize(p, policy.ActionUpdate, policy.ResourceRole, &models.UserRole{UserID: userID}); err != nil {
		return err
	}

	var profile models.Profile
	err := s.DB.First(&profile, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return policy.ErrAccessDenied
	}
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserRole{UserID: userID, Role: role}).Error
	})
	if err != nil {
		log.Printf("ERROR: Failed to set role %s for user %s: %v", role, userID, err)
		return err
	}

	s.invalidateRoleCache(userID)
	s.PublishEvent(models.Event{Type: models.EventRoleChanged, UserID: userID})
	return nil
}

func (s *Service) invalidateRoleCache(userID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(s.Ctx, roleCacheKey(userID)).Err(); err != nil {
		log.Printf("WARNING: Role cache invalidation failed for %s: %v", userID, err)
	}
}

func roleCacheKey(userID string) string {
	return "role:" + userID
}

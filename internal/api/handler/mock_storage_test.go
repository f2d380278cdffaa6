package handler_test

import (
	"bcms/backend/internal/models"
	"bcms/backend/internal/policy"
	"bcms/backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockStorage implements storage.Storage for handler tests.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateAccount(fullName, email string) (*models.Profile, error) {
	args := m.Called(fullName, email)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) GetProfileByEmail(email string) (*models.Profile, error) {
	args := m.Called(email)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) GetProfile(p policy.Principal, id string) (*models.Profile, error) {
	args := m.Called(p, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListProfiles(p policy.Principal) ([]models.Profile, error) {
	args := m.Called(p)
	if v := args.Get(0); v != nil {
		return v.([]models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) UpdateProfile(p policy.Principal, profile *models.Profile) error {
	return m.Called(p, profile).Error(0)
}

func (m *MockStorage) DeleteUser(p policy.Principal, userID string) error {
	return m.Called(p, userID).Error(0)
}

func (m *MockStorage) RoleOf(userID string) (models.Role, error) {
	args := m.Called(userID)
	return args.Get(0).(models.Role), args.Error(1)
}

func (m *MockStorage) PrincipalFor(userID string) (policy.Principal, error) {
	args := m.Called(userID)
	return args.Get(0).(policy.Principal), args.Error(1)
}

func (m *MockStorage) GetOwnRole(p policy.Principal) (*models.UserRole, error) {
	args := m.Called(p)
	if v := args.Get(0); v != nil {
		return v.(*models.UserRole), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) SetRole(p policy.Principal, userID string, role models.Role) error {
	return m.Called(p, userID, role).Error(0)
}

func (m *MockStorage) CreateComplaint(p policy.Principal, c *models.Complaint) error {
	return m.Called(p, c).Error(0)
}

func (m *MockStorage) GetComplaint(p policy.Principal, id string) (*models.Complaint, error) {
	args := m.Called(p, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListComplaints(p policy.Principal) ([]models.Complaint, error) {
	args := m.Called(p)
	if v := args.Get(0); v != nil {
		return v.([]models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) UpdateComplaint(p policy.Principal, id string, upd storage.ComplaintUpdate) (*models.Complaint, error) {
	args := m.Called(p, id, upd)
	if v := args.Get(0); v != nil {
		return v.(*models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) AssignComplaint(p policy.Principal, complaintID, staffID string) (*models.Complaint, error) {
	args := m.Called(p, complaintID, staffID)
	if v := args.Get(0); v != nil {
		return v.(*models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) DeleteComplaint(p policy.Principal, id string) error {
	return m.Called(p, id).Error(0)
}

func (m *MockStorage) ListComments(p policy.Principal, complaintID string) ([]models.Comment, error) {
	args := m.Called(p, complaintID)
	if v := args.Get(0); v != nil {
		return v.([]models.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) AddComment(p policy.Principal, comment *models.Comment) error {
	return m.Called(p, comment).Error(0)
}

func (m *MockStorage) PublishEvent(ev models.Event) {
	m.Called(ev)
}

func (m *MockStorage) SubscribeEvents() *redis.PubSub {
	args := m.Called()
	if v := args.Get(0); v != nil {
		return v.(*redis.PubSub)
	}
	return nil
}

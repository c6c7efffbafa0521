package services

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/thereayou/jobdesk/internal/models"
)

// MockStore is a testify mock covering ChatStore and MembershipStore.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetUser(id uuid.UUID) (*models.User, error) {
	args := m.Called(id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetCompany(id uuid.UUID) (*models.Company, error) {
	args := m.Called(id)
	if company, ok := args.Get(0).(*models.Company); ok {
		return company, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetMember(companyID, userID uuid.UUID) (*models.CompanyMember, error) {
	args := m.Called(companyID, userID)
	if member, ok := args.Get(0).(*models.CompanyMember); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) SaveMember(member *models.CompanyMember) error {
	args := m.Called(member)
	return args.Error(0)
}

func (m *MockStore) UpdateMemberRole(companyID, userID uuid.UUID, role models.Role) error {
	args := m.Called(companyID, userID, role)
	return args.Error(0)
}

func (m *MockStore) GetChat(id uuid.UUID) (*models.Chat, error) {
	args := m.Called(id)
	if chat, ok := args.Get(0).(*models.Chat); ok {
		return chat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetChatByPair(userID, companyID uuid.UUID) (*models.Chat, error) {
	args := m.Called(userID, companyID)
	if chat, ok := args.Get(0).(*models.Chat); ok {
		return chat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateChatWithParticipants(userID, companyID uuid.UUID) (*models.Chat, error) {
	args := m.Called(userID, companyID)
	if chat, ok := args.Get(0).(*models.Chat); ok {
		return chat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetUserChats(userID uuid.UUID) ([]models.Chat, error) {
	args := m.Called(userID)
	if chats, ok := args.Get(0).([]models.Chat); ok {
		return chats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetCompanyChats(companyID uuid.UUID) ([]models.Chat, error) {
	args := m.Called(companyID)
	if chats, ok := args.Get(0).([]models.Chat); ok {
		return chats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) SaveMessage(message *models.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockStore) GetChatMessages(chatID uuid.UUID) ([]models.Message, error) {
	args := m.Called(chatID)
	if messages, ok := args.Get(0).([]models.Message); ok {
		return messages, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetLastMessage(chatID uuid.UUID) (*models.Message, error) {
	args := m.Called(chatID)
	if message, ok := args.Get(0).(*models.Message); ok {
		return message, args.Error(1)
	}
	return nil, args.Error(1)
}

package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/jobdesk/internal/models"
	"gorm.io/gorm"
)

func TestIsOwnerOrManager(t *testing.T) {
	companyID := uuid.New()
	ownerID := uuid.New()
	company := &models.Company{ID: companyID, OwnerID: ownerID}

	tcases := []struct {
		name     string
		userID   uuid.UUID
		member   *models.CompanyMember
		expected bool
	}{
		{
			name:     "owner",
			userID:   ownerID,
			expected: true,
		},
		{
			name:     "manager",
			userID:   uuid.New(),
			member:   &models.CompanyMember{Role: models.RoleManager},
			expected: true,
		},
		{
			name:     "plain member",
			userID:   uuid.New(),
			member:   &models.CompanyMember{Role: models.RoleMember},
			expected: false,
		},
		{
			name:     "non-member",
			userID:   uuid.New(),
			expected: false,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			store := &MockStore{}
			defer store.AssertExpectations(t)
			access := NewAccessControl(store)

			store.On("GetCompany", companyID).Return(company, nil).Once()
			if tc.userID != ownerID {
				if tc.member != nil {
					store.On("GetMember", companyID, tc.userID).Return(tc.member, nil).Once()
				} else {
					store.On("GetMember", companyID, tc.userID).Return(nil, gorm.ErrRecordNotFound).Once()
				}
			}

			ok, err := access.IsOwnerOrManager(tc.userID, companyID)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}
}

func TestIsOwnerOrManager_UnknownCompany(t *testing.T) {
	store := &MockStore{}
	defer store.AssertExpectations(t)
	access := NewAccessControl(store)

	companyID := uuid.New()
	store.On("GetCompany", companyID).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := access.IsOwnerOrManager(uuid.New(), companyID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangeRole(t *testing.T) {
	companyID := uuid.New()
	ownerID := uuid.New()
	targetID := uuid.New()
	company := &models.Company{ID: companyID, OwnerID: ownerID}

	t.Run("invalid role is rejected", func(t *testing.T) {
		store := &MockStore{}
		access := NewAccessControl(store)

		err := access.ChangeRole(ownerID, companyID, targetID, models.Role("boss"))
		assert.ErrorIs(t, err, ErrInvalidInput)
		store.AssertNotCalled(t, "UpdateMemberRole")
	})

	t.Run("caller without standing is forbidden", func(t *testing.T) {
		store := &MockStore{}
		defer store.AssertExpectations(t)
		access := NewAccessControl(store)

		callerID := uuid.New()
		store.On("GetCompany", companyID).Return(company, nil).Once()
		store.On("GetMember", companyID, callerID).Return(&models.CompanyMember{Role: models.RoleMember}, nil).Once()

		err := access.ChangeRole(callerID, companyID, targetID, models.RoleManager)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("caller may not change own role", func(t *testing.T) {
		store := &MockStore{}
		defer store.AssertExpectations(t)
		access := NewAccessControl(store)

		store.On("GetCompany", companyID).Return(company, nil).Once()

		err := access.ChangeRole(ownerID, companyID, ownerID, models.RoleMember)
		assert.ErrorIs(t, err, ErrForbidden)
		store.AssertNotCalled(t, "UpdateMemberRole")
	})

	t.Run("target must already be a member", func(t *testing.T) {
		store := &MockStore{}
		defer store.AssertExpectations(t)
		access := NewAccessControl(store)

		store.On("GetCompany", companyID).Return(company, nil).Once()
		store.On("GetMember", companyID, targetID).Return(nil, gorm.ErrRecordNotFound).Once()

		err := access.ChangeRole(ownerID, companyID, targetID, models.RoleManager)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner promotes a member", func(t *testing.T) {
		store := &MockStore{}
		defer store.AssertExpectations(t)
		access := NewAccessControl(store)

		store.On("GetCompany", companyID).Return(company, nil).Once()
		store.On("GetMember", companyID, targetID).Return(&models.CompanyMember{Role: models.RoleMember}, nil).Once()
		store.On("UpdateMemberRole", companyID, targetID, models.RoleManager).Return(nil).Once()

		err := access.ChangeRole(ownerID, companyID, targetID, models.RoleManager)
		assert.NoError(t, err)
	})
}

func TestAddMember(t *testing.T) {
	companyID := uuid.New()
	ownerID := uuid.New()
	targetID := uuid.New()
	company := &models.Company{ID: companyID, OwnerID: ownerID}

	t.Run("adds a new member", func(t *testing.T) {
		store := &MockStore{}
		defer store.AssertExpectations(t)
		access := NewAccessControl(store)

		store.On("GetCompany", companyID).Return(company, nil).Once()
		store.On("GetUser", targetID).Return(&models.User{ID: targetID}, nil).Once()
		store.On("SaveMember", mock.AnythingOfType("*models.CompanyMember")).Return(nil).Once()

		err := access.AddMember(ownerID, companyID, targetID, models.RoleMember)
		assert.NoError(t, err)
	})

	t.Run("duplicate member is rejected", func(t *testing.T) {
		store := &MockStore{}
		defer store.AssertExpectations(t)
		access := NewAccessControl(store)

		store.On("GetCompany", companyID).Return(company, nil).Once()
		store.On("GetUser", targetID).Return(&models.User{ID: targetID}, nil).Once()
		store.On("SaveMember", mock.AnythingOfType("*models.CompanyMember")).Return(gorm.ErrDuplicatedKey).Once()

		err := access.AddMember(ownerID, companyID, targetID, models.RoleMember)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

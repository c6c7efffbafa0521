package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/jobdesk/internal/models"
	"gorm.io/gorm"
)

// MembershipStore is the slice of the database layer the role gate needs.
type MembershipStore interface {
	GetUser(id uuid.UUID) (*models.User, error)
	GetCompany(id uuid.UUID) (*models.Company, error)
	GetMember(companyID, userID uuid.UUID) (*models.CompanyMember, error)
	SaveMember(member *models.CompanyMember) error
	UpdateMemberRole(companyID, userID uuid.UUID, role models.Role) error
}

// AccessControl answers "may user U perform privileged actions on company C"
// and owns the membership mutations that are themselves role-gated.
type AccessControl struct {
	store MembershipStore
}

func NewAccessControl(store MembershipStore) *AccessControl {
	return &AccessControl{store: store}
}

// IsOwnerOrManager is true for the company's owner and for members with the
// manager role. Plain members and non-members get false.
func (a *AccessControl) IsOwnerOrManager(userID, companyID uuid.UUID) (bool, error) {
	company, err := a.store.GetCompany(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: company %s", ErrNotFound, companyID)
		}
		return false, err
	}

	if company.OwnerID == userID {
		return true, nil
	}

	member, err := a.store.GetMember(companyID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return member.Role.CanManage(), nil
}

// RequireManager turns a failed gate check into ErrForbidden.
func (a *AccessControl) RequireManager(userID, companyID uuid.UUID) error {
	ok, err := a.IsOwnerOrManager(userID, companyID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: owner or manager role required", ErrForbidden)
	}
	return nil
}

// AddMember adds target as a member of the company under the given role.
// Only an owner or manager may do this.
func (a *AccessControl) AddMember(callerID, companyID, targetID uuid.UUID, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	if err := a.RequireManager(callerID, companyID); err != nil {
		return err
	}

	if _, err := a.store.GetUser(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, targetID)
		}
		return err
	}

	member := models.CompanyMember{
		CompanyID: companyID,
		UserID:    targetID,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := a.store.SaveMember(&member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: user is already a member", ErrInvalidInput)
		}
		return err
	}
	return nil
}

// ChangeRole updates an existing member's role. The caller must hold owner
// or manager standing, may not change their own role, and the target must
// already be a member.
func (a *AccessControl) ChangeRole(callerID, companyID, targetID uuid.UUID, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	if err := a.RequireManager(callerID, companyID); err != nil {
		return err
	}

	if callerID == targetID {
		return fmt.Errorf("%w: cannot change own role", ErrForbidden)
	}

	if _, err := a.store.GetMember(companyID, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user is not a member", ErrNotFound)
		}
		return err
	}

	return a.store.UpdateMemberRole(companyID, targetID, role)
}

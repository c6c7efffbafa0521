package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/jobdesk/internal/models"
	"gorm.io/gorm"
)

// CreateCompany persists the company and the owner's member record as one
// transaction so a company is never observable without its owner membership.
func (d *Database) CreateCompany(company *models.Company) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return err
		}

		member := models.CompanyMember{
			CompanyID: company.ID,
			UserID:    company.OwnerID,
			Role:      models.RoleOwner,
			CreatedAt: time.Now(),
		}
		return tx.Create(&member).Error
	})
}

func (d *Database) GetCompany(id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := d.db.Preload("Members").Preload("Members.User").First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (d *Database) UpdateCompany(company *models.Company) error {
	return d.db.Save(company).Error
}

// GetUserCompanies returns companies the user owns or is a member of,
// without duplicates.
func (d *Database) GetUserCompanies(userID uuid.UUID) ([]models.Company, error) {
	var companies []models.Company
	err := d.db.
		Distinct("companies.*").
		Joins("LEFT JOIN company_members cm ON cm.company_id = companies.id").
		Where("companies.owner_id = ? OR cm.user_id = ?", userID, userID).
		Find(&companies).Error
	return companies, err
}

func (d *Database) GetMember(companyID, userID uuid.UUID) (*models.CompanyMember, error) {
	var member models.CompanyMember
	err := d.db.Where("company_id = ? AND user_id = ?", companyID, userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (d *Database) SaveMember(member *models.CompanyMember) error {
	return d.db.Create(member).Error
}

func (d *Database) UpdateMemberRole(companyID, userID uuid.UUID, role models.Role) error {
	return d.db.Model(&models.CompanyMember{}).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Update("role", role).Error
}

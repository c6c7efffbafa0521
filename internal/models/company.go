package models

import (
	"github.com/google/uuid"
	"time"
)

type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	AvatarURL   string
	OwnerID     uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time

	Owner   User            `gorm:"foreignKey:OwnerID"`
	Members []CompanyMember `gorm:"foreignKey:CompanyID"`
}

// CompanyMember records a user's standing within a company. The owner also
// gets a member row with RoleOwner at company creation.
type CompanyMember struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_member"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_member"`
	Role      Role      `gorm:"not null"`
	CreatedAt time.Time

	User    User    `gorm:"foreignKey:UserID"`
	Company Company `gorm:"foreignKey:CompanyID"`
}

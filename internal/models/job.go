package models

import (
	"github.com/google/uuid"
	"time"
)

type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Salary      int64
	IsArchived  bool `gorm:"default:false"`
	CreatedAt   time.Time

	Company Company `gorm:"foreignKey:CompanyID"`
}

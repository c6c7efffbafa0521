package models

import (
	"github.com/google/uuid"
	"time"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Application links a user to a job. One application per (user, job) pair,
// enforced by the composite unique index.
type Application struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_user_job"`
	JobID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_user_job"`
	Status    ApplicationStatus `gorm:"not null;default:'pending'"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
	Job  Job  `gorm:"foreignKey:JobID"`
}

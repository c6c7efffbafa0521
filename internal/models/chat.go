package models

import (
	"time"

	"github.com/google/uuid"
)

// Chat is a single conversation thread between one user and one company.
// The composite unique index is what makes find-or-create safe under
// concurrent creation: the losing insert fails with a duplicate-key error
// and the caller re-fetches the winner.
type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_pair"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_pair"`
	CreatedAt time.Time

	User         User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Company      Company           `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Participants []ChatParticipant `gorm:"foreignKey:ChatID"`
	Messages     []Message         `gorm:"foreignKey:ChatID"`
}

// ChatParticipant grants a user or a company visibility and write access to
// a chat. Exactly one of UserID/CompanyID is set; the check constraint keeps
// it that way at the storage layer too.
type ChatParticipant struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ChatID    uuid.UUID  `gorm:"type:uuid;not null"`
	UserID    *uuid.UUID `gorm:"type:uuid;check:chk_participant_side,(user_id IS NULL) <> (company_id IS NULL)"`
	CompanyID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time

	User    *User    `gorm:"foreignKey:UserID"`
	Company *Company `gorm:"foreignKey:CompanyID"`
}

// IsUser reports whether the participant is the user side of the chat.
func (p ChatParticipant) IsUser() bool {
	return p.UserID != nil
}

package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SenderType tags a message's attributed origin.
type SenderType string

const (
	SenderUser    SenderType = "user"
	SenderCompany SenderType = "company"
)

var ErrAmbiguousSender = errors.New("sender must be exactly one of user or company")

// Sender is a tagged variant: exactly one of UserID/CompanyID is set. Build
// it through UserSender/CompanySender so the invariant holds by construction;
// Validate covers values decoded from the wire.
type Sender struct {
	UserID    *uuid.UUID
	CompanyID *uuid.UUID
}

func UserSender(id uuid.UUID) Sender {
	return Sender{UserID: &id}
}

func CompanySender(id uuid.UUID) Sender {
	return Sender{CompanyID: &id}
}

func (s Sender) Validate() error {
	if (s.UserID == nil) == (s.CompanyID == nil) {
		return ErrAmbiguousSender
	}
	return nil
}

func (s Sender) Type() SenderType {
	if s.UserID != nil {
		return SenderUser
	}
	return SenderCompany
}

func (s Sender) ID() uuid.UUID {
	if s.UserID != nil {
		return *s.UserID
	}
	if s.CompanyID != nil {
		return *s.CompanyID
	}
	return uuid.Nil
}

// Message is an immutable entry in a chat's log. CreatedAt is assigned by
// the storage layer at write time and is the primary ordering key; Seq is a
// DB sequence that breaks ties between rows created in the same microsecond,
// so read order always matches insert order.
type Message struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ChatID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_chat_created,priority:1"`
	Seq             int64      `gorm:"autoIncrement;not null"`
	Content         string     `gorm:"not null"`
	SenderUserID    *uuid.UUID `gorm:"type:uuid;check:chk_message_sender,(sender_user_id IS NULL) <> (sender_company_id IS NULL)"`
	SenderCompanyID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index:idx_chat_created,priority:2"`

	Chat          Chat     `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
	SenderUser    *User    `gorm:"foreignKey:SenderUserID"`
	SenderCompany *Company `gorm:"foreignKey:SenderCompanyID"`
}

// Sender reconstructs the tagged variant from the stored columns.
func (m Message) Sender() Sender {
	return Sender{UserID: m.SenderUserID, CompanyID: m.SenderCompanyID}
}

package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/jobdesk/internal/models"
	"gorm.io/gorm"
)

func (d *Database) GetChat(id uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := d.db.
		Preload("Participants").
		Preload("Participants.User").
		Preload("Participants.Company").
		First(&chat, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (d *Database) GetChatByPair(userID, companyID uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := d.db.
		Preload("Participants").
		Preload("Participants.User").
		Preload("Participants.Company").
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// CreateChatWithParticipants inserts a chat and both participant rows as one
// transaction, so a reader never observes a chat without its participants.
// A concurrent creator for the same pair makes the insert fail with
// gorm.ErrDuplicatedKey via the unique (user_id, company_id) index; callers
// re-fetch the winning chat on that error.
func (d *Database) CreateChatWithParticipants(userID, companyID uuid.UUID) (*models.Chat, error) {
	chat := models.Chat{
		UserID:    userID,
		CompanyID: companyID,
		CreatedAt: time.Now(),
	}

	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}

		userSide := models.ChatParticipant{
			ChatID:    chat.ID,
			UserID:    &userID,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&userSide).Error; err != nil {
			return err
		}

		companySide := models.ChatParticipant{
			ChatID:    chat.ID,
			CompanyID: &companyID,
			CreatedAt: time.Now(),
		}
		return tx.Create(&companySide).Error
	})
	if err != nil {
		return nil, err
	}

	return d.GetChat(chat.ID)
}

// GetUserChats returns every chat in which the user appears as a participant.
func (d *Database) GetUserChats(userID uuid.UUID) ([]models.Chat, error) {
	var chats []models.Chat
	err := d.db.
		Joins("JOIN chat_participants cp ON cp.chat_id = chats.id").
		Where("cp.user_id = ?", userID).
		Preload("Company").
		Preload("Participants").
		Preload("Participants.User").
		Preload("Participants.Company").
		Find(&chats).Error
	return chats, err
}

func (d *Database) GetCompanyChats(companyID uuid.UUID) ([]models.Chat, error) {
	var chats []models.Chat
	err := d.db.
		Where("company_id = ?", companyID).
		Preload("User").
		Preload("Company").
		Preload("Participants").
		Preload("Participants.User").
		Preload("Participants.Company").
		Find(&chats).Error
	return chats, err
}

package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/jobdesk/internal/models"
)

func (d *Database) SaveMessage(message *models.Message) error {
	if err := d.db.Create(message).Error; err != nil {
		return err
	}
	// Re-read so the caller sees the DB-assigned timestamp and resolved sender.
	return d.db.
		Preload("SenderUser").
		Preload("SenderCompany").
		First(message, "id = ?", message.ID).Error
}

// GetChatMessages returns the full history of a chat, oldest first. The seq
// column orders rows whose timestamps collide.
func (d *Database) GetChatMessages(chatID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.
		Where("chat_id = ?", chatID).
		Order("created_at ASC, seq ASC").
		Preload("SenderUser").
		Preload("SenderCompany").
		Find(&messages).Error
	return messages, err
}

// GetLastMessage returns the most recent message of a chat, or
// gorm.ErrRecordNotFound for an empty chat.
func (d *Database) GetLastMessage(chatID uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := d.db.
		Where("chat_id = ?", chatID).
		Order("created_at DESC, seq DESC").
		Preload("SenderUser").
		Preload("SenderCompany").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

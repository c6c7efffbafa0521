package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/jobdesk/internal/models"
	"gorm.io/gorm"
)

// ChatStore is the slice of the database layer the chat service needs.
// *database.Database satisfies it; tests substitute a mock.
type ChatStore interface {
	GetUser(id uuid.UUID) (*models.User, error)
	GetCompany(id uuid.UUID) (*models.Company, error)

	GetChat(id uuid.UUID) (*models.Chat, error)
	GetChatByPair(userID, companyID uuid.UUID) (*models.Chat, error)
	CreateChatWithParticipants(userID, companyID uuid.UUID) (*models.Chat, error)
	GetUserChats(userID uuid.UUID) ([]models.Chat, error)
	GetCompanyChats(companyID uuid.UUID) ([]models.Chat, error)

	SaveMessage(message *models.Message) error
	GetChatMessages(chatID uuid.UUID) ([]models.Message, error)
	GetLastMessage(chatID uuid.UUID) (*models.Message, error)
}

// Broadcaster delivers a freshly appended message to everyone joined to the
// chat's room. The websocket hub implements it; tests substitute a recorder.
type Broadcaster interface {
	MessageAppended(chat *models.Chat, message MessageView)
}

type SenderInfo struct {
	ID   uuid.UUID         `json:"id"`
	Name string            `json:"name"`
	Type models.SenderType `json:"type"`
}

type MessageView struct {
	ID        uuid.UUID  `json:"id"`
	ChatID    uuid.UUID  `json:"chat_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	Sender    SenderInfo `json:"sender"`
}

type ParticipantInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CompanyInfo struct {
	ID        uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

type ChatSummary struct {
	ID                uuid.UUID         `json:"id"`
	Company           *CompanyInfo      `json:"company"`
	OtherParticipants []ParticipantInfo `json:"otherParticipants"`
	LastMessage       *MessageView      `json:"lastMessage"`
}

// ChatService owns conversation resolution, message appending and the two
// read views over chats.
type ChatService struct {
	store       ChatStore
	broadcaster Broadcaster
	access      *AccessControl
}

func NewChatService(store ChatStore, broadcaster Broadcaster, access *AccessControl) *ChatService {
	return &ChatService{store: store, broadcaster: broadcaster, access: access}
}

// ResolveOrCreate maps a (user, company) pair to its unique chat, creating
// the chat plus both participant rows when absent. Two concurrent callers
// for the same pair both get the single persisted chat: the losing insert
// hits the unique pair index and falls back to re-fetching the winner.
func (s *ChatService) ResolveOrCreate(userID, companyID uuid.UUID) (*models.Chat, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return nil, err
	}
	if _, err := s.store.GetCompany(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: company %s", ErrNotFound, companyID)
		}
		return nil, err
	}

	chat, err := s.store.GetChatByPair(userID, companyID)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	chat, err = s.store.CreateChatWithParticipants(userID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the creation race; the pair's chat now exists.
			return s.store.GetChatByPair(userID, companyID)
		}
		return nil, err
	}
	return chat, nil
}

// Append validates and records a new message, then signals the broadcaster.
func (s *ChatService) Append(chatID uuid.UUID, sender models.Sender, content string) (*MessageView, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: empty message content", ErrInvalidInput)
	}
	if err := sender.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSender, err)
	}

	chat, err := s.store.GetChat(chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: chat %s", ErrNotFound, chatID)
		}
		return nil, err
	}

	if err := s.checkSenderExists(sender); err != nil {
		return nil, err
	}

	if !isParticipant(chat, sender) {
		return nil, fmt.Errorf("%w: sender is not a participant of chat %s", ErrNotFound, chatID)
	}

	message := models.Message{
		ChatID:          chat.ID,
		Content:         content,
		SenderUserID:    sender.UserID,
		SenderCompanyID: sender.CompanyID,
	}
	if err := s.store.SaveMessage(&message); err != nil {
		return nil, err
	}

	view := s.messageView(message)
	if s.broadcaster != nil {
		s.broadcaster.MessageAppended(chat, view)
	}
	return &view, nil
}

func (s *ChatService) checkSenderExists(sender models.Sender) error {
	switch sender.Type() {
	case models.SenderUser:
		if _, err := s.store.GetUser(*sender.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %s does not exist", ErrInvalidSender, *sender.UserID)
			}
			return err
		}
	case models.SenderCompany:
		if _, err := s.store.GetCompany(*sender.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: company %s does not exist", ErrInvalidSender, *sender.CompanyID)
			}
			return err
		}
	}
	return nil
}

func isParticipant(chat *models.Chat, sender models.Sender) bool {
	for _, p := range chat.Participants {
		if sender.UserID != nil && p.UserID != nil && *p.UserID == *sender.UserID {
			return true
		}
		if sender.CompanyID != nil && p.CompanyID != nil && *p.CompanyID == *sender.CompanyID {
			return true
		}
	}
	return false
}

// History returns a chat's full message log in ascending timestamp order
// with senders resolved.
func (s *ChatService) History(chatID uuid.UUID) ([]MessageView, error) {
	if _, err := s.store.GetChat(chatID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: chat %s", ErrNotFound, chatID)
		}
		return nil, err
	}

	messages, err := s.store.GetChatMessages(chatID)
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, len(messages))
	for i, m := range messages {
		views[i] = s.messageView(m)
	}
	return views, nil
}

// PairHistory returns the message log of the chat between a user and a
// company, ErrNotFound when the company or the chat does not exist.
func (s *ChatService) PairHistory(userID, companyID uuid.UUID) ([]MessageView, error) {
	if _, err := s.store.GetCompany(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: company %s", ErrNotFound, companyID)
		}
		return nil, err
	}

	chat, err := s.store.GetChatByPair(userID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: chat", ErrNotFound)
		}
		return nil, err
	}

	return s.History(chat.ID)
}

// ListChatsForUser renders the viewer's chat list: company identity, the
// other participants and the latest message, most recently active first.
// Chats without messages sort after those with messages, relative order
// preserved.
func (s *ChatService) ListChatsForUser(userID uuid.UUID) ([]ChatSummary, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return nil, err
	}

	chats, err := s.store.GetUserChats(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ChatSummary, len(chats))
	for i, chat := range chats {
		summary, err := s.summarize(chat, &userID)
		if err != nil {
			return nil, err
		}
		summaries[i] = summary
	}

	sortByRecency(summaries)
	return summaries, nil
}

// ListCompanyChats renders a company's chat list. The viewer must be the
// company's owner or a manager.
func (s *ChatService) ListCompanyChats(viewerID, companyID uuid.UUID) ([]ChatSummary, error) {
	if err := s.access.RequireManager(viewerID, companyID); err != nil {
		return nil, err
	}

	chats, err := s.store.GetCompanyChats(companyID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ChatSummary, len(chats))
	for i, chat := range chats {
		summary, err := s.summarize(chat, nil)
		if err != nil {
			return nil, err
		}
		summaries[i] = summary
	}

	sortByRecency(summaries)
	return summaries, nil
}

func (s *ChatService) summarize(chat models.Chat, viewerID *uuid.UUID) (ChatSummary, error) {
	summary := ChatSummary{
		ID:                chat.ID,
		OtherParticipants: []ParticipantInfo{},
	}

	if chat.Company.ID != uuid.Nil {
		summary.Company = &CompanyInfo{
			ID:        chat.Company.ID,
			Name:      chat.Company.Name,
			AvatarURL: chat.Company.AvatarURL,
		}
	}

	for _, p := range chat.Participants {
		if !p.IsUser() || p.User == nil {
			continue
		}
		if viewerID != nil && *p.UserID == *viewerID {
			continue
		}
		summary.OtherParticipants = append(summary.OtherParticipants, ParticipantInfo{
			ID:   p.User.ID,
			Name: p.User.Name,
		})
	}

	last, err := s.store.GetLastMessage(chat.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ChatSummary{}, err
		}
	} else {
		view := s.messageView(*last)
		summary.LastMessage = &view
	}

	return summary, nil
}

func (s *ChatService) messageView(m models.Message) MessageView {
	view := MessageView{
		ID:        m.ID,
		ChatID:    m.ChatID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}

	switch {
	case m.SenderUser != nil:
		view.Sender = SenderInfo{ID: m.SenderUser.ID, Name: m.SenderUser.Name, Type: models.SenderUser}
	case m.SenderCompany != nil:
		view.Sender = SenderInfo{ID: m.SenderCompany.ID, Name: m.SenderCompany.Name, Type: models.SenderCompany}
	default:
		view.Sender = SenderInfo{ID: m.Sender().ID(), Type: m.Sender().Type()}
	}
	return view
}

func sortByRecency(summaries []ChatSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].LastMessage, summaries[j].LastMessage
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

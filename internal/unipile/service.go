package unipile

import (
	"context"
	"encoding/json"
	"fmt"

	"unipile/internal/apperror"
	"unipile/internal/models"

	"github.com/rs/zerolog"
)

// Service pairs each gateway operation with its upstream call and reply shaping
type Service struct {
	client *Client
	logger zerolog.Logger
}

// NewService creates a new service on top of an upstream client
func NewService(client *Client, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Accounts returns the upstream account list unchanged
func (s *Service) Accounts(ctx context.Context) (json.RawMessage, error) {
	return s.client.Do(ctx, AccountsCall())
}

// RecentMessages returns the upstream message list of an account, capped to batchSize
func (s *Service) RecentMessages(ctx context.Context, accountID string, batchSize int) (json.RawMessage, error) {
	call, err := RecentMessagesCall(accountID, batchSize)
	if err != nil {
		return nil, apperror.Validation("get_recent_messages", err.Error())
	}

	raw, err := s.client.Do(ctx, call)
	if err != nil {
		return nil, err
	}

	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	capped, err := CapList(raw, batchSize)
	if err != nil {
		return nil, apperror.Upstream(call.Op, err)
	}
	return capped, nil
}

// Emails returns projected email summaries of an account, at most limit of them
func (s *Service) Emails(ctx context.Context, accountID string, limit int) ([]models.EmailSummary, error) {
	call, err := EmailsCall(accountID, limit)
	if err != nil {
		return nil, apperror.Validation("get_emails", err.Error())
	}

	raw, err := s.client.Do(ctx, call)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultEmailLimit
	}
	emails, err := ProjectEmails(raw, limit)
	if err != nil {
		return nil, apperror.Upstream(call.Op, err)
	}
	return emails, nil
}

// SendEmail forwards the payload and returns the upstream reply
func (s *Service) SendEmail(ctx context.Context, payload models.SendPayload) (json.RawMessage, error) {
	call, err := SendEmailCall(payload)
	if err != nil {
		return nil, apperror.Validation("send_email", err.Error())
	}
	return s.client.Do(ctx, call)
}

// ReplyEmail sends a reply to an existing message
func (s *Service) ReplyEmail(ctx context.Context, reply models.ReplyContext) error {
	call, err := ReplyEmailCall(reply)
	if err != nil {
		return apperror.Validation("reply_email", err.Error())
	}

	_, err = s.client.Do(ctx, call)
	return err
}

// AccountMessages collects up to batchSize messages from every chat of an
// account. Each message is annotated with a chat_info object.
func (s *Service) AccountMessages(ctx context.Context, accountID string, batchSize int) ([]map[string]any, error) {
	if accountID == "" {
		return nil, apperror.Validation("get_account_messages", "account_id is required")
	}
	if batchSize < 0 {
		return nil, apperror.Validation("get_account_messages", "batch_size must be a positive integer")
	}

	raw, err := s.client.Do(ctx, ChatsCall())
	if err != nil {
		return nil, err
	}
	chats, err := ListItems(raw)
	if err != nil {
		return nil, apperror.Upstream("get_chats", err)
	}

	all := make([]map[string]any, 0)
	for _, item := range chats {
		var chat map[string]any
		if err := json.Unmarshal(item, &chat); err != nil {
			return nil, apperror.Upstream("get_chats", fmt.Errorf("failed to decode chat: %w", err))
		}
		if stringField(chat, "account_id") != accountID {
			continue
		}
		chatID := stringField(chat, "id")
		if chatID == "" {
			continue
		}

		messages, err := s.chatMessages(ctx, chatID, batchSize)
		if err != nil {
			return nil, err
		}

		info := map[string]any{
			"id":           chat["id"],
			"name":         chat["name"],
			"account_type": chat["account_type"],
			"account_id":   chat["account_id"],
		}
		for _, msg := range messages {
			msg["chat_info"] = info
		}
		all = append(all, messages...)

		s.logger.Debug().Str("chat_id", chatID).Int("messages", len(messages)).Msg("Collected chat messages")
	}

	return all, nil
}

func (s *Service) chatMessages(ctx context.Context, chatID string, limit int) ([]map[string]any, error) {
	call, err := ChatMessagesCall(chatID, limit)
	if err != nil {
		return nil, apperror.Validation("get_chat_messages", err.Error())
	}

	raw, err := s.client.Do(ctx, call)
	if err != nil {
		return nil, err
	}
	items, err := ListItems(raw)
	if err != nil {
		return nil, apperror.Upstream(call.Op, err)
	}

	messages := make([]map[string]any, 0, len(items))
	for _, item := range items {
		var msg map[string]any
		if err := json.Unmarshal(item, &msg); err != nil || msg == nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

package unipile

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"unipile/internal/models"

	"github.com/sendgrid/rest"
)

const (
	// DefaultBatchSize is the number of messages requested when the caller gives none
	DefaultBatchSize = 20
	// DefaultEmailLimit is the number of emails requested when the caller gives none
	DefaultEmailLimit = 10

	// AttachmentField is the multipart field the provider reads reply attachments from
	AttachmentField = "attachments"
)

// Call describes one upstream request
type Call struct {
	Op     string
	Method rest.Method
	Path   string
	Query  map[string]string
	JSON   []byte
	Form   *Form
}

// Form is an ordered multipart body with at most one file
type Form struct {
	Fields []FormField
	File   *FormFile
}

// FormField is a single text part
type FormField struct {
	Name  string
	Value string
}

// FormFile is a single file part
type FormFile struct {
	Field    string
	Filename string
	Content  []byte
}

// Value returns the first field with the given name
func (f *Form) Value(name string) (string, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// AccountsCall lists every connected account
func AccountsCall() Call {
	return Call{Op: "get_accounts", Method: rest.Get, Path: "/api/v1/accounts"}
}

// RecentMessagesCall lists the latest messages of one account
func RecentMessagesCall(accountID string, batchSize int) (Call, error) {
	if accountID == "" {
		return Call{}, fmt.Errorf("account_id is required")
	}
	batchSize, err := normalizeCount("batch_size", batchSize, DefaultBatchSize)
	if err != nil {
		return Call{}, err
	}

	return Call{
		Op:     "get_recent_messages",
		Method: rest.Get,
		Path:   "/api/v1/messages",
		Query: map[string]string{
			"account_id": accountID,
			"limit":      strconv.Itoa(batchSize),
		},
	}, nil
}

// EmailsCall lists the latest emails of one account
func EmailsCall(accountID string, limit int) (Call, error) {
	if accountID == "" {
		return Call{}, fmt.Errorf("account_id is required")
	}
	limit, err := normalizeCount("limit", limit, DefaultEmailLimit)
	if err != nil {
		return Call{}, err
	}

	return Call{
		Op:     "get_emails",
		Method: rest.Get,
		Path:   "/api/v1/emails",
		Query: map[string]string{
			"account_id": accountID,
			"limit":      strconv.Itoa(limit),
		},
	}, nil
}

// SendEmailCall forwards the payload byte-for-byte
func SendEmailCall(payload models.SendPayload) (Call, error) {
	if err := payload.Validate(); err != nil {
		return Call{}, err
	}

	return Call{
		Op:     "send_email",
		Method: rest.Post,
		Path:   "/api/v1/emails",
		JSON:   []byte(payload),
	}, nil
}

// ReplyEmailCall builds the multipart reply. cc, bcc and the attachment are
// only written when present.
func ReplyEmailCall(reply models.ReplyContext) (Call, error) {
	if reply.ReplyTo == "" {
		return Call{}, fmt.Errorf("reply_to is required")
	}
	if len(reply.To) == 0 {
		return Call{}, fmt.Errorf("at least one recipient is required")
	}

	to, err := json.Marshal(reply.To)
	if err != nil {
		return Call{}, fmt.Errorf("failed to encode recipients: %w", err)
	}

	form := &Form{Fields: []FormField{
		{Name: "account_id", Value: reply.AccountID},
		{Name: "subject", Value: reply.Subject},
		{Name: "body", Value: reply.Body},
		{Name: "to", Value: string(to)},
		{Name: "reply_to", Value: reply.ReplyTo},
	}}

	for _, list := range []struct {
		name  string
		addrs []string
	}{{"cc", reply.CC}, {"bcc", reply.BCC}} {
		if len(list.addrs) == 0 {
			continue
		}
		encoded, err := json.Marshal(list.addrs)
		if err != nil {
			return Call{}, fmt.Errorf("failed to encode %s: %w", list.name, err)
		}
		form.Fields = append(form.Fields, FormField{Name: list.name, Value: string(encoded)})
	}

	if reply.Attachment != nil {
		form.File = &FormFile{
			Field:    AttachmentField,
			Filename: reply.Attachment.Filename,
			Content:  reply.Attachment.Content,
		}
	}

	return Call{
		Op:     "reply_email",
		Method: rest.Post,
		Path:   "/api/v1/emails",
		Form:   form,
	}, nil
}

// ChatsCall lists every chat across accounts
func ChatsCall() Call {
	return Call{Op: "get_chats", Method: rest.Get, Path: "/api/v1/chats"}
}

// ChatMessagesCall lists the latest messages of one chat
func ChatMessagesCall(chatID string, limit int) (Call, error) {
	if chatID == "" {
		return Call{}, fmt.Errorf("chat id is required")
	}
	limit, err := normalizeCount("limit", limit, DefaultBatchSize)
	if err != nil {
		return Call{}, err
	}

	return Call{
		Op:     "get_chat_messages",
		Method: rest.Get,
		Path:   "/api/v1/chats/" + url.PathEscape(chatID) + "/messages",
		Query:  map[string]string{"limit": strconv.Itoa(limit)},
	}, nil
}

// normalizeCount applies the default for zero and rejects negatives.
// No upper bound is enforced here; the provider caps it.
func normalizeCount(name string, n, def int) (int, error) {
	switch {
	case n == 0:
		return def, nil
	case n < 0:
		return 0, fmt.Errorf("%s must be a positive integer", name)
	default:
		return n, nil
	}
}

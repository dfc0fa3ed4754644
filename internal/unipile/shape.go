package unipile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"unipile/internal/models"
)

// ListItems returns the entries of a list reply. The provider answers list
// calls either with a bare array or with an object carrying an items array.
func ListItems(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	return envelope.Items, nil
}

// CapList trims a list reply to at most n entries. Replies that already fit,
// or that are not lists, come back unchanged.
func CapList(raw json.RawMessage, n int) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if n <= 0 || len(trimmed) == 0 {
		return raw, nil
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		if len(items) <= n {
			return raw, nil
		}
		return json.Marshal(items[:n])
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		itemsRaw, ok := fields["items"]
		if !ok {
			return raw, nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(itemsRaw, &items); err != nil || len(items) <= n {
			return raw, nil
		}
		capped, err := json.Marshal(items[:n])
		if err != nil {
			return nil, err
		}
		fields["items"] = capped
		return json.Marshal(fields)
	default:
		return raw, nil
	}
}

// ProjectEmails maps an upstream email list to summaries, keeping upstream
// order and returning at most limit entries (all of them when limit <= 0).
func ProjectEmails(raw json.RawMessage, limit int) ([]models.EmailSummary, error) {
	items, err := ListItems(raw)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	emails := make([]models.EmailSummary, 0, len(items))
	for _, item := range items {
		var record map[string]any
		if err := json.Unmarshal(item, &record); err != nil {
			return nil, fmt.Errorf("failed to decode email record: %w", err)
		}
		emails = append(emails, ProjectEmail(record))
	}

	return emails, nil
}

// ProjectEmail keeps id, subject, date, sender address and trimmed markdown
// body. Missing or mistyped fields become empty strings. The upstream HTML
// body is never used. A record with neither from_attendee nor body_markdown
// is taken as already projected and returned unchanged.
func ProjectEmail(record map[string]any) models.EmailSummary {
	_, hasAttendee := record["from_attendee"]
	_, hasMarkdown := record["body_markdown"]
	projected := !hasAttendee && !hasMarkdown

	var from, body string
	if projected {
		from = stringField(record, "from")
		body = stringField(record, "body")
	} else {
		if attendee, ok := record["from_attendee"].(map[string]any); ok {
			from = stringField(attendee, "email")
		}
		body = stringField(record, "body_markdown")
	}

	return models.EmailSummary{
		ID:      stringField(record, "id"),
		Subject: stringField(record, "subject"),
		Date:    stringField(record, "date"),
		From:    from,
		Body:    strings.TrimSpace(body),
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// OutboundEmail is the caller-supplied part of a reply
// @Description Email fields for a reply
type OutboundEmail struct {
	AccountID string   `json:"account_id" form:"account_id" validate:"required" example:"a1"`
	Subject   string   `json:"subject" form:"subject" validate:"required" example:"Re: hello"`
	Body      string   `json:"body" form:"body" validate:"required" example:"Thanks!"`
	To        []string `json:"to" validate:"required,min=1,dive,required" example:"x@y.com"`
	CC        []string `json:"cc,omitempty" validate:"omitempty,dive,required" example:"cc@y.com"`
	BCC       []string `json:"bcc,omitempty" validate:"omitempty,dive,required" example:"bcc@y.com"`
}

// Attachment is a single file forwarded with a reply
type Attachment struct {
	Filename string
	Content  []byte
}

// ReplyContext is an outbound email aimed at an existing message
type ReplyContext struct {
	OutboundEmail
	ReplyTo    string      `json:"reply_to" validate:"required"`
	Attachment *Attachment `json:"-"`
}

// EmailSummary is the projection of an upstream email record returned to callers
// @Description Projected email
type EmailSummary struct {
	ID      string `json:"id" example:"em_123"`
	Subject string `json:"subject" example:"Hello"`
	Date    string `json:"date" example:"2024-05-01T10:00:00.000Z"`
	From    string `json:"from,omitempty" example:"sender@example.com"`
	Body    string `json:"body" example:"Hi there"`
}

// SendPayload is a send request forwarded to the provider untouched.
// Only well-formedness is checked: it must be a single JSON object.
type SendPayload json.RawMessage

var errNotJSONObject = errors.New("request body must be a JSON object")

// Validate checks that the payload is a well-formed JSON object
func (p SendPayload) Validate() error {
	trimmed := bytes.TrimSpace(p)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return errNotJSONObject
	}
	return nil
}

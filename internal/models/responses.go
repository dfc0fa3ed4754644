package models

import (
	"encoding/json"
	"time"
)

// HealthResponse represents a basic health check response
// @Description Health check response
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`                 // Health status
	Timestamp time.Time `json:"timestamp" example:"2023-01-01T00:00:00Z"` // Timestamp of the check
	Version   string    `json:"version" example:"1.0.0"`                  // Application version
}

// ErrorResponse is the envelope every failed tool call returns
// @Description Error envelope
type ErrorResponse struct {
	Detail string `json:"detail" example:"unipile: 401 Unauthorized"` // Failure description
}

// DataResponse wraps an upstream payload returned as-is
// @Description Pass-through upstream payload
type DataResponse struct {
	Data json.RawMessage `json:"data" swaggertype:"object"` // Upstream JSON
}

// MessageResponse is a plain acknowledgement
// @Description Acknowledgement
type MessageResponse struct {
	Message string `json:"message" example:"Reply sent successfully"`
}

// SendEmailResponse acknowledges a send and carries the upstream reply
// @Description Send acknowledgement
type SendEmailResponse struct {
	Message  string          `json:"message" example:"Email sent successfully"`
	Response json.RawMessage `json:"response" swaggertype:"object"` // Upstream JSON
}

// EmailsResponse lists projected emails
// @Description Projected email list
type EmailsResponse struct {
	Emails []EmailSummary `json:"emails"`
}

// Package mcpserver exposes the Unipile gateway operations as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"

	"unipile/internal/models"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

const accountsURI = "unipile://accounts"

// Gateway is the subset of upstream operations reachable over MCP
type Gateway interface {
	Accounts(ctx context.Context) (json.RawMessage, error)
	AccountMessages(ctx context.Context, accountID string, batchSize int) ([]map[string]any, error)
	Emails(ctx context.Context, accountID string, limit int) ([]models.EmailSummary, error)
}

// Server provides MCP access to connected Unipile accounts
type Server struct {
	gateway Gateway
	version string
	logger  zerolog.Logger
}

// NewServer creates a new MCP server on top of the gateway
func NewServer(gateway Gateway, version string, logger zerolog.Logger) *Server {
	return &Server{gateway: gateway, version: version, logger: logger}
}

// RecentMessagesInput defines input for unipile_get_recent_messages
type RecentMessagesInput struct {
	AccountID string `json:"account_id" jsonschema:"the source id of the account to get messages from"`
	BatchSize int    `json:"batch_size,omitempty" jsonschema:"number of messages to fetch per chat (default 20)"`
}

// EmailsInput defines input for unipile_get_emails
type EmailsInput struct {
	AccountID string `json:"account_id" jsonschema:"the id of the mail account"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of emails (default 10)"`
}

// Run serves MCP over stdin/stdout until ctx is done or the client disconnects
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info().Msg("MCP server running with stdio transport")
	return s.build().Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) build() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "unipile",
		Version: s.version,
	}, nil)

	server.AddResource(
		&mcp.Resource{
			URI:         accountsURI,
			Name:        "Unipile Accounts",
			Description: "List of connected messaging accounts from supported platforms: Mobile, Mail, WhatsApp, LinkedIn, Slack, Twitter, Telegram, Instagram, Messenger",
			MIMEType:    "application/json",
		},
		s.resourceAccounts,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name: "unipile_get_accounts",
		Description: "Get all connected messaging accounts from supported platforms: Mobile, Mail, WhatsApp, LinkedIn, Slack, Twitter, Telegram, Instagram, Messenger. " +
			"Returns account details including connection parameters, ID, name, creation date, signatures, groups, and sources.",
	}, s.getAccounts)

	mcp.AddTool(server, &mcp.Tool{
		Name: "unipile_get_recent_messages",
		Description: "Get recent messages from all chats associated with a specific account. " +
			"Returns message details including text content, sender info, timestamps, attachments, reactions, quoted messages, and metadata.",
	}, s.getRecentMessages)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "unipile_get_emails",
		Description: "Get the latest emails of a mail account as id, subject, date, sender and body.",
	}, s.getEmails)

	return server
}

func (s *Server) resourceAccounts(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	data, err := s.gateway.Accounts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("uri", accountsURI).Msg("Failed to read resource")
		data = errorJSON(err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      accountsURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

func (s *Server) getAccounts(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	data, err := s.gateway.Accounts(ctx)
	if err != nil {
		return s.toolError("unipile_get_accounts", err), nil, nil
	}
	return textResult(data), nil, nil
}

func (s *Server) getRecentMessages(ctx context.Context, req *mcp.CallToolRequest, input RecentMessagesInput) (*mcp.CallToolResult, any, error) {
	messages, err := s.gateway.AccountMessages(ctx, input.AccountID, input.BatchSize)
	if err != nil {
		return s.toolError("unipile_get_recent_messages", err), nil, nil
	}

	data, err := json.Marshal(messages)
	if err != nil {
		return s.toolError("unipile_get_recent_messages", err), nil, nil
	}
	return textResult(data), nil, nil
}

func (s *Server) getEmails(ctx context.Context, req *mcp.CallToolRequest, input EmailsInput) (*mcp.CallToolResult, any, error) {
	emails, err := s.gateway.Emails(ctx, input.AccountID, input.Limit)
	if err != nil {
		return s.toolError("unipile_get_emails", err), nil, nil
	}

	data, err := json.Marshal(models.EmailsResponse{Emails: emails})
	if err != nil {
		return s.toolError("unipile_get_emails", err), nil, nil
	}
	return textResult(data), nil, nil
}

func textResult(data []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

// toolError reports a failure as {"error": "..."} text with IsError set
func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	s.logger.Error().Err(err).Str("tool", tool).Msg("Error executing tool")

	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(errorJSON(err))}},
	}
}

func errorJSON(err error) []byte {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return data
}

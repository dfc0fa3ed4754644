package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"unipile/internal/apperror"
	"unipile/internal/models"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	accounts json.RawMessage
	messages []map[string]any
	emails   []models.EmailSummary
	err      error

	accountID string
	count     int
}

func (f *fakeGateway) Accounts(ctx context.Context) (json.RawMessage, error) {
	return f.accounts, f.err
}

func (f *fakeGateway) AccountMessages(ctx context.Context, accountID string, batchSize int) ([]map[string]any, error) {
	f.accountID, f.count = accountID, batchSize
	return f.messages, f.err
}

func (f *fakeGateway) Emails(ctx context.Context, accountID string, limit int) ([]models.EmailSummary, error) {
	f.accountID, f.count = accountID, limit
	return f.emails, f.err
}

// connect wires a client session to the server over in-memory transports
func connect(t *testing.T, gw Gateway) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	srv := NewServer(gw, "test", zerolog.Nop()).build()
	serverSession, err := srv.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServer_ListTools(t *testing.T) {
	session := connect(t, &fakeGateway{})

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"unipile_get_accounts",
		"unipile_get_recent_messages",
		"unipile_get_emails",
	}, names)
}

func TestServer_GetAccounts(t *testing.T) {
	session := connect(t, &fakeGateway{accounts: json.RawMessage(`{"items":[{"id":"a1"}]}`)})

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "unipile_get_accounts",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"items":[{"id":"a1"}]}`, resultText(t, res))
}

func TestServer_GetRecentMessages(t *testing.T) {
	gw := &fakeGateway{messages: []map[string]any{
		{"id": "m1", "chat_info": map[string]any{"id": "c1"}},
	}}
	session := connect(t, gw)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "unipile_get_recent_messages",
		Arguments: map[string]any{"account_id": "a1", "batch_size": 5},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "a1", gw.accountID)
	assert.Equal(t, 5, gw.count)
	assert.JSONEq(t, `[{"id":"m1","chat_info":{"id":"c1"}}]`, resultText(t, res))
}

func TestServer_GetEmails(t *testing.T) {
	gw := &fakeGateway{emails: []models.EmailSummary{{ID: "em_1", Subject: "Hi", From: "a@x.com", Body: "b"}}}
	session := connect(t, gw)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "unipile_get_emails",
		Arguments: map[string]any{"account_id": "a1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, gw.count)
	assert.JSONEq(t, `{"emails":[{"id":"em_1","subject":"Hi","date":"","from":"a@x.com","body":"b"}]}`, resultText(t, res))
}

func TestServer_ToolFailureIsErrorResult(t *testing.T) {
	gw := &fakeGateway{err: apperror.Upstream("get_chats", errors.New("unipile: 401 Unauthorized"))}
	session := connect(t, gw)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "unipile_get_recent_messages",
		Arguments: map[string]any{"account_id": "a1"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.JSONEq(t, `{"error":"get_chats: unipile: 401 Unauthorized"}`, resultText(t, res))
}

func TestServer_ReadAccountsResource(t *testing.T) {
	session := connect(t, &fakeGateway{accounts: json.RawMessage(`[{"id":"a1"}]`)})

	res, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: accountsURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)
	assert.JSONEq(t, `[{"id":"a1"}]`, res.Contents[0].Text)
}

func TestServer_ReadAccountsResourceFailure(t *testing.T) {
	gw := &fakeGateway{err: apperror.Network("get_accounts", errors.New("connection refused"))}
	session := connect(t, gw)

	res, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: accountsURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)
	assert.JSONEq(t, `{"error":"get_accounts: connection refused"}`, res.Contents[0].Text)
}

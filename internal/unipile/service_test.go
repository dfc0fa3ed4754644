package unipile

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"unipile/internal/apperror"
	"unipile/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, mux *http.ServeMux) *Service {
	t.Helper()
	return NewService(newTestClient(t, mux.ServeHTTP), zerolog.Nop())
}

func TestService_Accounts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/accounts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"object":"AccountList","items":[{"id":"a1","type":"MAIL"}]}`))
	})

	svc := newTestService(t, mux)

	raw, err := svc.Accounts(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"object":"AccountList","items":[{"id":"a1","type":"MAIL"}]}`, string(raw))
}

func TestService_RecentMessages(t *testing.T) {
	var gotLimit string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/messages", func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		// Upstream ignores the limit
		_, _ = w.Write([]byte(`{"object":"MessageList","items":[{"id":"m1"},{"id":"m2"},{"id":"m3"}]}`))
	})

	svc := newTestService(t, mux)

	raw, err := svc.RecentMessages(context.Background(), "a1", 2)
	require.NoError(t, err)
	assert.Equal(t, "2", gotLimit)

	items, err := ListItems(raw)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.RecentMessages(context.Background(), "", 2)
	require.Error(t, err)
	assert.Equal(t, apperror.ValidationFailure, apperror.KindOf(err))
}

func TestService_RecentMessages_DefaultBatch(t *testing.T) {
	var gotLimit string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/messages", func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`[]`))
	})

	svc := newTestService(t, mux)

	raw, err := svc.RecentMessages(context.Background(), "a1", 0)
	require.NoError(t, err)
	assert.Equal(t, "20", gotLimit)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestService_Emails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/emails", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a1", r.URL.Query().Get("account_id"))
		_, _ = w.Write([]byte(upstreamEmails))
	})

	svc := newTestService(t, mux)

	emails, err := svc.Emails(context.Background(), "a1", 2)
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, "ann@x.com", emails[0].From)
}

func TestService_Emails_UpstreamFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/emails", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"Forbidden"}`, http.StatusForbidden)
	})

	svc := newTestService(t, mux)

	_, err := svc.Emails(context.Background(), "a1", 2)
	require.Error(t, err)
	assert.Equal(t, apperror.UpstreamFailure, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "403")
}

func TestService_SendEmail(t *testing.T) {
	payload := `{"account_id":"a1","subject":"Hi","body":"Test","to":["x@y.com"]}`

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/emails", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, payload, string(body))
		_, _ = w.Write([]byte(`{"object":"EmailSent"}`))
	})

	svc := newTestService(t, mux)

	raw, err := svc.SendEmail(context.Background(), models.SendPayload(payload))
	require.NoError(t, err)
	assert.JSONEq(t, `{"object":"EmailSent"}`, string(raw))

	_, err = svc.SendEmail(context.Background(), models.SendPayload(`[]`))
	require.Error(t, err)
	assert.Equal(t, apperror.ValidationFailure, apperror.KindOf(err))
}

func TestService_ReplyEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/emails", func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "msg_1", r.FormValue("reply_to"))
		_, _ = w.Write([]byte(`{"object":"EmailSent"}`))
	})

	svc := newTestService(t, mux)

	err := svc.ReplyEmail(context.Background(), models.ReplyContext{
		OutboundEmail: models.OutboundEmail{AccountID: "a1", Subject: "s", Body: "b", To: []string{"x@y.com"}},
		ReplyTo:       "msg_1",
	})
	require.NoError(t, err)

	err = svc.ReplyEmail(context.Background(), models.ReplyContext{})
	require.Error(t, err)
	assert.Equal(t, apperror.ValidationFailure, apperror.KindOf(err))
}

func TestService_AccountMessages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/chats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[
			{"id":"c1","name":"Team","account_type":"SLACK","account_id":"a1"},
			{"id":"c2","name":"Other","account_type":"WHATSAPP","account_id":"a2"},
			{"name":"No id","account_id":"a1"}
		]}`))
	})
	mux.HandleFunc("/api/v1/chats/c1/messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"items":[{"id":"m1","text":"hi"},{"id":"m2","text":"yo"}]}`))
	})
	mux.HandleFunc("/api/v1/chats/c2/messages", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("chat of another account must not be fetched")
	})

	svc := newTestService(t, mux)

	messages, err := svc.AccountMessages(context.Background(), "a1", 3)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	data, err := json.Marshal(messages[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id":"m1","text":"hi",
		"chat_info":{"id":"c1","name":"Team","account_type":"SLACK","account_id":"a1"}
	}`, string(data))

	_, err = svc.AccountMessages(context.Background(), "", 3)
	assert.Equal(t, apperror.ValidationFailure, apperror.KindOf(err))
}

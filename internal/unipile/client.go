// Package unipile talks to the Unipile REST API: it translates gateway
// operations into upstream calls, performs them and shapes the replies.
package unipile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"unipile/internal/apperror"

	"github.com/rs/zerolog"
	"github.com/sendgrid/rest"
)

// UpstreamError is a non-2xx answer from the provider
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("unipile: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client performs authenticated calls against https://{host}/api/v1/...
type Client struct {
	baseURL string
	apiKey  string
	rest    *rest.Client
	logger  zerolog.Logger
}

// NewClient builds a client for the given host. A nil httpClient uses http.DefaultClient.
func NewClient(host, apiKey string, httpClient *http.Client, logger zerolog.Logger) (*Client, error) {
	if host == "" {
		return nil, errors.New("unipile: host is required")
	}
	if apiKey == "" {
		return nil, errors.New("unipile: API key is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: "https://" + host,
		apiKey:  apiKey,
		rest:    &rest.Client{HTTPClient: httpClient},
		logger:  logger,
	}, nil
}

// Do performs exactly one upstream call and returns the raw JSON reply.
// An empty reply body yields a nil RawMessage.
func (c *Client) Do(ctx context.Context, call Call) (json.RawMessage, error) {
	req, err := c.buildRequest(call)
	if err != nil {
		return nil, apperror.Upstream(call.Op, err)
	}

	start := time.Now()
	resp, err := c.rest.SendWithContext(ctx, req)
	if err != nil {
		c.logger.Error().Err(err).
			Str("op", call.Op).
			Str("method", string(call.Method)).
			Str("path", call.Path).
			Msg("Upstream call failed")
		return nil, apperror.Network(call.Op, err)
	}

	c.logger.Debug().
		Str("op", call.Op).
		Str("method", string(call.Method)).
		Str("path", call.Path).
		Int("status", resp.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("Upstream call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperror.Upstream(call.Op, &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
		})
	}

	body := bytes.TrimSpace([]byte(resp.Body))
	if len(body) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, apperror.Upstream(call.Op, fmt.Errorf("unipile: response is not valid JSON (status %d)", resp.StatusCode))
	}

	return json.RawMessage(body), nil
}

func (c *Client) buildRequest(call Call) (rest.Request, error) {
	req := rest.Request{
		Method:  call.Method,
		BaseURL: c.baseURL + call.Path,
		Headers: map[string]string{
			"X-API-KEY": c.apiKey,
			"accept":    "application/json",
		},
		QueryParams: call.Query,
	}

	switch {
	case call.Form != nil:
		body, contentType, err := encodeMultipart(call.Form)
		if err != nil {
			return rest.Request{}, err
		}
		req.Body = body
		req.Headers["Content-Type"] = contentType
	case call.JSON != nil:
		req.Body = call.JSON
		req.Headers["Content-Type"] = "application/json"
	}

	return req, nil
}

func encodeMultipart(form *Form) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range form.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", f.Name, err)
		}
	}

	if form.File != nil {
		part, err := w.CreateFormFile(form.File.Field, form.File.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(form.File.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write form file: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

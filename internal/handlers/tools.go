package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"unipile/internal/apperror"
	"unipile/internal/models"
	"unipile/internal/unipile"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	toolGetAccounts       = "unipile_get_accounts"
	toolReplyEmail        = "unipile_reply_email"
	toolSendEmail         = "unipile_send_email"
	toolGetRecentMessages = "unipile_get_recent_messages"
	toolGetEmails         = "unipile_get_emails"

	// attachmentFormField is the inbound multipart field carrying the reply attachment
	attachmentFormField = "attachment"
)

// Gateway is the set of upstream operations the tool endpoints dispatch to
type Gateway interface {
	Accounts(ctx context.Context) (json.RawMessage, error)
	RecentMessages(ctx context.Context, accountID string, batchSize int) (json.RawMessage, error)
	Emails(ctx context.Context, accountID string, limit int) ([]models.EmailSummary, error)
	SendEmail(ctx context.Context, payload models.SendPayload) (json.RawMessage, error)
	ReplyEmail(ctx context.Context, reply models.ReplyContext) error
}

// GetAccountsHandler lists connected accounts
// @Summary List connected accounts
// @Description Returns the upstream account list unchanged
// @Tags tools
// @Produce json
// @Success 200 {object} models.DataResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /tools/unipile_get_accounts [post]
func GetAccountsHandler(gw Gateway, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := gw.Accounts(c.Request().Context())
		if err != nil {
			return toolError(c, logger, toolGetAccounts, err)
		}
		return c.JSON(http.StatusOK, models.DataResponse{Data: data})
	}
}

// GetRecentMessagesHandler lists the latest messages of an account
// @Summary List recent messages
// @Tags tools
// @Produce json
// @Param account_id query string true "Account id"
// @Param batch_size query int false "Number of messages" default(20)
// @Success 200 {object} models.DataResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /tools/unipile_get_recent_messages [post]
func GetRecentMessagesHandler(gw Gateway, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		accountID, err := requiredQuery(c, toolGetRecentMessages, "account_id")
		if err != nil {
			return toolError(c, logger, toolGetRecentMessages, err)
		}
		batchSize, err := countQuery(c, toolGetRecentMessages, "batch_size", unipile.DefaultBatchSize)
		if err != nil {
			return toolError(c, logger, toolGetRecentMessages, err)
		}

		data, err := gw.RecentMessages(c.Request().Context(), accountID, batchSize)
		if err != nil {
			return toolError(c, logger, toolGetRecentMessages, err)
		}
		return c.JSON(http.StatusOK, models.DataResponse{Data: data})
	}
}

// GetEmailsHandler lists projected emails of an account
// @Summary List emails
// @Description Returns id, subject, date, sender and trimmed body of each email
// @Tags tools
// @Produce json
// @Param account_id query string true "Account id"
// @Param limit query int false "Number of emails" default(10)
// @Success 200 {object} models.EmailsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /tools/unipile_get_emails [post]
func GetEmailsHandler(gw Gateway, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		accountID, err := requiredQuery(c, toolGetEmails, "account_id")
		if err != nil {
			return toolError(c, logger, toolGetEmails, err)
		}
		limit, err := countQuery(c, toolGetEmails, "limit", unipile.DefaultEmailLimit)
		if err != nil {
			return toolError(c, logger, toolGetEmails, err)
		}

		emails, err := gw.Emails(c.Request().Context(), accountID, limit)
		if err != nil {
			return toolError(c, logger, toolGetEmails, err)
		}
		if emails == nil {
			emails = []models.EmailSummary{}
		}
		return c.JSON(http.StatusOK, models.EmailsResponse{Emails: emails})
	}
}

// SendEmailHandler forwards a raw JSON payload to the provider
// @Summary Send an email
// @Description The body is forwarded verbatim; it only has to be a JSON object
// @Tags tools
// @Accept json
// @Produce json
// @Param request body object true "Provider send payload"
// @Success 200 {object} models.SendEmailResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /tools/unipile_send_email [post]
func SendEmailHandler(gw Gateway, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return toolError(c, logger, toolSendEmail, apperror.Validation(toolSendEmail, fmt.Sprintf("failed to read body: %v", err)))
		}

		resp, err := gw.SendEmail(c.Request().Context(), models.SendPayload(body))
		if err != nil {
			return toolError(c, logger, toolSendEmail, err)
		}
		return c.JSON(http.StatusOK, models.SendEmailResponse{
			Message:  "Email sent successfully",
			Response: resp,
		})
	}
}

// ReplyEmailHandler replies to an existing message, optionally with one attachment
// @Summary Reply to an email
// @Description Accepts a JSON body, or multipart/form-data with an optional "attachment" file part
// @Tags tools
// @Accept json,mpfd
// @Produce json
// @Param reply_to query string true "Id of the message being replied to"
// @Param request body models.OutboundEmail true "Reply"
// @Success 200 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /tools/unipile_reply_email [post]
func ReplyEmailHandler(gw Gateway, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		reply, err := bindReply(c)
		if err != nil {
			return toolError(c, logger, toolReplyEmail, err)
		}
		if err := c.Validate(&reply); err != nil {
			return toolError(c, logger, toolReplyEmail, apperror.Validation(toolReplyEmail, err.Error()))
		}

		if err := gw.ReplyEmail(c.Request().Context(), reply); err != nil {
			return toolError(c, logger, toolReplyEmail, err)
		}
		return c.JSON(http.StatusOK, models.MessageResponse{Message: "Reply sent successfully"})
	}
}

// bindReply reads the reply either from a JSON body or from a multipart form
func bindReply(c echo.Context) (models.ReplyContext, error) {
	reply := models.ReplyContext{ReplyTo: c.QueryParam("reply_to")}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		if err := c.Bind(&reply.OutboundEmail); err != nil {
			return reply, apperror.Validation(toolReplyEmail, bindMessage(err))
		}
		return reply, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return reply, apperror.Validation(toolReplyEmail, fmt.Sprintf("invalid multipart form: %v", err))
	}

	reply.AccountID = formValue(form, "account_id")
	reply.Subject = formValue(form, "subject")
	reply.Body = formValue(form, "body")
	if reply.To, err = addressList(form.Value["to"]); err != nil {
		return reply, apperror.Validation(toolReplyEmail, fmt.Sprintf("to: %v", err))
	}
	if reply.CC, err = addressList(form.Value["cc"]); err != nil {
		return reply, apperror.Validation(toolReplyEmail, fmt.Sprintf("cc: %v", err))
	}
	if reply.BCC, err = addressList(form.Value["bcc"]); err != nil {
		return reply, apperror.Validation(toolReplyEmail, fmt.Sprintf("bcc: %v", err))
	}

	files := form.File[attachmentFormField]
	if len(files) == 0 {
		return reply, nil
	}
	if len(files) > 1 {
		return reply, apperror.Validation(toolReplyEmail, "at most one attachment is supported")
	}

	attachment, err := readAttachment(files[0])
	if err != nil {
		return reply, apperror.Validation(toolReplyEmail, err.Error())
	}
	reply.Attachment = attachment

	return reply, nil
}

func readAttachment(fh *multipart.FileHeader) (*models.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}
	return &models.Attachment{Filename: fh.Filename, Content: content}, nil
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// addressList accepts a JSON array string, comma-separated values or repeated fields
func addressList(values []string) ([]string, error) {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var addrs []string
		if err := json.Unmarshal([]byte(values[0]), &addrs); err != nil {
			return nil, fmt.Errorf("invalid address list: %w", err)
		}
		return addrs, nil
	}

	var addrs []string
	for _, v := range values {
		for _, addr := range strings.Split(v, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				addrs = append(addrs, addr)
			}
		}
	}
	return addrs, nil
}

func requiredQuery(c echo.Context, tool, name string) (string, error) {
	value := c.QueryParam(name)
	if value == "" {
		return "", apperror.Validation(tool, name+" is required")
	}
	return value, nil
}

// countQuery parses a count query parameter. Absent or 0 means def, the
// same rule the upstream translators apply.
func countQuery(c echo.Context, tool, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperror.Validation(tool, name+" must be a positive integer")
	}
	if n == 0 {
		return def, nil
	}
	return n, nil
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fmt.Sprintf("invalid request body: %v", he.Message)
	}
	return fmt.Sprintf("invalid request body: %v", err)
}

// toolError converts any failure into the {detail} envelope
func toolError(c echo.Context, logger zerolog.Logger, tool string, err error) error {
	kind := apperror.KindOf(err)

	logger.Error().Err(err).
		Str("tool", tool).
		Str("kind", kind.String()).
		Msg("Tool call failed")

	return c.JSON(apperror.StatusCode(kind), models.ErrorResponse{Detail: err.Error()})
}

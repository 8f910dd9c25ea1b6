package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client sends emails via a JSON-over-HTTP mail provider.
type Client struct {
	APIKey     string
	BaseURL    string
	From       string
	FromName   string
	AppBaseURL string // used to build verification/reset links
	HTTPClient *http.Client
}

// NewClient returns a mail client. baseURL and appBaseURL are required by
// Send; apiKey is checked at send time so a client can be constructed in
// environments without mail configured.
func NewClient(apiKey, baseURL, from, fromName, appBaseURL string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		From:       from,
		FromName:   fromName,
		AppBaseURL: strings.TrimSuffix(appBaseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

type message struct {
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
	ToEmail   string `json:"to_email"`
	ToName    string `json:"to_name"`
	Subject   string `json:"subject"`
	TextBody  string `json:"text_body"`
	Locale    string `json:"locale,omitempty"`
}

// SendVerification emails the plain verification token as a confirmation
// link. Does not log the token.
func (c *Client) SendVerification(ctx context.Context, name, email, rawToken, locale string) error {
	link := c.AppBaseURL + "/verify-email?token=" + url.QueryEscape(rawToken)
	return c.send(ctx, message{
		FromEmail: c.From,
		FromName:  c.FromName,
		ToEmail:   email,
		ToName:    name,
		Subject:   "Confirm your email address",
		TextBody:  fmt.Sprintf("Hi %s,\n\nConfirm your email address by opening this link:\n%s\n\nThe link expires in 48 hours.", name, link),
		Locale:    locale,
	})
}

// SendPasswordReset emails the plain reset token as a reset link. Does not
// log the token.
func (c *Client) SendPasswordReset(ctx context.Context, name, email, rawToken, locale string) error {
	link := c.AppBaseURL + "/reset-password?token=" + url.QueryEscape(rawToken)
	return c.send(ctx, message{
		FromEmail: c.From,
		FromName:  c.FromName,
		ToEmail:   email,
		ToName:    name,
		Subject:   "Reset your password",
		TextBody:  fmt.Sprintf("Hi %s,\n\nReset your password by opening this link:\n%s\n\nThe link expires in 1 hour. If you did not request this, you can ignore this email.", name, link),
		Locale:    locale,
	})
}

func (c *Client) send(ctx context.Context, msg message) error {
	if c.APIKey == "" {
		return fmt.Errorf("mailer: API key not configured")
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/messages", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mailer: request failed status=%d body=%s", resp.StatusCode, string(b))
	}
	return nil
}

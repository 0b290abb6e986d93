package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/srbeng/srb-site/internal/contact/domain"
)

const emailJSSendPath = "/api/v1.0/email/send"

type EmailJSConfig struct {
	APIURL         string
	ServiceID      string
	TemplateID     string
	PublicKey      string
	PrivateKey     string
	FromEmail      string
	RecipientEmail string
}

// EmailJSClient sends contact messages through the EmailJS REST API.
type EmailJSClient struct {
	cfg    EmailJSConfig
	client *http.Client
}

func NewEmailJSClient(cfg EmailJSConfig, httpClient *http.Client) *EmailJSClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.emailjs.com"
	}
	if cfg.FromEmail == "" {
		cfg.FromEmail = "noreply@srbeng.com"
	}
	if cfg.RecipientEmail == "" {
		cfg.RecipientEmail = "info@srbeng.com"
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return &EmailJSClient{cfg: cfg, client: httpClient}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id,omitempty"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func templateParams(m domain.Message, from, to string) map[string]string {
	return map[string]string{
		"full_name":          m.FullName,
		"phone_number":       m.PhoneNumber,
		"email_address":      m.EmailAddress,
		"interested_service": m.InterestedService,
		"message":            m.Message,
		"from_email":         from,
		"to_email":           to,
		"reply_to":           m.EmailAddress,
	}
}

// Send posts one message. EmailJS answers 200 with a plain "OK" body and a
// plain-text reason otherwise.
func (c *EmailJSClient) Send(ctx context.Context, m domain.Message) error {
	payload, err := json.Marshal(sendRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: templateParams(m, c.cfg.FromEmail, c.cfg.RecipientEmail),
	})
	if err != nil {
		return fmt.Errorf("marshal emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL+emailJSSendPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("emailjs returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

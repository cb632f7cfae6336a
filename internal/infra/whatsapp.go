package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"briqtrack/internal/config"
)

// WhatsAppClient delivers low-stock alerts through the Twilio Messages API.
// Keeping the HTTP plumbing here isolates Twilio failures from the core
// backend: callers go through the circuit breaker and the worker pool, never
// directly from a request handler.
type WhatsAppClient struct {
	accountSID string
	authToken  string
	from       string
	to         string
	baseURL    string
	httpClient *http.Client
}

// twilioMessageResponse is the subset of Twilio's response we care about.
type twilioMessageResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func NewWhatsAppClient(cfg *config.Config) *WhatsAppClient {
	return &WhatsAppClient{
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		from:       cfg.TwilioWhatsAppNumber,
		to:         cfg.OwnerWhatsApp,
		baseURL:    "https://api.twilio.com",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// BaseURL overrides the Twilio endpoint — used by tests to point at a stub.
func (c *WhatsAppClient) SetBaseURL(u string) { c.baseURL = u }

// Send posts one WhatsApp message to the configured owner number.
func (c *WhatsAppClient) Send(ctx context.Context, message string) error {
	if c.accountSID == "" || c.authToken == "" {
		return fmt.Errorf("whatsapp: twilio credentials not configured")
	}

	form := url.Values{}
	form.Set("Body", message)
	form.Set("From", c.from)
	form.Set("To", c.to)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("whatsapp: create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: twilio unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp: twilio returned %d", resp.StatusCode)
	}

	var result twilioMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("whatsapp: decode response: %w", err)
	}
	if result.ErrorCode != nil {
		return fmt.Errorf("whatsapp: twilio error %d: %s", *result.ErrorCode, result.ErrorMessage)
	}
	return nil
}

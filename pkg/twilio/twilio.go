// Package twilio is a minimal REST client for sending WhatsApp messages
// through the Twilio Messages API. Inbound webhook handling lives in the
// server package; this client only covers out-of-band sends.
package twilio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseSizeBytes = 1 << 20

type Config struct {
	AccountSID     string        `split_words:"true" required:"true"`
	AuthToken      string        `split_words:"true" required:"true"`
	WhatsAppNumber string        `envconfig:"WHATSAPP_NUMBER" required:"true"`
	BaseURL        string        `split_words:"true" default:"https://api.twilio.com"`
	Timeout        time.Duration `split_words:"true" default:"10s"`
}

type Client struct {
	baseURL        string
	accountSID     string
	authToken      string
	whatsAppNumber string
	httpClient     *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("twilio base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid twilio base url: %w", err)
	}

	accountSID := strings.TrimSpace(cfg.AccountSID)
	if accountSID == "" {
		return nil, errors.New("twilio account sid is required")
	}
	authToken := strings.TrimSpace(cfg.AuthToken)
	if authToken == "" {
		return nil, errors.New("twilio auth token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:        baseURL,
		accountSID:     accountSID,
		authToken:      authToken,
		whatsAppNumber: strings.TrimSpace(cfg.WhatsAppNumber),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// SendWhatsApp delivers body to the given number. The whatsapp: prefix is
// added when missing, matching what the Twilio API expects.
func (c *Client) SendWhatsApp(ctx context.Context, to string, body string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return errors.New("recipient is required")
	}
	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	form := url.Values{}
	form.Set("From", c.whatsAppNumber)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build twilio request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute twilio request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return fmt.Errorf("read twilio response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("twilio http status=%d body=%s", resp.StatusCode, string(raw))
	}
	return nil
}

// Package mailer sends transactional email through an HTTP mail API.
// Delivery is best-effort: callers log failures and move on.
package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Template names known to the mail provider
const (
	TemplateWinner  = "giveaway-winner"
	TemplateWelcome = "welcome"
)

// Mailer sends a templated transactional email
type Mailer interface {
	Send(to, template string, data map[string]interface{}) error
}

// APIMailer talks to an HTTP transactional-mail provider
type APIMailer struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewAPIMailer creates a mailer against the configured provider
func NewAPIMailer(baseURL, apiKey, from string) *APIMailer {
	return &APIMailer{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send posts the templated message to the provider
func (m *APIMailer) Send(to, template string, data map[string]interface{}) error {
	requestBody := map[string]interface{}{
		"from":     m.from,
		"to":       to,
		"template": template,
		"data":     data,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.baseURL+"/messages", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// MockMailer logs sends without delivering anything. Used in development
// and wherever no provider is configured.
type MockMailer struct{}

// Send pretends to deliver and always succeeds
func (MockMailer) Send(to, template string, data map[string]interface{}) error {
	fmt.Printf("[mock mailer] to=%s template=%s\n", to, template)
	return nil
}

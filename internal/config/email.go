package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

const defaultResendURL = "https://api.resend.com/emails"

type ResendConfig struct {
	APIKey string
	APIURL string
	From   string
}

// NewResendConfig reads the Resend settings from the environment. Email
// delivery is optional; with no API key the service becomes a no-op so
// deployments without outbound mail still work.
func NewResendConfig() *ResendConfig {
	apiURL := os.Getenv("RESEND_API_URL")
	if apiURL == "" {
		apiURL = defaultResendURL
	}
	return &ResendConfig{
		APIKey: os.Getenv("RESEND_API_KEY"),
		APIURL: apiURL,
		From:   os.Getenv("FROM_EMAIL"),
	}
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html"`
}

type EmailService struct {
	config *ResendConfig
	client *http.Client
	logger *zap.Logger
}

func NewEmailService(config *ResendConfig, logger *zap.Logger) *EmailService {
	if config.APIKey == "" {
		logger.Warn("RESEND_API_KEY not set, email delivery disabled")
	}
	return &EmailService{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (e *EmailService) Enabled() bool {
	return e.config.APIKey != "" && e.config.From != ""
}

func (e *EmailService) SendEmail(to, subject, body string) error {
	if !e.Enabled() {
		return nil
	}

	payload := emailRequest{
		From:    e.config.From,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, e.config.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorResponse map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorResponse)
		return fmt.Errorf("failed to send email, status code: %d, error: %v", resp.StatusCode, errorResponse)
	}

	e.logger.Debug("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"resi-be-svc/internal/config"
	"resi-be-svc/pkg/logger"

	"github.com/google/uuid"
)

// Stripe payment intent statuses we act on
const (
	StripeIntentSucceeded = "succeeded"
)

// webhookTolerance bounds the accepted age of a signed webhook timestamp
const webhookTolerance = 5 * time.Minute

// StripeIntent is the subset of a Stripe PaymentIntent this service uses
type StripeIntent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Metadata     map[string]string `json:"metadata"`
}

// StripeEvent is a signed webhook event envelope
type StripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object StripeIntent `json:"object"`
	} `json:"data"`
}

// stripeError mirrors Stripe's error response body
type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// StripeService defines the interface for Stripe API operations
type StripeService interface {
	CreateIntent(amount int64, paymentMethodID string, metadata map[string]string) (*StripeIntent, error)
	RetrieveIntent(intentID string) (*StripeIntent, error)
	VerifyWebhookSignature(payload []byte, signatureHeader string) error
	ParseEvent(payload []byte) (*StripeEvent, error)
}

// stripeService implements StripeService over the Stripe REST API
type stripeService struct {
	config config.StripeConfig
	client *http.Client
	logger *logger.Logger
}

// NewStripeService creates a new instance of StripeService
func NewStripeService(cfg config.StripeConfig, logger *logger.Logger) StripeService {
	return &stripeService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// CreateIntent creates and confirms a PaymentIntent for the given minor-unit
// amount
func (s *stripeService) CreateIntent(amount int64, paymentMethodID string, metadata map[string]string) (*StripeIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", s.config.Currency)
	form.Set("payment_method", paymentMethodID)
	form.Set("confirm", "true")
	form.Set("return_url", s.config.ReturnURL)
	for key, value := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	return s.doIntentRequest(http.MethodPost, "/v1/payment_intents", form)
}

// RetrieveIntent fetches the current state of a PaymentIntent
func (s *stripeService) RetrieveIntent(intentID string) (*StripeIntent, error) {
	return s.doIntentRequest(http.MethodGet, "/v1/payment_intents/"+url.PathEscape(intentID), nil)
}

func (s *stripeService) doIntentRequest(method, target string, form url.Values) (*StripeIntent, error) {
	if s.config.SecretKey == "" {
		return nil, fmt.Errorf("stripe credentials not configured")
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, s.config.BaseURL+target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.config.SecretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Idempotency-Key", uuid.New().String())
	}

	s.logger.WithFields(map[string]interface{}{
		"method": method,
		"target": target,
	}).Debug("Sending request to Stripe")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr stripeError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			s.logger.WithFields(map[string]interface{}{
				"status_code": resp.StatusCode,
				"error_type":  apiErr.Error.Type,
			}).Error("Stripe API request rejected")
			return nil, fmt.Errorf("stripe: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe: unexpected status %d", resp.StatusCode)
	}

	var intent StripeIntent
	if err := json.Unmarshal(respBody, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &intent, nil
}

// VerifyWebhookSignature checks the Stripe-Signature header against the
// shared webhook secret. The signed payload is "<timestamp>.<body>" and the
// v1 scheme is HMAC-SHA256 hex.
func (s *stripeService) VerifyWebhookSignature(payload []byte, signatureHeader string) error {
	if s.config.WebhookSecret == "" {
		return fmt.Errorf("stripe webhook secret not configured")
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(signatureHeader, ",") {
		pair := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(pair) != 2 {
			continue
		}
		switch pair[0] {
		case "t":
			timestamp = pair[1]
		case "v1":
			signatures = append(signatures, pair[1])
		}
	}

	if timestamp == "" || len(signatures) == 0 {
		return ErrBadSignature
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrBadSignature
	}
	if age := time.Since(time.Unix(ts, 0)); age > webhookTolerance || age < -webhookTolerance {
		return ErrBadSignature
	}

	mac := hmac.New(sha256.New, []byte(s.config.WebhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, signature := range signatures {
		if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1 {
			return nil
		}
	}

	return ErrBadSignature
}

// ParseEvent decodes a webhook payload into an event envelope
func (s *stripeService) ParseEvent(payload []byte) (*StripeEvent, error) {
	var event StripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}
	return &event, nil
}

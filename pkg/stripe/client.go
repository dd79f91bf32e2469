// Package stripe provides a lightweight Stripe API client for LaunchKit.
// Uses raw HTTP calls (no SDK) to minimize external dependencies.
package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotConfigured is returned when Stripe keys are missing.
var ErrNotConfigured = errors.New("stripe: not configured")

// CheckoutParams carries everything needed to create a hosted checkout
// session for a subscription plan.
type CheckoutParams struct {
	PriceID       string // price_... resolved from the plan lookup table
	CustomerEmail string
	UserID        string // stored as client_reference_id and metadata
	SuccessURL    string
	CancelURL     string
}

// Subscription is the subset of a Stripe subscription the backend stores.
type Subscription struct {
	ID                string
	CustomerID        string
	Status            string // active, trialing, past_due, canceled, ...
	PriceID           string
	CurrentPeriodEnd  int64 // unix seconds
	CancelAtPeriodEnd bool
}

// WebhookEventObject is the data.object of the event types we handle.
// Checkout sessions, invoices, and subscriptions share this shape; fields
// irrelevant to a given type are simply empty.
type WebhookEventObject struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	Subscription      string `json:"subscription"`       // session/invoice → sub_...
	ClientReferenceID string `json:"client_reference_id"` // session → user id
	Status            string `json:"status"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	Items             *struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
	Metadata map[string]string `json:"metadata"`
}

// PriceID returns the price of the first subscription item, if present.
func (o *WebhookEventObject) PriceID() string {
	if o.Items != nil && len(o.Items.Data) > 0 {
		return o.Items.Data[0].Price.ID
	}
	return ""
}

// WebhookEvent is a Stripe webhook event envelope.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object WebhookEventObject `json:"object"`
	} `json:"data"`
}

// Client is the Stripe API client interface.
type Client interface {
	// CreateCheckoutSession creates a subscription-mode Checkout Session
	// and returns its hosted URL.
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error)
	// GetSubscription fetches the current state of a subscription.
	GetSubscription(ctx context.Context, subscriptionID string) (Subscription, error)
	// VerifyWebhookSignature validates the Stripe-Signature header.
	VerifyWebhookSignature(payload []byte, sigHeader string) error
	// ParseWebhookEvent decodes a webhook payload.
	ParseWebhookEvent(payload []byte) (WebhookEvent, error)
}

// RealClient talks to the Stripe API over raw HTTP.
type RealClient struct {
	SecretKey     string
	WebhookSecret string // whsec_...
	httpClient    *http.Client
}

// NewClient creates a RealClient.
func NewClient(secretKey, webhookSecret string) *RealClient {
	return &RealClient{
		SecretKey:     secretKey,
		WebhookSecret: webhookSecret,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Client = (*RealClient)(nil)

// CreateCheckoutSession creates a subscription Checkout Session and returns
// its URL for client-side redirect.
func (c *RealClient) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error) {
	if c.SecretKey == "" {
		return "", ErrNotConfigured
	}

	data := url.Values{}
	data.Set("mode", "subscription")
	data.Set("line_items[0][price]", params.PriceID)
	data.Set("line_items[0][quantity]", "1")
	data.Set("success_url", params.SuccessURL)
	data.Set("cancel_url", params.CancelURL)
	if params.CustomerEmail != "" {
		data.Set("customer_email", params.CustomerEmail)
	}
	if params.UserID != "" {
		data.Set("client_reference_id", params.UserID)
		data.Set("metadata[user_id]", params.UserID)
		data.Set("subscription_data[metadata][user_id]", params.UserID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.stripe.com/v1/checkout/sessions",
		strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.SecretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var session struct {
		URL   string `json:"url"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", err
	}
	if session.Error != nil {
		return "", fmt.Errorf("stripe checkout error: %s", session.Error.Message)
	}
	if session.URL == "" {
		return "", errors.New("stripe checkout: empty URL in response")
	}
	return session.URL, nil
}

// GetSubscription fetches a subscription so webhook handlers can overwrite
// the stored snapshot with the provider's current state.
func (c *RealClient) GetSubscription(ctx context.Context, subscriptionID string) (Subscription, error) {
	if c.SecretKey == "" {
		return Subscription{}, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("https://api.stripe.com/v1/subscriptions/%s", subscriptionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Subscription{}, err
	}
	req.SetBasicAuth(c.SecretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Subscription{}, err
	}
	defer resp.Body.Close()

	var result struct {
		WebhookEventObject
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Subscription{}, err
	}
	if result.Error != nil {
		return Subscription{}, fmt.Errorf("stripe get subscription: %s", result.Error.Message)
	}
	if result.ID == "" {
		return Subscription{}, errors.New("stripe get subscription: empty ID in response")
	}

	return Subscription{
		ID:                result.ID,
		CustomerID:        result.Customer,
		Status:            result.Status,
		PriceID:           result.WebhookEventObject.PriceID(),
		CurrentPeriodEnd:  result.CurrentPeriodEnd,
		CancelAtPeriodEnd: result.CancelAtPeriodEnd,
	}, nil
}

// VerifyWebhookSignature validates the Stripe-Signature header with
// HMAC-SHA256 over "timestamp.payload".
func (c *RealClient) VerifyWebhookSignature(payload []byte, sigHeader string) error {
	if c.WebhookSecret == "" {
		return ErrNotConfigured
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(sigHeader, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return errors.New("stripe: invalid signature header format")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errors.New("stripe: invalid timestamp in signature header")
	}
	if time.Since(time.Unix(ts, 0)) > 5*time.Minute {
		return errors.New("stripe: webhook timestamp too old (replay attack protection)")
	}

	mac := hmac.New(sha256.New, []byte(c.WebhookSecret))
	mac.Write([]byte(timestamp + "." + string(payload)))
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return errors.New("stripe: signature verification failed")
}

// ParseWebhookEvent decodes the webhook payload envelope.
func (c *RealClient) ParseWebhookEvent(payload []byte) (WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return WebhookEvent{}, err
	}
	return event, nil
}

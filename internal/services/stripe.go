package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// CheckoutSession mirrors the fields of a Stripe Checkout Session that
// this service reads. Sessions live on the processor side only; nothing
// here is persisted locally.
type CheckoutSession struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	PaymentStatus   string            `json:"payment_status"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	CustomerEmail   string            `json:"customer_email"`
	PaymentIntent   string            `json:"payment_intent"`
	Metadata        map[string]string `json:"metadata"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
}

// Email returns the customer email, preferring the value captured at
// checkout over the one the session was created with.
func (s *CheckoutSession) Email() string {
	if s.CustomerDetails.Email != "" {
		return s.CustomerDetails.Email
	}
	return s.CustomerEmail
}

type CheckoutParams struct {
	Amount        int64 // minor units
	Currency      string
	CustomerEmail string
	ProductName   string
	ParcelID      uint
	SuccessURL    string
	CancelURL     string
}

// CheckoutProvider is the payment processor surface the payment service
// depends on.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// StripeClient talks to the Stripe REST API directly: form-encoded
// requests, JSON responses, secret key as a bearer token.
type StripeClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewStripeClient() *StripeClient {
	return &StripeClient{
		secretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		baseURL:    "https://api.stripe.com",
		httpClient: http.DefaultClient,
	}
}

// NewStripeClientWithBaseURL points the client at a different API host.
func NewStripeClientWithBaseURL(secretKey, baseURL string) *StripeClient {
	return &StripeClient{
		secretKey:  secretKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.Amount, 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("customer_email", params.CustomerEmail)
	form.Set("metadata[parcelId]", strconv.FormatUint(uint64(params.ParcelID), 10))
	form.Set("metadata[parcelName]", params.ProductName)
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)

	return c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form)
}

func (c *StripeClient) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	return c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
}

func (c *StripeClient) do(ctx context.Context, method, path string, form url.Values) (*CheckoutSession, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
				Type    string `json:"type"`
			} `json:"error"`
		}
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe: %s (%s)", apiErr.Error.Message, apiErr.Error.Type)
		}
		return nil, fmt.Errorf("stripe: unexpected status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("stripe: failed to decode session: %v", err)
	}
	return &session, nil
}

package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	productionBaseURL = "https://connect.squareup.com"
	sandboxBaseURL    = "https://connect.squareupsandbox.com"
)

// LinkRequest describes a hosted checkout to create. AmountCents is the
// price in minor currency units.
type LinkRequest struct {
	Name        string
	AmountCents int64
	Currency    string
	RedirectURL string
	Note        string
}

type Link struct {
	ID  string
	URL string
}

// PaymentLinker creates hosted payment links. Handlers depend on this
// interface so tests can substitute a fake for the Square API.
type PaymentLinker interface {
	CreateLink(ctx context.Context, req LinkRequest) (*Link, error)
}

type squareClient struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	locationID  string
}

func NewSquareClient(accessToken, env, locationID string) PaymentLinker {
	baseURL := sandboxBaseURL
	if env == "production" {
		baseURL = productionBaseURL
	}
	return &squareClient{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		baseURL:     baseURL,
		accessToken: accessToken,
		locationID:  locationID,
	}
}

type priceMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type quickPay struct {
	Name       string     `json:"name"`
	PriceMoney priceMoney `json:"price_money"`
	LocationID string     `json:"location_id"`
}

type checkoutOptions struct {
	RedirectURL string `json:"redirect_url"`
}

type createLinkBody struct {
	IdempotencyKey  string          `json:"idempotency_key"`
	QuickPay        quickPay        `json:"quick_pay"`
	CheckoutOptions checkoutOptions `json:"checkout_options"`
	PaymentNote     string          `json:"payment_note,omitempty"`
}

type paymentLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type createLinkResponse struct {
	PaymentLink paymentLink `json:"payment_link"`
	Errors      []struct {
		Category string `json:"category"`
		Code     string `json:"code"`
		Detail   string `json:"detail"`
	} `json:"errors"`
}

func (c *squareClient) CreateLink(ctx context.Context, req LinkRequest) (*Link, error) {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	body := createLinkBody{
		IdempotencyKey: uuid.NewString(),
		QuickPay: quickPay{
			Name: req.Name,
			PriceMoney: priceMoney{
				Amount:   req.AmountCents,
				Currency: currency,
			},
			LocationID: c.locationID,
		},
		CheckoutOptions: checkoutOptions{RedirectURL: req.RedirectURL},
		PaymentNote:     req.Note,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v2/online-checkout/payment-links",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded createLinkResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("square: decoding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if len(decoded.Errors) > 0 {
			return nil, fmt.Errorf("square: %s (%s)", decoded.Errors[0].Detail, decoded.Errors[0].Code)
		}
		return nil, fmt.Errorf("square: unexpected status %d", resp.StatusCode)
	}

	if decoded.PaymentLink.URL == "" {
		return nil, fmt.Errorf("square: response missing payment link url")
	}

	return &Link{ID: decoded.PaymentLink.ID, URL: decoded.PaymentLink.URL}, nil
}

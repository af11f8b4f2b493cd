package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{49.99, 4999},
		{0, 0},
		{100, 10000},
		{19.995, 2000},
		{0.1, 10},
	}
	for _, tt := range tests {
		if got := MinorUnits(tt.price); got != tt.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", tt.price, got, tt.want)
		}
	}
}

func TestCreateLinkSendsAmountAndRedirect(t *testing.T) {
	var received createLinkBody

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/online-checkout/payment-links" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		json.NewEncoder(w).Encode(createLinkResponse{
			PaymentLink: paymentLink{ID: "PL123", URL: "https://square.link/u/abc"},
		})
	}))
	defer server.Close()

	client := &squareClient{
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		baseURL:     server.URL,
		accessToken: "test-token",
		locationID:  "LOC1",
	}

	link, err := client.CreateLink(context.Background(), LinkRequest{
		Name:        "Data Analytics Bootcamp",
		AmountCents: 4999,
		RedirectURL: "https://app.example.com/payment-success?token=tok-1",
		Note:        "tok-1",
	})
	if err != nil {
		t.Fatalf("CreateLink returned error: %v", err)
	}

	if link.URL != "https://square.link/u/abc" {
		t.Errorf("unexpected link url %q", link.URL)
	}
	if received.QuickPay.PriceMoney.Amount != 4999 {
		t.Errorf("expected amount 4999, got %d", received.QuickPay.PriceMoney.Amount)
	}
	if received.QuickPay.PriceMoney.Currency != "USD" {
		t.Errorf("expected USD default currency, got %q", received.QuickPay.PriceMoney.Currency)
	}
	if received.CheckoutOptions.RedirectURL != "https://app.example.com/payment-success?token=tok-1" {
		t.Errorf("unexpected redirect url %q", received.CheckoutOptions.RedirectURL)
	}
	if received.QuickPay.LocationID != "LOC1" {
		t.Errorf("expected location LOC1, got %q", received.QuickPay.LocationID)
	}
	if received.IdempotencyKey == "" {
		t.Error("expected an idempotency key")
	}
}

func TestCreateLinkSurfacesSquareError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"category":"INVALID_REQUEST_ERROR","code":"MISSING_REQUIRED_PARAMETER","detail":"price_money is required"}]}`))
	}))
	defer server.Close()

	client := &squareClient{
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		baseURL:     server.URL,
		accessToken: "test-token",
		locationID:  "LOC1",
	}

	_, err := client.CreateLink(context.Background(), LinkRequest{Name: "x", AmountCents: 1})
	if err == nil {
		t.Fatal("expected error from square error response")
	}
}

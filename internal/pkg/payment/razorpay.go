package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/coeptech/unimis/internal/pkg/logger"
)

// Order is the subset of a gateway order the application cares about.
type Order struct {
	ID       string
	Amount   int64 // smallest currency unit (paise)
	Currency string
}

// Gateway creates payment orders with the upstream provider.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
}

// RazorpayGateway talks to the Razorpay orders API.
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

// NewRazorpayGateway creates a gateway client from API credentials.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

// KeyID returns the public API key, exposed to the checkout frontend.
func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// CreateOrder creates an order with the gateway. Amount is in the smallest
// currency unit.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		logger.Error().Err(err).Int64("amount", amount).Msg("Razorpay order creation failed")
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok {
		return nil, fmt.Errorf("gateway order response missing id")
	}

	order := &Order{ID: id, Amount: amount, Currency: currency}
	if amt, ok := body["amount"].(float64); ok {
		order.Amount = int64(amt)
	}
	if cur, ok := body["currency"].(string); ok {
		order.Currency = cur
	}

	return order, nil
}

// VerifySignature checks the client-supplied payment signature against
// HMAC-SHA256(secret, orderID+"|"+paymentID). Constant-time compare.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	secret := "test_secret"
	signature := sign("order_ABC123", "pay_XYZ789", secret)

	assert.True(t, VerifySignature("order_ABC123", "pay_XYZ789", signature, secret))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	signature := sign("order_ABC123", "pay_XYZ789", "test_secret")

	assert.False(t, VerifySignature("order_ABC123", "pay_XYZ789", signature, "other_secret"))
}

func TestVerifySignature_TamperedPayment(t *testing.T) {
	secret := "test_secret"
	signature := sign("order_ABC123", "pay_XYZ789", secret)

	assert.False(t, VerifySignature("order_ABC123", "pay_TAMPERED", signature, secret))
	assert.False(t, VerifySignature("order_OTHER", "pay_XYZ789", signature, secret))
}

func TestVerifySignature_EmptySignature(t *testing.T) {
	assert.False(t, VerifySignature("order_ABC123", "pay_XYZ789", "", "test_secret"))
}

func TestNewRazorpayGateway_KeyID(t *testing.T) {
	gateway := NewRazorpayGateway("rzp_test_key", "secret")
	assert.Equal(t, "rzp_test_key", gateway.KeyID())
}

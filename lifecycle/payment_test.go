package lifecycle

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gatewaySign(secret, orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "s3cret"
	sig := gatewaySign(secret, "order_1", "pay_1")

	assert.True(t, VerifyPaymentSignature(secret, "order_1", "pay_1", sig))

	// a signature minted for a different gateway order must not pass
	assert.False(t, VerifyPaymentSignature(secret, "order_2", "pay_1", sig))
	assert.False(t, VerifyPaymentSignature(secret, "order_1", "pay_2", sig))
	assert.False(t, VerifyPaymentSignature("other", "order_1", "pay_1", sig))
	assert.False(t, VerifyPaymentSignature(secret, "order_1", "pay_1", ""))
}

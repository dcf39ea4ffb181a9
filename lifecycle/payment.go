package lifecycle

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// PaymentStatus mirrors the order's isPaid flag as an enum.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

// PaymentMethods is the fixed set of accepted payment methods.
var PaymentMethods = []string{
	"Cash on Delivery",
	"Credit Card",
	"Mobile Payment",
	"Bank Transfer",
	"EasyPaisa",
	"JazzCash",
	"PayPal",
	"MobileBanking",
}

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	for _, method := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// OnlineMethod reports whether m is settled through the payment gateway
// at checkout. The remaining methods are collected out of band.
func OnlineMethod(m string) bool {
	switch m {
	case "Credit Card", "Mobile Payment", "PayPal":
		return true
	}
	return false
}

// VerifyPaymentSignature checks the gateway's HMAC-SHA256 over
// "orderId|paymentId" against the signature the client echoed back.
func VerifyPaymentSignature(secret, orderID, paymentID, signature string) bool {
	if signature == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

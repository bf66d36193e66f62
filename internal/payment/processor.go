package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Method is the customer-selected payment instrument.
type Method string

const (
	MethodCreditCard Method = "credit-card"
	MethodPayPal     Method = "paypal"
	MethodGooglePay  Method = "google-pay"
	MethodApplePay   Method = "apple-pay"
)

func (m Method) IsValid() bool {
	switch m {
	case MethodCreditCard, MethodPayPal, MethodGooglePay, MethodApplePay:
		return true
	}
	return false
}

// ProviderLabel is the display name of the gateway behind the method.
func (m Method) ProviderLabel() string {
	switch m {
	case MethodCreditCard:
		return "Stripe"
	case MethodPayPal:
		return "PayPal"
	case MethodGooglePay:
		return "Google Pay"
	case MethodApplePay:
		return "Apple Pay"
	default:
		return "Unknown"
	}
}

const (
	StatusCompleted = "completed"
	StatusDeclined  = "declined"
)

// Authorization is the gateway's response to a charge attempt.
type Authorization struct {
	TransactionID     string
	Status            string
	Provider          string
	AuthorizationCode string
	ReceiptURL        string
	Last4             *string
	CardBrand         *string
	Timestamp         time.Time
}

// Request carries the charge parameters.
type Request struct {
	Method   Method
	Amount   decimal.Decimal
	Currency string
}

// Processor charges the customer. Implementations return a coded error on
// decline or gateway timeout so the orchestrator can keep local state intact.
type Processor interface {
	Authorize(ctx context.Context, req Request) (*Authorization, error)
}

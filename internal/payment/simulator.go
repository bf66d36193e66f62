package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/nhakalabs/storefront-gateway/pkg/config"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
)

// Simulated gateway outcomes, selected via configuration.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeDeclined  = "declined"
	OutcomeTimedOut  = "timed_out"
)

// Simulator stands in for a real payment gateway. It waits a configured
// delay, then either synthesizes an authorization or fails the way a real
// gateway would.
type Simulator struct {
	delay   time.Duration
	outcome string
	now     func() time.Time
}

func NewSimulator(cfg config.CheckoutConfig) *Simulator {
	return &Simulator{
		delay: cfg.GatewayDelay,
		// Config validation accepts the outcome case-insensitively, so the
		// switch below must see the canonical form.
		outcome: strings.ToLower(strings.TrimSpace(cfg.GatewayOutcome)),
		now:     time.Now,
	}
}

func (s *Simulator) Authorize(ctx context.Context, req Request) (*Authorization, error) {
	if !req.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "charge amount must be positive")
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "payment gateway call canceled")
		case <-timer.C:
		}
	}

	switch s.outcome {
	case OutcomeDeclined:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment declined by gateway")
	case OutcomeTimedOut:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment gateway timed out")
	}

	now := s.now().UTC()
	txnID := transactionID(now)
	auth := &Authorization{
		TransactionID:     txnID,
		Status:            StatusCompleted,
		Provider:          req.Method.ProviderLabel(),
		AuthorizationCode: "AUTH-" + strings.ToUpper(randomSuffix(3)),
		ReceiptURL:        fmt.Sprintf("https://receipts.example.com/%s", txnID),
		Timestamp:         now,
	}
	if req.Method == MethodCreditCard {
		last4 := "4242"
		brand := "Visa"
		auth.Last4 = &last4
		auth.CardBrand = &brand
	}
	return auth, nil
}

// transactionID combines a timestamp with a random suffix so concurrent
// charges in the same millisecond cannot collide.
func transactionID(now time.Time) string {
	return fmt.Sprintf("TXN-%d-%s", now.UnixMilli(), randomSuffix(4))
}

func randomSuffix(bytes int) string {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nhakalabs/storefront-gateway/internal/cart"
	"github.com/nhakalabs/storefront-gateway/internal/payment"
	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
	"github.com/nhakalabs/storefront-gateway/pkg/metrics"
)

type cartAccessor interface {
	Use(sessionID string) (*cart.Store, error)
}

type orderPlacer interface {
	CreatePurchase(ctx context.Context, purchase commerce.Purchase, idempotencyKey string) (*commerce.Purchase, error)
}

// Service executes the two-step checkout and the order submission.
type Service interface {
	State(ctx context.Context, sessionID string) (*WizardState, error)
	SubmitDelivery(ctx context.Context, sessionID string, info DeliveryInfo, identity *Identity) (*WizardState, error)
	SelectPaymentMethod(ctx context.Context, sessionID string, method payment.Method) (*WizardState, error)
	Back(ctx context.Context, sessionID string) (*WizardState, error)
	PlaceOrder(ctx context.Context, sessionID string, identity *Identity) (*commerce.Purchase, error)
	Teardown(sessionID string)
}

type service struct {
	carts     cartAccessor
	orders    orderPlacer
	processor payment.Processor
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
	currency  string
	now       func() time.Time
	newKey    func() string

	mu      sync.Mutex
	wizards map[string]*Wizard
}

// NewService builds the checkout service.
func NewService(
	carts cartAccessor,
	orders orderPlacer,
	processor payment.Processor,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
	currency string,
) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart accessor required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order placer required")
	}
	if processor == nil {
		return nil, fmt.Errorf("payment processor required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if currency == "" {
		currency = "USD"
	}
	return &service{
		carts:     carts,
		orders:    orders,
		processor: processor,
		metrics:   checkoutMetrics,
		logg:      logg,
		currency:  currency,
		now:       time.Now,
		newKey:    uuid.NewString,
		wizards:   make(map[string]*Wizard),
	}, nil
}

// wizard returns the session's wizard, creating it on first use, and pushes
// it back to the delivery step whenever the cart has drained.
func (s *service) wizard(sessionID string) (*Wizard, *cart.Store, error) {
	store, err := s.carts.Use(sessionID)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	w, ok := s.wizards[sessionID]
	if !ok {
		w = NewWizard()
		s.wizards[sessionID] = w
	}
	s.mu.Unlock()

	w.HandleCartCount(store.Count())
	return w, store, nil
}

func (s *service) State(ctx context.Context, sessionID string) (*WizardState, error) {
	w, _, err := s.wizard(sessionID)
	if err != nil {
		return nil, err
	}
	state := w.Snapshot()
	return &state, nil
}

func (s *service) SubmitDelivery(ctx context.Context, sessionID string, info DeliveryInfo, identity *Identity) (*WizardState, error) {
	w, store, err := s.wizard(sessionID)
	if err != nil {
		return nil, err
	}
	if store.Count() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	if identity != nil {
		w.Prefill(identity.FullName, identity.Email)
	}
	if err := w.SubmitDelivery(info); err != nil {
		return nil, err
	}
	state := w.Snapshot()
	return &state, nil
}

func (s *service) SelectPaymentMethod(ctx context.Context, sessionID string, method payment.Method) (*WizardState, error) {
	w, _, err := s.wizard(sessionID)
	if err != nil {
		return nil, err
	}
	if err := w.SelectPaymentMethod(method); err != nil {
		return nil, err
	}
	state := w.Snapshot()
	return &state, nil
}

func (s *service) Back(ctx context.Context, sessionID string) (*WizardState, error) {
	w, _, err := s.wizard(sessionID)
	if err != nil {
		return nil, err
	}
	w.Back()
	state := w.Snapshot()
	return &state, nil
}

// PlaceOrder runs the full submission: guard, charge, assemble, submit,
// reconcile. On any failure the cart and the entered form stay untouched so
// the customer can retry without re-entering data.
func (s *service) PlaceOrder(ctx context.Context, sessionID string, identity *Identity) (*commerce.Purchase, error) {
	w, store, err := s.wizard(sessionID)
	if err != nil {
		return nil, err
	}

	cartState := store.Snapshot()
	if len(cartState.LineItems) == 0 {
		s.metrics.IncRejected()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	wizardState, acquired := w.beginProcessing()
	if !acquired {
		s.metrics.IncRejected()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "an order submission is already in progress")
	}
	defer w.endProcessing()

	if missing := wizardState.Delivery.missingFields(); len(missing) > 0 {
		s.metrics.IncRejected()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery details are incomplete").
			WithDetails(map[string]any{"missing": missing})
	}
	if !wizardState.PaymentMethod.IsValid() {
		s.metrics.IncRejected()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no payment method selected")
	}

	started := s.now()
	total := cartState.Total()

	auth, err := s.processor.Authorize(ctx, payment.Request{
		Method:   wizardState.PaymentMethod,
		Amount:   total,
		Currency: s.currency,
	})
	if err != nil {
		s.metrics.ObserveSubmission(outcomeFor(err), s.now().Sub(started))
		s.logg.Error(ctx, "payment authorization failed", err)
		return nil, err
	}

	record := buildPurchase(cartState, wizardState.Delivery, wizardState.PaymentMethod, *auth, identity, s.currency, s.now())

	created, err := s.orders.CreatePurchase(ctx, record, s.newKey())
	if err != nil {
		s.metrics.ObserveSubmission("submit_failed", s.now().Sub(started))
		s.logg.Error(ctx, "order submission failed", err)
		return nil, err
	}

	// Drain only what was in the submitted snapshot; anything added while the
	// gateway call was in flight survives.
	for _, line := range cartState.LineItems {
		store.Dispatch(cart.RemoveItem{ProductID: line.ProductID})
	}
	store.Dispatch(cart.CloseCartPanel{})
	w.Reset()

	s.metrics.ObserveSubmission(payment.OutcomeSucceeded, s.now().Sub(started))
	s.logg.Info(s.logg.WithField(ctx, "order_id", created.OrderID), "order placed")
	return created, nil
}

// Teardown drops the session's wizard, for sign-out.
func (s *service) Teardown(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wizards, sessionID)
}

func outcomeFor(err error) string {
	if coded := pkgerrors.As(err); coded != nil {
		switch coded.Code() {
		case pkgerrors.CodeStateConflict:
			return payment.OutcomeDeclined
		case pkgerrors.CodeDependency:
			return payment.OutcomeTimedOut
		}
	}
	return "failed"
}

package checkout

import (
	"strings"
	"sync"

	"github.com/nhakalabs/storefront-gateway/internal/payment"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
)

// Step is the checkout wizard position.
type Step int

const (
	StepDelivery Step = 1
	StepPayment  Step = 2
)

// DeliveryInfo is the contact and address form collected in step 1.
// FullName, Email, Phone and Address must be non-empty to advance.
type DeliveryInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

func (d DeliveryInfo) missingFields() []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"fullName", d.FullName},
		{"email", d.Email},
		{"phone", d.Phone},
		{"address", d.Address},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// WizardState is a read snapshot of one session's checkout progress.
type WizardState struct {
	Step          Step           `json:"step"`
	Delivery      DeliveryInfo   `json:"delivery"`
	PaymentMethod payment.Method `json:"paymentMethod,omitempty"`
	Processing    bool           `json:"isProcessing"`
}

// Wizard owns the transient two-step checkout state for one session.
// It always starts at the delivery step.
type Wizard struct {
	mu         sync.Mutex
	step       Step
	delivery   DeliveryInfo
	method     payment.Method
	processing bool
}

func NewWizard() *Wizard {
	return &Wizard{step: StepDelivery}
}

func (w *Wizard) Snapshot() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Wizard) snapshotLocked() WizardState {
	return WizardState{
		Step:          w.step,
		Delivery:      w.delivery,
		PaymentMethod: w.method,
		Processing:    w.processing,
	}
}

// SubmitDelivery stores the form and advances to the payment step. All four
// required fields must be non-empty after trimming; a partial form blocks the
// advance and stores nothing.
func (w *Wizard) SubmitDelivery(info DeliveryInfo) error {
	if missing := info.missingFields(); len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery details are incomplete").
			WithDetails(map[string]any{"missing": missing})
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delivery = info
	w.step = StepPayment
	return nil
}

// SelectPaymentMethod records the instrument choice on step 2.
func (w *Wizard) SelectPaymentMethod(method payment.Method) error {
	if !method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepPayment {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "payment method is chosen on the payment step")
	}
	w.method = method
	return nil
}

// Back returns to the delivery step, keeping the entered form and any
// payment-method selection.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepDelivery
}

// Prefill fills identity fields that are still empty. User edits made after a
// prefill are never overwritten.
func (w *Wizard) Prefill(fullName, email string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if strings.TrimSpace(w.delivery.FullName) == "" {
		w.delivery.FullName = fullName
	}
	if strings.TrimSpace(w.delivery.Email) == "" {
		w.delivery.Email = email
	}
}

// HandleCartCount pushes the wizard back to the delivery step when the cart
// drains, since an empty cart cannot be checked out. The entered form is kept.
func (w *Wizard) HandleCartCount(count int) {
	if count > 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepDelivery
}

// Reset restores the initial state for the next checkout.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepDelivery
	w.delivery = DeliveryInfo{}
	w.method = ""
	w.processing = false
}

// beginProcessing flips the submission guard. It reports false when a
// submission is already in flight, so a second click cannot double-submit.
func (w *Wizard) beginProcessing() (WizardState, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.processing {
		return WizardState{}, false
	}
	w.processing = true
	return w.snapshotLocked(), true
}

// endProcessing releases the submission guard on every exit path.
func (w *Wizard) endProcessing() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.processing = false
}

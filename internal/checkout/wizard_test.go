package checkout

import (
	"testing"

	"github.com/nhakalabs/storefront-gateway/internal/payment"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
)

func completeDelivery() DeliveryInfo {
	return DeliveryInfo{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+1234567",
		Address:  "1 Main St",
		City:     "Springfield",
		Country:  "US",
	}
}

func TestWizardStartsOnDeliveryStep(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	if w.Snapshot().Step != StepDelivery {
		t.Fatal("wizard must start on the delivery step")
	}
}

func TestSubmitDeliveryAdvances(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	if err := w.SubmitDelivery(completeDelivery()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	state := w.Snapshot()
	if state.Step != StepPayment {
		t.Fatalf("step = %d, want payment step", state.Step)
	}
	if state.Delivery.FullName != "Jane Doe" {
		t.Fatal("delivery form not stored")
	}
}

func TestSubmitDeliveryBlocksOnWhitespaceFields(t *testing.T) {
	t.Parallel()

	for _, field := range []string{"fullName", "email", "phone", "address"} {
		info := completeDelivery()
		switch field {
		case "fullName":
			info.FullName = "   "
		case "email":
			info.Email = ""
		case "phone":
			info.Phone = "\t"
		case "address":
			info.Address = " "
		}

		w := NewWizard()
		err := w.SubmitDelivery(info)
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("missing %s: expected validation error, got %v", field, err)
		}
		if w.Snapshot().Step != StepDelivery {
			t.Fatalf("missing %s: wizard advanced on invalid form", field)
		}
	}
}

func TestBackKeepsFormAndSelection(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	if err := w.SubmitDelivery(completeDelivery()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := w.SelectPaymentMethod(payment.MethodPayPal); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	w.Back()

	state := w.Snapshot()
	if state.Step != StepDelivery {
		t.Fatal("back should return to the delivery step")
	}
	if state.Delivery.Email != "jane@example.com" || state.PaymentMethod != payment.MethodPayPal {
		t.Fatal("back must preserve form and payment selection")
	}
}

func TestSelectPaymentMethodRequiresPaymentStep(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	err := w.SelectPaymentMethod(payment.MethodPayPal)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestPrefillOnlyFillsEmptyFields(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	w.Prefill("Account Name", "account@example.com")

	state := w.Snapshot()
	if state.Delivery.FullName != "Account Name" || state.Delivery.Email != "account@example.com" {
		t.Fatal("prefill should fill empty fields")
	}

	info := completeDelivery()
	if err := w.SubmitDelivery(info); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	w.Prefill("Other Name", "other@example.com")
	state = w.Snapshot()
	if state.Delivery.FullName != "Jane Doe" || state.Delivery.Email != "jane@example.com" {
		t.Fatal("prefill must not overwrite user edits")
	}
}

func TestEmptyCartResetsToDeliveryStep(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	if err := w.SubmitDelivery(completeDelivery()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	w.HandleCartCount(0)
	if w.Snapshot().Step != StepDelivery {
		t.Fatal("draining the cart must reset the step")
	}
	if w.Snapshot().Delivery.FullName == "" {
		t.Fatal("cart drain should not wipe the entered form")
	}

	w2 := NewWizard()
	if err := w2.SubmitDelivery(completeDelivery()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	w2.HandleCartCount(3)
	if w2.Snapshot().Step != StepPayment {
		t.Fatal("non-empty cart must not reset the step")
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	if err := w.SubmitDelivery(completeDelivery()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := w.SelectPaymentMethod(payment.MethodApplePay); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	w.Reset()

	state := w.Snapshot()
	if state.Step != StepDelivery || state.Delivery != (DeliveryInfo{}) || state.PaymentMethod != "" || state.Processing {
		t.Fatalf("reset left residue: %+v", state)
	}
}

func TestProcessingGuardIsExclusive(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	if _, ok := w.beginProcessing(); !ok {
		t.Fatal("first begin should acquire the guard")
	}
	if _, ok := w.beginProcessing(); ok {
		t.Fatal("second begin must be refused while processing")
	}
	w.endProcessing()
	if _, ok := w.beginProcessing(); !ok {
		t.Fatal("guard should be reusable after release")
	}
}

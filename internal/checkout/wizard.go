// Package checkout drives the linear checkout sequence:
// shipping -> billing -> shipping-method -> payment -> review.
// Transitions move exactly one step forward; the only jumps allowed are the
// named Edit actions from review, which re-enter the forward chain at the
// edited step.
package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongStep rejects a transition issued from a step it does not
	// belong to, e.g. continuing billing while still on shipping.
	ErrWrongStep = errors.New("checkout: action not valid for current step")
	// ErrNotReview rejects an Edit action issued anywhere but review.
	ErrNotReview = errors.New("checkout: edit is only available from review")
)

// Wizard holds the state of one checkout flow. It is owned by a single
// session and discarded on completion or abandonment.
type Wizard struct {
	Step            Step    `json:"step"`
	ShippingAddress Address `json:"shippingAddress"`
	BillingAddress  Address `json:"billingAddress"`
	SameAsShipping  bool    `json:"sameAsShipping"`
	MethodID        string  `json:"methodId"`
}

// NewWizard starts at shipping with the standard method pre-selected, so the
// shipping-method step can never be empty.
func NewWizard() *Wizard {
	return &Wizard{
		Step:           StepShipping,
		SameAsShipping: true,
		MethodID:       MethodStandard,
	}
}

// ContinueShipping validates and stores the shipping address, then advances
// to billing. On validation failure the wizard stays on shipping and the
// FieldErrors name the offending fields.
func (w *Wizard) ContinueShipping(addr Address) error {
	if w.Step != StepShipping {
		return ErrWrongStep
	}
	if errs := addr.validate(); errs != nil {
		return errs
	}
	w.ShippingAddress = addr
	w.Step = next(w.Step)
	return nil
}

// ContinueBilling advances from billing to shipping-method. With
// sameAsShipping set, every billing field is overwritten by the shipping
// address and addr is ignored; otherwise addr is validated and stored.
func (w *Wizard) ContinueBilling(addr Address, sameAsShipping bool) error {
	if w.Step != StepBilling {
		return ErrWrongStep
	}
	w.SameAsShipping = sameAsShipping
	if sameAsShipping {
		w.BillingAddress = w.ShippingAddress
		w.Step = next(w.Step)
		return nil
	}
	if errs := addr.validate(); errs != nil {
		return errs
	}
	w.BillingAddress = addr
	w.Step = next(w.Step)
	return nil
}

// ContinueShippingMethod selects a delivery option and advances to payment.
// An empty id keeps the current selection; a default is always set, so the
// step cannot be continued empty.
func (w *Wizard) ContinueShippingMethod(methodID string) error {
	if w.Step != StepShippingMethod {
		return ErrWrongStep
	}
	if methodID != "" {
		if _, ok := MethodByID(methodID); !ok {
			return FieldErrors{"methodId": fmt.Sprintf("unknown shipping method %q", methodID)}
		}
		w.MethodID = methodID
	}
	w.Step = next(w.Step)
	return nil
}

// ContinuePayment advances unconditionally; payment capture is an external
// concern and the step carries no validated fields.
func (w *Wizard) ContinuePayment() error {
	if w.Step != StepPayment {
		return ErrWrongStep
	}
	w.Step = next(w.Step)
	return nil
}

// EditFromReview jumps back to the named earlier step without resetting any
// later data. Returning to review happens only by walking the forward chain
// through that step's own Continue action again.
func (w *Wizard) EditFromReview(step Step) error {
	if w.Step != StepReview {
		return ErrNotReview
	}
	if !step.valid() || step == StepReview {
		return fmt.Errorf("checkout: cannot edit step %q", step)
	}
	w.Step = step
	return nil
}

// Method returns the currently selected shipping method.
func (w *Wizard) Method() ShippingMethod {
	m, _ := MethodByID(w.MethodID)
	return m
}

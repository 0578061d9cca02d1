package checkout

// Step is one stop in the fixed checkout sequence.
type Step string

const (
	StepShipping       Step = "shipping"
	StepBilling        Step = "billing"
	StepShippingMethod Step = "shipping-method"
	StepPayment        Step = "payment"
	StepReview         Step = "review"
)

// stepOrder is the forward chain; Continue always advances exactly one
// position, review is the last stop.
var stepOrder = []Step{StepShipping, StepBilling, StepShippingMethod, StepPayment, StepReview}

func (s Step) String() string {
	return string(s)
}

func (s Step) valid() bool {
	for _, st := range stepOrder {
		if st == s {
			return true
		}
	}
	return false
}

func next(s Step) Step {
	for i, st := range stepOrder {
		if st == s && i+1 < len(stepOrder) {
			return stepOrder[i+1]
		}
	}
	return s
}

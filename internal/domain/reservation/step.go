package reservation

// Step is the furthest completed stage of the booking flow. The sequence is
// linear with no skipping; confirmed is terminal. Which screen a client is
// currently showing is not the domain's concern: back navigation re-reads
// the draft, it never moves Step backward. That monotonicity is what keeps a
// resubmitted finalize from re-entering an earlier stage and charging twice.
type Step string

const (
	StepBrowsing  Step = "browsing"
	StepServices  Step = "services"
	StepPayment   Step = "payment"
	StepConfirmed Step = "confirmed"
)

// Next returns the following step; confirmed maps to itself.
func (s Step) Next() Step {
	switch s {
	case StepBrowsing:
		return StepServices
	case StepServices:
		return StepPayment
	case StepPayment:
		return StepConfirmed
	default:
		return StepConfirmed
	}
}

func (s Step) Terminal() bool {
	return s == StepConfirmed
}

func (s Step) Valid() bool {
	switch s {
	case StepBrowsing, StepServices, StepPayment, StepConfirmed:
		return true
	}
	return false
}

package booking

import "fmt"

// Step is the index of a booking flow screen. Steps are strictly linear.
type Step int

const (
	StepSchedule Step = iota
	StepPlayers
	StepPayment
	StepReview
)

const StepCount = 4

func (s Step) String() string {
	switch s {
	case StepSchedule:
		return "schedule"
	case StepPlayers:
		return "players"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

func (s Step) IsValid() bool {
	return s >= StepSchedule && s <= StepReview
}

func (s Step) IsFirst() bool { return s == StepSchedule }
func (s Step) IsLast() bool  { return s == StepReview }

// IdentityState tells the gate whether an acting client can be produced at submit time.
type IdentityState int

const (
	// IdentityResolved: a registered or cached guest client already exists.
	IdentityResolved IdentityState = iota
	// IdentityDeferrable: no client yet, but the guest sub-flow or an auth redirect can supply one.
	IdentityDeferrable
	// IdentityBlocked: no client and no path to obtain one.
	IdentityBlocked
)

func (s IdentityState) String() string {
	switch s {
	case IdentityResolved:
		return "resolved"
	case IdentityDeferrable:
		return "deferrable"
	default:
		return "blocked"
	}
}

package booking

import "academy-booking/internal/domain/venue"

// Gate predicates. They are pure: no I/O, no mutation.

func CanAdvanceSchedule(s Selection) bool {
	return s.DurationID != "" && s.BookingDate != "" && s.HasSlot()
}

func CanAdvancePlayers(v *venue.Venue, s Selection) bool {
	return v.AllowsPlayers(s.Players)
}

func CanAdvancePayment(v *venue.Venue, s Selection) bool {
	if s.PaymentType == "" || !v.Allows(s.PaymentType) {
		return false
	}
	return s.PaymentType != venue.PaymentCliq || s.HasEvidence()
}

func CanSubmit(v *venue.Venue, s Selection, submitting bool, identity IdentityState) bool {
	return CanAdvanceSchedule(s) &&
		CanAdvancePlayers(v, s) &&
		CanAdvancePayment(v, s) &&
		!submitting &&
		identity != IdentityBlocked
}

// CanAdvance is the forward gate of the given step. Review has no forward
// transition; its terminal action is submit.
func CanAdvance(step Step, v *venue.Venue, s Selection) bool {
	switch step {
	case StepSchedule:
		return CanAdvanceSchedule(s)
	case StepPlayers:
		return CanAdvancePlayers(v, s)
	case StepPayment:
		return CanAdvancePayment(v, s)
	default:
		return false
	}
}

type Gates struct {
	Schedule bool `json:"schedule"`
	Players  bool `json:"players"`
	Payment  bool `json:"payment"`
	Submit   bool `json:"submit"`
}

func Evaluate(v *venue.Venue, s Selection, submitting bool, identity IdentityState) Gates {
	return Gates{
		Schedule: CanAdvanceSchedule(s),
		Players:  CanAdvancePlayers(v, s),
		Payment:  CanAdvancePayment(v, s),
		Submit:   CanSubmit(v, s, submitting, identity),
	}
}
